package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/five82/mcmap/internal/app"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCLI().RunContext(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "mcmap: %v\n", err)
		return 1
	}
	return 0
}

func newCLI() *cli.App {
	var mcmap *app.App

	packageArg := func(c *cli.Context) (string, error) {
		if c.NArg() < 1 {
			return "", fmt.Errorf("%s: package path required", c.Command.Name)
		}
		return c.Args().First(), nil
	}

	withPackage := func(fn func(ctx context.Context, path string) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			path, err := packageArg(c)
			if err != nil {
				return err
			}
			return fn(c.Context, path)
		}
	}

	return &cli.App{
		Name:      "mcmap",
		Usage:     "inspect and edit Minecraft map packages",
		ArgsUsage: "<package>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "config file path (default ~/.config/mcmap/config.toml)",
				EnvVars: []string{"MCMAP_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override the configured log level",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "color theme (Dracula or Slate)",
				Value: "Dracula",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			mcmap, err = app.New(app.Options{
				ConfigPath: c.String("config"),
				LogLevel:   c.String("log-level"),
				Theme:      c.String("theme"),
				Out:        c.App.Writer,
				Err:        c.App.ErrWriter,
			})
			return err
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print a package summary",
				ArgsUsage: "<package>",
				Action:    withPackage(func(ctx context.Context, path string) error { return mcmap.Info(ctx, path) }),
			},
			{
				Name:      "pins",
				Usage:     "list pins",
				ArgsUsage: "<package>",
				Action:    withPackage(func(ctx context.Context, path string) error { return mcmap.Pins(ctx, path) }),
			},
			{
				Name:      "migrate",
				Usage:     "rewrite a package in the latest manifest schema",
				ArgsUsage: "<package>",
				Action:    withPackage(func(ctx context.Context, path string) error { return mcmap.Migrate(ctx, path) }),
			},
			{
				Name:      "check",
				Usage:     "report dangling and orphaned images",
				ArgsUsage: "<package>",
				Action:    withPackage(func(ctx context.Context, path string) error { return mcmap.Check(ctx, path) }),
			},
			{
				Name:      "rm-pin",
				Usage:     "remove pins by index along with their unshared images",
				ArgsUsage: "<package> <index>...",
				Action: func(c *cli.Context) error {
					path, err := packageArg(c)
					if err != nil {
						return err
					}
					indices := make([]int, 0, c.NArg()-1)
					for _, raw := range c.Args().Tail() {
						i, err := strconv.Atoi(raw)
						if err != nil {
							return fmt.Errorf("rm-pin: invalid index %q", raw)
						}
						indices = append(indices, i)
					}
					return mcmap.RemovePins(c.Context, path, indices)
				},
			},
			{
				Name:      "add-pin",
				Usage:     "add a pin",
				ArgsUsage: "<package>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Float64Flag{Name: "x"},
					&cli.Float64Flag{Name: "z"},
					&cli.StringFlag{Name: "color", Usage: "red, orange, yellow, green, blue, indigo, brown, gray or pink"},
					&cli.StringFlag{Name: "dimension", Usage: "overworld, nether or end"},
					&cli.StringFlag{Name: "about"},
					&cli.StringSliceFlag{Name: "tag"},
					&cli.StringSliceFlag{Name: "image", Usage: "image file to attach"},
				},
				Action: func(c *cli.Context) error {
					path, err := packageArg(c)
					if err != nil {
						return err
					}
					return mcmap.AddPin(c.Context, path, app.NewPin{
						Name:        c.String("name"),
						X:           c.Float64("x"),
						Z:           c.Float64("z"),
						Color:       c.String("color"),
						Dimension:   c.String("dimension"),
						Description: c.String("about"),
						Tags:        c.StringSlice("tag"),
						ImagePaths:  c.StringSlice("image"),
					})
				},
			},
			{
				Name:      "new",
				Usage:     "create a package from the sample template",
				ArgsUsage: "<package>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "world name"},
					&cli.StringFlag{Name: "version", Usage: "game version (default from config)"},
					&cli.Int64Flag{Name: "seed", Usage: "world seed"},
				},
				Action: func(c *cli.Context) error {
					path, err := packageArg(c)
					if err != nil {
						return err
					}
					req := app.NewPackage{Name: c.String("name"), GameVersion: c.String("version")}
					if c.IsSet("seed") {
						seed := c.Int64("seed")
						req.Seed = &seed
					}
					return mcmap.Create(c.Context, path, req)
				},
			},
			{
				Name:      "watch",
				Usage:     "re-check a package periodically until interrupted",
				ArgsUsage: "<package>",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Value: 2 * time.Second},
				},
				Action: func(c *cli.Context) error {
					path, err := packageArg(c)
					if err != nil {
						return err
					}
					return mcmap.Watch(c.Context, path, c.Duration("interval"))
				},
			},
			{
				Name:  "flags",
				Usage: "list or change feature flags",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Action: func(*cli.Context) error { return mcmap.FlagsList() },
					},
					{
						Name:      "set",
						ArgsUsage: "<name> <true|false>",
						Action: func(c *cli.Context) error {
							if c.NArg() != 2 {
								return fmt.Errorf("flags set: want <name> <true|false>")
							}
							value, err := strconv.ParseBool(c.Args().Get(1))
							if err != nil {
								return fmt.Errorf("flags set: %w", err)
							}
							return mcmap.FlagsSet(c.Args().First(), value)
						},
					},
				},
			},
		},
	}
}
