package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/mcmap/internal/config"
	"github.com/five82/mcmap/internal/document"
	"github.com/five82/mcmap/internal/flags"
	"github.com/five82/mcmap/internal/manifest"
	"github.com/five82/mcmap/internal/pkgfs"
	"github.com/five82/mcmap/internal/render"
	"github.com/five82/mcmap/internal/session"
)

// Options configure the mcmap application.
type Options struct {
	ConfigPath string
	LogLevel   string // empty uses the configured level
	Theme      string // empty uses Dracula
	Out        io.Writer
	Err        io.Writer
}

// App carries the wired dependencies every command needs.
type App struct {
	cfg      config.Config
	logger   logrus.FieldLogger
	fs       *pkgfs.Store
	flags    flags.Store
	renderer *render.Renderer
	out      io.Writer
}

// New loads configuration and wires logging, the flag store and the
// package filesystem.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel, err = logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
	}

	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	logger := cfg.NewLogger(errOut)

	store, err := flags.OpenFile(cfg.FlagsPath)
	if err != nil {
		return nil, fmt.Errorf("open flags: %w", err)
	}

	return newApp(cfg, logger, store, render.GetTheme(opts.Theme), out), nil
}

func newApp(cfg config.Config, logger logrus.FieldLogger, store flags.Store, theme render.Theme, out io.Writer) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		fs:       pkgfs.New(logger),
		flags:    store,
		renderer: render.New(theme),
		out:      out,
	}
}

func (a *App) open(ctx context.Context, path string) (*session.Session, error) {
	return session.Open(ctx, path, a.fs, a.logger)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

// Info prints the package summary.
func (a *App) Info(ctx context.Context, path string) error {
	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}
	a.println(a.renderer.Summary(s.Snapshot().File))
	var enabled []render.FlagState
	for _, st := range a.flagStates() {
		if st.Enabled {
			enabled = append(enabled, st)
		}
	}
	if len(enabled) > 0 {
		a.println(a.renderer.Flags(enabled))
	}
	return nil
}

// Pins prints the pin table.
func (a *App) Pins(ctx context.Context, path string) error {
	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}
	a.println(a.renderer.PinTable(s.Snapshot().File))
	return nil
}

// Migrate rewrites the package in the latest schema, trimming recent
// locations to the configured limit.
func (a *App) Migrate(ctx context.Context, path string) error {
	root, err := a.fs.Read(ctx, path)
	if err != nil {
		return fmt.Errorf("read package: %w", err)
	}
	from := manifest.VersionPreVersioning
	if meta, ok := root.Child(document.MetadataKey); ok && meta.IsRegular() {
		if from, err = manifest.DetectVersion(meta.Contents); err != nil {
			return fmt.Errorf("migrate %s: %w", path, err)
		}
	}
	file, err := document.DecodeLayout(root)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", path, err)
	}

	s := session.New(path, file, a.logger)
	if err := s.Update(func(f *document.File) error {
		f.TrimRecentLocations(a.cfg.RecentLocationLimit)
		return nil
	}); err != nil {
		return err
	}
	if err := s.Save(ctx, a.fs); err != nil {
		return err
	}

	a.logger.WithField("action", "migrate").
		WithField("package", path).
		WithField("from", from.String()).
		WithField("to", manifest.LatestVersion.String()).
		Info("migrated package")
	a.println(fmt.Sprintf("migrated %s from %s to %s", path, from, manifest.LatestVersion))
	return nil
}

// RemovePins removes the pins at indices and any image only they used.
func (a *App) RemovePins(ctx context.Context, path string, indices []int) error {
	if len(indices) == 0 {
		return errors.New("no pin indices given")
	}
	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}

	var removedImages int
	err = s.Update(func(f *document.File) error {
		for _, i := range indices {
			if i < 0 || i >= len(f.Manifest.Pins) {
				return fmt.Errorf("pin index %d out of range [0, %d)", i, len(f.Manifest.Pins))
			}
		}
		before := len(f.Images)
		f.RemovePins(indices)
		removedImages = before - len(f.Images)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove pins: %w", err)
	}
	if err := s.Save(ctx, a.fs); err != nil {
		return err
	}
	a.println(fmt.Sprintf("removed %d pin(s) and %d image(s)", len(uniqueInts(indices)), removedImages))
	return nil
}

// Check prints integrity problems and returns them as an error.
func (a *App) Check(ctx context.Context, path string) error {
	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}
	problems := s.Snapshot().File.Check()
	a.println(a.renderer.Problems(problems))
	if problems != nil {
		return fmt.Errorf("check %s: %w", path, problems)
	}
	return nil
}

// NewPackage describes a package created by Create.
type NewPackage struct {
	Name        string
	GameVersion string // empty uses the configured default
	Seed        *int64
}

// Create writes a new package at path from the sample template.
func (a *App) Create(ctx context.Context, path string, req NewPackage) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("create package: %s already exists", path)
	}

	file := document.Sample()
	if name := strings.TrimSpace(req.Name); name != "" {
		file.Manifest.Name = name
	}
	file.Manifest.World.Version = a.cfg.DefaultGameVersion
	if v := strings.TrimSpace(req.GameVersion); v != "" {
		file.Manifest.World.Version = v
	}
	if req.Seed != nil {
		file.Manifest.World.Seed = *req.Seed
	}

	if err := session.New(path, file, a.logger).Save(ctx, a.fs); err != nil {
		return err
	}
	a.println(fmt.Sprintf("created %s", path))
	return nil
}

// NewPin describes a pin added by AddPin.
type NewPin struct {
	Name        string
	X, Z        float64
	Color       string // empty leaves the colour unset
	Dimension   string // empty means overworld
	Description string
	Tags        []string
	ImagePaths  []string
}

// AddPin appends a pin, attaches its images and records its position as
// the latest recent location.
func (a *App) AddPin(ctx context.Context, path string, req NewPin) error {
	pin, err := buildPin(req)
	if err != nil {
		return err
	}
	images := make([][]byte, 0, len(req.ImagePaths))
	for _, p := range req.ImagePaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		images = append(images, data)
	}

	s, err := a.open(ctx, path)
	if err != nil {
		return err
	}
	var index int
	err = s.Update(func(f *document.File) error {
		index = f.AddPin(pin)
		if len(req.Tags) > 0 {
			if err := f.SetPinTags(index, req.Tags); err != nil {
				return err
			}
		}
		for _, data := range images {
			f.AttachImage(index, data)
		}
		pos := pin.BlockPos(0)
		f.PushRecentLocation(manifest.Point{X: pos.X(), Z: pos.Z()})
		f.TrimRecentLocations(a.cfg.RecentLocationLimit)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add pin: %w", err)
	}
	if err := s.Save(ctx, a.fs); err != nil {
		return err
	}
	a.println(fmt.Sprintf("added pin %d (%s)", index, pin.Name))
	return nil
}

func buildPin(req NewPin) (manifest.Pin, error) {
	pin := manifest.Pin{
		Name: strings.TrimSpace(req.Name),
	}
	if pin.Name == "" {
		return manifest.Pin{}, errors.New("pin name is required")
	}
	pin.Position[0], pin.Position[1] = req.X, req.Z
	if req.Color != "" {
		c, err := manifest.ParsePinColor(req.Color)
		if err != nil {
			return manifest.Pin{}, err
		}
		pin.Color = &c
	}
	if req.Dimension != "" {
		d, err := manifest.ParseDimension(req.Dimension)
		if err != nil {
			return manifest.Pin{}, err
		}
		pin.Dimension = d
	}
	if req.Description != "" {
		desc := req.Description
		pin.AboutDescription = &desc
	}
	return pin, nil
}

// FlagsList prints every feature flag.
func (a *App) FlagsList() error {
	a.println(a.renderer.Flags(a.flagStates()))
	return nil
}

func (a *App) flagStates() []render.FlagState {
	all := flags.AllFlags()
	states := make([]render.FlagState, 0, len(all))
	for _, f := range all {
		states = append(states, render.FlagState{
			Name:    f.String(),
			Key:     f.KeyName(),
			Enabled: flags.Enabled(a.flags, f),
			Default: f.EnabledByDefault(),
		})
	}
	return states
}

// FlagsSet turns the named flag on or off.
func (a *App) FlagsSet(name string, value bool) error {
	f, err := flags.ParseFlag(name)
	if err != nil {
		return err
	}
	if err := flags.Set(a.flags, f, value); err != nil {
		return err
	}
	a.logger.WithField("action", "set_flag").WithField("flag", f.String()).Debugf("flag set to %t", value)
	return a.FlagsList()
}

func uniqueInts(values []int) map[int]struct{} {
	out := make(map[int]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
