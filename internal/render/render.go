package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/five82/mcmap/internal/document"
	"github.com/five82/mcmap/internal/manifest"
)

// Renderer turns packages into styled terminal text.
type Renderer struct {
	styles Styles
}

// New returns a renderer using theme.
func New(theme Theme) *Renderer {
	return &Renderer{styles: theme.Styles()}
}

// FlagState describes one feature flag for display.
type FlagState struct {
	Name    string
	Key     string
	Enabled bool
	Default bool
}

// Summary renders the package overview shown by `mcmap info`.
func (r *Renderer) Summary(f document.File) string {
	m := f.Manifest
	s := r.styles

	var totalBytes uint64
	for _, data := range f.Images {
		totalBytes += uint64(len(data))
	}

	tags := f.Tags()
	tagText := s.FaintText.Render("none")
	if len(tags) > 0 {
		tagText = s.AccentText.Render(strings.Join(tags, ", "))
	}

	lines := []string{
		s.Title.Render(m.Name),
		r.field("Game version", s.Text.Render(m.World.Version)),
		r.field("Seed", s.Text.Render(strconv.FormatInt(m.World.Seed, 10))),
		r.field("Manifest", s.Text.Render(manifest.LatestVersion.String())),
		r.field("Features", s.Text.Render(f.Features().String())),
		r.field("Pins", s.Text.Render(strconv.Itoa(len(m.Pins)))),
		r.field("Images", s.Text.Render(fmt.Sprintf("%d (%s)", len(f.Images), humanize.Bytes(totalBytes)))),
		r.field("Tags", tagText),
		r.field("Recent locations", r.recentLocations(m.RecentLocations)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, r.styles.Label.Render(label), value)
}

func (r *Renderer) recentLocations(points []manifest.Point) string {
	if len(points) == 0 {
		return r.styles.FaintText.Render("none")
	}
	parts := make([]string, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		parts = append(parts, fmt.Sprintf("(%d, %d)", points[i].X, points[i].Z))
	}
	return r.styles.Text.Render(strings.Join(parts, " "))
}

// PinTable renders every pin as a table row.
func (r *Renderer) PinTable(f document.File) string {
	pins := f.IndexedPins()
	if len(pins) == 0 {
		return r.styles.FaintText.Render("no pins")
	}

	colors := make([]manifest.PinColor, len(pins))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Border).
		Headers("#", "Name", "Color", "Dimension", "Height", "Block", "Nether", "Tags", "About", "Images")
	for i, ip := range pins {
		pin := ip.Pin
		colors[i] = pin.ColorOrDefault()

		pos := pin.BlockPos(0)
		nether := "-"
		if pin.Dimension == manifest.DimensionOverworld {
			np := pin.NetherPosition()
			nether = fmt.Sprintf("%d, %d", np.X, np.Z)
		}
		tags := strings.Join(pin.Tags, ", ")
		if tags == "" {
			tags = "-"
		}
		about := pin.Description()
		if about == "" {
			about = "-"
		}
		height := pin.Dimension.HeightRange()
		t.Row(
			strconv.Itoa(ip.Index),
			pin.Name,
			string(colors[i]),
			pin.Dimension.String(),
			fmt.Sprintf("%d..%d", height.Min(), height.Max()),
			fmt.Sprintf("%d, %d", pos.X(), pos.Z()),
			nether,
			tags,
			about,
			strconv.Itoa(len(pin.Images)),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return r.styles.Header
		case col == 2 && row >= 0 && row < len(colors):
			return r.styles.PinStyle(colors[row])
		default:
			return r.styles.Cell
		}
	})
	return t.String()
}

// Problems renders the result of document.File.Check.
func (r *Renderer) Problems(err error) string {
	s := r.styles
	if err == nil {
		return s.SuccessText.Render("ok: no problems found")
	}

	var errs []error
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	} else {
		errs = []error{err}
	}

	lines := []string{s.DangerText.Render(fmt.Sprintf("%d problem(s) found", len(errs)))}
	for _, e := range errs {
		var dangling *document.DanglingImageError
		var orphan *document.OrphanImageError
		switch {
		case errors.As(e, &dangling):
			lines = append(lines, s.DangerText.Render("  missing  ")+s.Text.Render(e.Error()))
		case errors.As(e, &orphan):
			lines = append(lines, s.WarningText.Render("  orphan   ")+s.Text.Render(e.Error()))
		default:
			lines = append(lines, s.DangerText.Render("  error    ")+s.Text.Render(e.Error()))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Flags renders feature flag states.
func (r *Renderer) Flags(states []FlagState) string {
	s := r.styles
	lines := make([]string, 0, len(states))
	for _, st := range states {
		value := s.FaintText.Render("off")
		if st.Enabled {
			value = s.SuccessText.Render("on")
		}
		note := ""
		if st.Enabled != st.Default {
			note = s.FaintText.Render(" (default " + onOff(st.Default) + ")")
		}
		lines = append(lines, r.field(st.Name, value+note+"  "+s.FaintText.Render(st.Key)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
