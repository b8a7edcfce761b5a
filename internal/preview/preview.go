// Package preview renders a derivation as terminal swatches with lipgloss.
package preview

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

const (
	defaultWidth = 80
	swatchWidth  = 13
	// sideBySideWidth is the narrowest terminal that fits both panels in a row.
	sideBySideWidth = 2*(3*swatchWidth+4) + 2
)

// Renderer draws previews for one output stream.
type Renderer struct {
	lg      *lipgloss.Renderer
	width   int
	lightBg colour.Color
	darkBg  colour.Color
}

// New creates a renderer for w. Colour support and width are detected when w
// is a terminal.
func New(w io.Writer) *Renderer {
	width := defaultWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}

	return &Renderer{
		lg:      lipgloss.NewRenderer(w),
		width:   width,
		lightBg: colour.White,
		darkBg:  colour.MustParse("#121212"),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WithWidth overrides the detected width.
func (r *Renderer) WithWidth(width int) *Renderer {
	if width > 0 {
		r.width = width
	}
	return r
}

// WithBackgrounds sets the page colours the light and dark panels are drawn on.
func (r *Renderer) WithBackgrounds(light, dark colour.Color) *Renderer {
	r.lightBg, r.darkBg = light, dark
	return r
}

// Render returns both mode panels, side by side when the width allows.
func (r *Renderer) Render(d *tokens.Derivation) string {
	light := r.panel("Light", r.lightBg, d, d.Tokens.Light, d.Tokens.Light.Base)
	dark := r.panel("Dark", r.darkBg, d, d.Tokens.Dark, d.Tokens.DarkBaseText)

	header := r.lg.NewStyle().Bold(true).Render(d.Input.Hex()) +
		r.lg.NewStyle().Faint(true).Render("  "+d.Class.String()+": "+d.Recipe.String())

	var body string
	if r.width >= sideBySideWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, light, "  ", dark)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, light, "", dark)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body) + "\n"
}

// panel renders one mode on its page background.
func (r *Renderer) panel(title string, bg colour.Color, d *tokens.Derivation, m tokens.Mode, linkText colour.Color) string {
	page := r.lg.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(readableOn(bg).Hex())).
		Padding(1, 2)

	heading := lipgloss.JoinHorizontal(lipgloss.Top,
		r.lg.NewStyle().Bold(true).Render(title+" mode"),
		"  ",
		r.badge(d.TextPasses(m)),
	)

	swatches := lipgloss.JoinHorizontal(lipgloss.Top,
		r.swatch("Base 500", m.Base, m.TextOnBase),
		r.swatch("900", m.Darker, readableOn(m.Darker)),
		r.swatch("100", m.Lighter, readableOn(m.Lighter)),
	)

	bubble := r.lg.NewStyle().
		Background(lipgloss.Color(m.Base.Hex())).
		Foreground(lipgloss.Color(m.TextOnBase.Hex())).
		Padding(0, 2).
		Render("Your order has shipped!")

	// 500 on 100, as in a status pill.
	pill := r.lg.NewStyle().
		Background(lipgloss.Color(m.Lighter.Hex())).
		Foreground(lipgloss.Color(d.PillText(m).Hex())).
		Bold(true).
		Padding(0, 1).
		Render("Status: new")

	link := r.lg.NewStyle().
		Foreground(lipgloss.Color(linkText.Hex())).
		Underline(true).
		Render("View details")

	content := lipgloss.JoinVertical(lipgloss.Left,
		heading,
		"",
		swatches,
		"",
		bubble,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, pill, "  ", link),
	)

	return page.Render(content)
}

func (r *Renderer) swatch(label string, fill, text colour.Color) string {
	return r.lg.NewStyle().
		Background(lipgloss.Color(fill.Hex())).
		Foreground(lipgloss.Color(text.Hex())).
		Width(swatchWidth).
		Padding(1, 1).
		Render(label + "\n" + fill.Hex())
}

// badge reports whether the text on the base reaches the policy's text
// contrast.
func (r *Renderer) badge(pass bool) string {
	if pass {
		return r.lg.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#1b5e20")).
			Padding(0, 1).
			Render("✓ WCAG AA compliant")
	}
	return r.lg.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color("#b71c1c")).
		Padding(0, 1).
		Render("✗ below WCAG AA")
}

// readableOn returns black or white, whichever contrasts more with bg.
func readableOn(bg colour.Color) colour.Color {
	if colour.ContrastRatio(bg, colour.Black) >= colour.ContrastRatio(bg, colour.White) {
		return colour.Black
	}
	return colour.White
}
