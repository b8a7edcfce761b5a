// Package png provides an output plugin that renders a swatch sheet of the
// light and dark tokens.
package png

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

// Plugin implements the output.Plugin interface for PNG swatch sheets.
type Plugin struct {
	scale     int
	smooth    bool
	filename  string
	outputDir string
}

// New creates a new PNG output plugin.
func New() *Plugin {
	return &Plugin{
		scale:    2,
		filename: "nocturne-swatches.png",
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "png"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Render a PNG swatch sheet of both modes with sample components"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.scale, "png.scale", p.scale, "Integer upscale factor (1-4)")
	cmd.Flags().BoolVar(&p.smooth, "png.smooth", false, "Use Catmull-Rom instead of nearest-neighbour scaling")
	cmd.Flags().StringVar(&p.filename, "png.filename", p.filename, "Output file name")
	cmd.Flags().StringVar(&p.outputDir, "png.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.scale < 1 || p.scale > 4 {
		return fmt.Errorf("invalid scale %d: must be between 1 and 4", p.scale)
	}
	if p.filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate renders and encodes the swatch sheet.
func (p *Plugin) Generate(d *tokens.Derivation) (map[string][]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("derivation cannot be nil")
	}

	img := p.upscale(Render(d))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return map[string][]byte{p.filename: buf.Bytes()}, nil
}

func (p *Plugin) upscale(src *image.RGBA) image.Image {
	if p.scale <= 1 {
		return src
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*p.scale, b.Dy()*p.scale))

	var scaler draw.Scaler = draw.NearestNeighbor
	if p.smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return dst
}

// Sheet geometry at 1x.
const (
	panelWidth  = 372
	panelHeight = 212
	pad         = 16
	swatchW     = 104
	swatchH     = 64
	swatchGap   = 14
	bubbleW     = 220
	bubbleH     = 34
	pillW       = 120
	pillH       = 24
	radius      = 8
)

type panel struct {
	title      string
	background colour.Color
	mode       tokens.Mode
	// linkText is the action colour used for text on the panel background.
	linkText colour.Color
}

// Render draws the light panel above the dark panel at 1x.
func Render(d *tokens.Derivation) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, panelWidth, panelHeight*2))

	panels := []panel{
		{title: "Light", background: d.LightBackground, mode: d.Tokens.Light, linkText: d.Tokens.Light.Base},
		{title: "Dark", background: d.DarkBackground, mode: d.Tokens.Dark, linkText: d.Tokens.DarkBaseText},
	}
	for i, pn := range panels {
		drawPanel(img, image.Pt(0, i*panelHeight), pn, d)
	}

	return img
}

func drawPanel(img *image.RGBA, origin image.Point, pn panel, d *tokens.Derivation) {
	bounds := image.Rect(0, 0, panelWidth, panelHeight).Add(origin)
	draw.Draw(img, bounds, image.NewUniform(pn.background), image.Point{}, draw.Src)

	fg := readableOn(pn.background)
	y := origin.Y + pad + 10
	drawText(img, pn.title+" mode  "+d.Input.Hex(), origin.X+pad, y, fg)
	if d.TextPasses(pn.mode) {
		drawBadge(img, "WCAG AA", origin.X+panelWidth-pad, y, fg, pn.background)
	}

	swatches := []struct {
		label string
		fill  colour.Color
		text  colour.Color
	}{
		{"Base 500", pn.mode.Base, pn.mode.TextOnBase},
		{"900", pn.mode.Darker, readableOn(pn.mode.Darker)},
		{"100", pn.mode.Lighter, readableOn(pn.mode.Lighter)},
	}
	top := origin.Y + pad + 22
	for i, sw := range swatches {
		x := origin.X + pad + i*(swatchW+swatchGap)
		r := image.Rect(x, top, x+swatchW, top+swatchH)
		fillRounded(img, r, radius, sw.fill)
		drawText(img, sw.label, x+8, top+20, sw.text)
		drawText(img, sw.fill.Hex(), x+8, top+swatchH-12, sw.text)
	}

	// Message bubble: text on the action colour.
	by := top + swatchH + 16
	bubble := image.Rect(origin.X+pad, by, origin.X+pad+bubbleW, by+bubbleH)
	fillRounded(img, bubble, radius*2, pn.mode.Base)
	drawText(img, "Your order has shipped!", bubble.Min.X+12, bubble.Min.Y+22, pn.mode.TextOnBase)

	// Pill: 500 on 100, plus a link in the text-safe action colour.
	py := by + bubbleH + 14
	pill := image.Rect(origin.X+pad, py, origin.X+pad+pillW, py+pillH)
	fillRounded(img, pill, pillH/2, pn.mode.Lighter)
	drawText(img, "Status: new", pill.Min.X+14, pill.Min.Y+16, d.PillText(pn.mode))
	drawText(img, "View details >", pill.Max.X+18, pill.Min.Y+16, pn.linkText)
}

// readableOn returns black or white, whichever contrasts more with bg.
func readableOn(bg colour.Color) colour.Color {
	if colour.ContrastRatio(bg, colour.Black) >= colour.ContrastRatio(bg, colour.White) {
		return colour.Black
	}
	return colour.White
}

// fillRounded paints r in c with corners of radius rad.
func fillRounded(img *image.RGBA, r image.Rectangle, rad int, c color.Color) {
	draw.DrawMask(img, r, image.NewUniform(c), image.Point{}, &roundedMask{r: r, rad: rad}, r.Min, draw.Over)
}

// roundedMask is an alpha mask with rounded corners.
type roundedMask struct {
	r   image.Rectangle
	rad int
}

func (m *roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m *roundedMask) Bounds() image.Rectangle { return m.r }

func (m *roundedMask) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.r) {
		return color.Alpha{}
	}

	rad := min(m.rad, m.r.Dx()/2, m.r.Dy()/2)
	cx, cy := x, y
	switch {
	case x < m.r.Min.X+rad:
		cx = m.r.Min.X + rad
	case x >= m.r.Max.X-rad:
		cx = m.r.Max.X - rad - 1
	}
	switch {
	case y < m.r.Min.Y+rad:
		cy = m.r.Min.Y + rad
	case y >= m.r.Max.Y-rad:
		cy = m.r.Max.Y - rad - 1
	}

	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > rad*rad {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xff}
}
