package png

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// drawText draws s with its baseline at (x, y).
func drawText(img draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawBadge draws an outlined label whose right edge is at right.
func drawBadge(img *image.RGBA, label string, right, baseline int, fg, bg color.Color) {
	w := textWidth(label) + 12
	r := image.Rect(right-w, baseline-12, right, baseline+5)

	fillRounded(img, r, 4, fg)
	fillRounded(img, r.Inset(1), 3, bg)
	drawText(img, label, r.Min.X+6, baseline, fg)
}
