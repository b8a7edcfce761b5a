// Package colour provides the colour model and WCAG contrast maths used for token derivation.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a value cannot be parsed as a colour.
var ErrInvalidColor = errors.New("invalid colour")

// Color is an immutable sRGB colour quantised to 8 bits per channel.
// Every transform returns a new Color, so values can be shared freely.
type Color struct {
	c colorful.Color
}

var (
	// Black is #000000.
	Black = FromRGB(0, 0, 0)
	// White is #ffffff.
	White = FromRGB(255, 255, 255)
)

// FromRGB creates a colour from 8-bit channels.
func FromRGB(r, g, b uint8) Color {
	return Color{c: colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}}
}

// FromHSL creates a colour from hue (0-360), saturation (0-1) and lightness (0-1).
// Out of range values are wrapped (hue) or clamped (saturation, lightness).
func FromHSL(h, s, l float64) Color {
	return quantise(colorful.Hsl(normaliseHue(h), clamp01(s), clamp01(l)))
}

// Parse parses "#rrggbb", "rrggbb", "#rgb" or "rgb" (case-insensitive).
func Parse(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return Color{}, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}
	v = strings.TrimPrefix(v, "#")
	if len(v) != 3 && len(v) != 6 {
		return Color{}, fmt.Errorf("%w: %q (expected 3 or 6 hex digits)", ErrInvalidColor, s)
	}
	for _, r := range v {
		if !isHexDigit(r) {
			return Color{}, fmt.Errorf("%w: %q (unexpected character %q)", ErrInvalidColor, s, r)
		}
	}

	c, err := colorful.Hex("#" + v)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	return quantise(c), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Sanitize cleans pasted text into a "#rrggbb" candidate by dropping every
// non-hex character and keeping the first six digits. The result still
// needs to go through Parse.
func Sanitize(s string) string {
	var b strings.Builder
	b.WriteByte('#')
	n := 0
	for _, r := range s {
		if n == 6 {
			break
		}
		if isHexDigit(r) {
			b.WriteRune(r)
			n++
		}
	}
	return strings.ToLower(b.String())
}

// Hex returns the colour as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return c.c.Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText encodes the colour as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes any form accepted by Parse.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.c.RGBA()
}

// RGB255 returns the 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.c.RGB255()
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
func (c Color) HSL() (h, s, l float64) {
	return c.c.Hsl()
}

// Saturation returns the HSL saturation.
func (c Color) Saturation() float64 {
	_, s, _ := c.HSL()
	return s
}

// Lightness returns the HSL lightness.
func (c Color) Lightness() float64 {
	_, _, l := c.HSL()
	return l
}

// WithSaturation returns the colour with its HSL saturation replaced.
func (c Color) WithSaturation(s float64) Color {
	h, _, l := c.HSL()
	return FromHSL(h, s, l)
}

// WithLightness returns the colour with its HSL lightness replaced.
func (c Color) WithLightness(l float64) Color {
	h, s, _ := c.HSL()
	return FromHSL(h, s, l)
}

// Mix interpolates towards other by t in linear light, then re-quantises
// to 8-bit sRGB. t=0 returns c, t=1 returns other; t is clamped to [0,1].
func (c Color) Mix(other Color, t float64) Color {
	return quantise(c.c.BlendLinearRgb(other.c, clamp01(t)))
}

// Equal reports whether both colours have the same 8-bit channels.
func (c Color) Equal(other Color) bool {
	return c.Hex() == other.Hex()
}

func quantise(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return FromRGB(r, g, b)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
