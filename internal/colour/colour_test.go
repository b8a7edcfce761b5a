package colour

import (
	"encoding/json"
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "hash upper", input: "#3366FF", want: "#3366ff"},
		{name: "hash lower", input: "#3366ff", want: "#3366ff"},
		{name: "no hash", input: "121212", want: "#121212"},
		{name: "short form", input: "#fa0", want: "#ffaa00"},
		{name: "short no hash", input: "FFF", want: "#ffffff"},
		{name: "surrounding space", input: "  #000000 ", want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got.Hex() != tt.want {
				t.Errorf("Parse(%q).Hex() = %s, want %s", tt.input, got.Hex(), tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"#",
		"#12345",
		"#1234567",
		"#12345g",
		"#ggg",
		"red",
		"#ff00ff00",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) error = nil, want error", input)
			}
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidColor", input, err)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "#3366FF", want: "#3366ff"},
		{input: "  3366ff\n", want: "#3366ff"},
		{input: "color: #12 34 56;", want: "#c12345"},
		{input: "0x1a2b3c4d", want: "#01a2b3"},
		{input: "zzz", want: "#"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		h, s, l float64
	}{
		{name: "action blue", hex: "#3366ff", h: 225, s: 1, l: 0.6},
		{name: "red", hex: "#ff0000", h: 0, s: 1, l: 0.5},
		{name: "dark background", hex: "#121212", h: 0, s: 0, l: 18.0 / 255.0},
		{name: "white", hex: "#ffffff", h: 0, s: 0, l: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := MustParse(tt.hex).HSL()
			if math.Abs(h-tt.h) > 0.5 {
				t.Errorf("hue = %.2f, want %.2f", h, tt.h)
			}
			if math.Abs(s-tt.s) > 0.01 {
				t.Errorf("saturation = %.3f, want %.3f", s, tt.s)
			}
			if math.Abs(l-tt.l) > 0.01 {
				t.Errorf("lightness = %.3f, want %.3f", l, tt.l)
			}
		})
	}
}

func TestFromHSLRoundTrip(t *testing.T) {
	for _, hex := range []string{"#3366ff", "#8b0000", "#d1d1d1", "#00ff7f", "#101010"} {
		t.Run(hex, func(t *testing.T) {
			c := MustParse(hex)
			h, s, l := c.HSL()
			if got := FromHSL(h, s, l); !got.Equal(c) {
				t.Errorf("FromHSL(HSL(%s)) = %s", hex, got.Hex())
			}
		})
	}
}

func TestWithSaturation(t *testing.T) {
	c := MustParse("#3366ff")
	h0, _, l0 := c.HSL()

	got := c.WithSaturation(0.5)
	h, s, l := got.HSL()

	if math.Abs(s-0.5) > 0.02 {
		t.Errorf("saturation = %.3f, want 0.5", s)
	}
	if math.Abs(h-h0) > 2 {
		t.Errorf("hue drifted: %.2f -> %.2f", h0, h)
	}
	if math.Abs(l-l0) > 0.01 {
		t.Errorf("lightness drifted: %.3f -> %.3f", l0, l)
	}
	if c.Hex() != "#3366ff" {
		t.Errorf("receiver mutated: %s", c.Hex())
	}
}

func TestMix(t *testing.T) {
	a := MustParse("#3366ff")
	b := MustParse("#121212")

	if got := a.Mix(b, 0); !got.Equal(a) {
		t.Errorf("Mix(t=0) = %s, want %s", got, a)
	}
	if got := a.Mix(b, 1); !got.Equal(b) {
		t.Errorf("Mix(t=1) = %s, want %s", got, b)
	}
	if got := a.Mix(b, -1); !got.Equal(a) {
		t.Errorf("Mix(t=-1) = %s, want clamp to %s", got, a)
	}
	if got := a.Mix(b, 2); !got.Equal(b) {
		t.Errorf("Mix(t=2) = %s, want clamp to %s", got, b)
	}

	// Halfway in linear light is sRGB 0.7354, well above the gamma-space #808080.
	linear := []struct {
		a, b string
		t    float64
		want string
	}{
		{a: "#000000", b: "#ffffff", t: 0.5, want: "#bcbcbc"},
		{a: "#ff0000", b: "#0000ff", t: 0.5, want: "#bc00bc"},
		{a: "#ffffff", b: "#000000", t: 0.5, want: "#bcbcbc"},
	}
	for _, tt := range linear {
		if got := MustParse(tt.a).Mix(MustParse(tt.b), tt.t).Hex(); got != tt.want {
			t.Errorf("%s.Mix(%s, %.1f) = %s, want %s", tt.a, tt.b, tt.t, got, tt.want)
		}
	}

	for _, tv := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		if got := a.Mix(a, tv); !got.Equal(a) {
			t.Errorf("self mix at %.2f = %s, want %s", tv, got, a)
		}
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "black on white", a: "#000000", b: "#ffffff", want: 21},
		{name: "same colour", a: "#3366ff", b: "#3366ff", want: 1},
		{name: "fallback on dark bg", a: "#d1d1d1", b: "#121212", want: 12.27},
		{name: "mid gray on white", a: "#767676", b: "#ffffff", want: 4.54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			got := ContrastRatio(a, b)
			if math.Abs(got-tt.want) > 0.02 {
				t.Errorf("ContrastRatio(%s, %s) = %.3f, want %.2f", tt.a, tt.b, got, tt.want)
			}
			if rev := ContrastRatio(b, a); rev != got {
				t.Errorf("ContrastRatio not symmetric: %.6f vs %.6f", got, rev)
			}
		})
	}
}

func TestContrastRatioRange(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				c := FromRGB(uint8(r), uint8(g), uint8(b))
				for _, ref := range []Color{Black, White, MustParse("#121212")} {
					ratio := ContrastRatio(c, ref)
					if ratio < 1 || ratio > 21.0001 {
						t.Fatalf("ContrastRatio(%s, %s) = %.4f out of [1,21]", c, ref, ratio)
					}
				}
			}
		}
	}
}

func TestLuminanceAcceptsStdlibColours(t *testing.T) {
	std := color.RGBA{R: 0x33, G: 0x66, B: 0xff, A: 255}
	if got, want := Luminance(std), Luminance(MustParse("#3366ff")); got != want {
		t.Errorf("Luminance(color.RGBA) = %.6f, want %.6f", got, want)
	}
}

func TestIsDark(t *testing.T) {
	if !IsDark(MustParse("#121212")) {
		t.Error("IsDark(#121212) = false, want true")
	}
	if IsDark(White) {
		t.Error("IsDark(white) = true, want false")
	}
}

func TestColorJSON(t *testing.T) {
	type doc struct {
		Colour Color `json:"colour"`
	}

	raw, err := json.Marshal(doc{Colour: MustParse("#ABCDEF")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `{"colour":"#abcdef"}` {
		t.Errorf("Marshal() = %s", raw)
	}

	var back doc
	if err := json.Unmarshal([]byte(`{"colour":"#fa0"}`), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Colour.Hex() != "#ffaa00" {
		t.Errorf("Unmarshal() colour = %s, want #ffaa00", back.Colour)
	}

	if err := json.Unmarshal([]byte(`{"colour":"nope"}`), &back); err == nil {
		t.Error("Unmarshal() error = nil, want error")
	}
}
