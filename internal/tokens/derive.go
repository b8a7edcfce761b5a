package tokens

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/policy"
)

// Derivation is one complete, immutable token derivation plus the
// diagnostics renderers use for accessibility badges and reports.
type Derivation struct {
	Input  colour.Color `json:"input"`
	Class  ToneClass    `json:"class"`
	Recipe Recipe       `json:"recipe"`
	Tokens TokenSet     `json:"-"`

	// LightSurfaceFallback is set when the input was too light to use as a
	// light mode base and LightFallbackColour was substituted.
	LightSurfaceFallback bool `json:"light_surface_fallback"`
	// LightTextFallback is set when neither black nor white text reached
	// MinTextContrast and the light base became FallbackColour.
	LightTextFallback bool `json:"light_text_fallback"`
	// DarkSaturationCapped is set when the post-hoc class cap was applied.
	DarkSaturationCapped bool `json:"dark_saturation_capped"`

	DarkBase     ConvergeResult `json:"dark_base"`
	DarkBaseText ConvergeResult `json:"dark_base_text"`
	DarkDarker   ConvergeResult `json:"dark_darker"`
	DarkLighter  ConvergeResult `json:"dark_lighter"`

	// Thresholds and backgrounds the tokens were derived against, so
	// renderers badge and draw with the same policy.
	MinTextContrast float64      `json:"min_text_contrast"`
	MinUIContrast   float64      `json:"min_ui_contrast"`
	LightBackground colour.Color `json:"light_background"`
	DarkBackground  colour.Color `json:"dark_background"`

	// LightPillContrast and DarkPillContrast are the contrast of the 500
	// shade on the 100 shade of each mode.
	LightPillContrast float64 `json:"light_pill_contrast"`
	DarkPillContrast  float64 `json:"dark_pill_contrast"`
}

// TextPasses reports whether the mode's text colour reaches MinTextContrast
// on its base.
func (d *Derivation) TextPasses(m Mode) bool {
	return colour.MeetsContrast(m.TextOnBase, m.Base, d.MinTextContrast)
}

// PillText returns the label colour for a 500-on-100 pill in mode m: the
// base itself when it reaches MinUIContrast on the lighter shade, otherwise
// black or white.
func (d *Derivation) PillText(m Mode) colour.Color {
	if colour.MeetsContrast(m.Base, m.Lighter, d.MinUIContrast) {
		return m.Base
	}
	if colour.ContrastRatio(m.Lighter, colour.Black) >= colour.ContrastRatio(m.Lighter, colour.White) {
		return colour.Black
	}
	return colour.White
}

// Deriver runs derivations under a fixed policy.
// It holds no mutable state and is safe for concurrent use.
type Deriver struct {
	policy        policy.Policy
	darkBg        colour.Color
	lightBg       colour.Color
	fallback      colour.Color
	lightFallback colour.Color
	logger        hclog.Logger
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithLogger sets the logger used to report contrast fallbacks.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Deriver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New validates the policy and resolves its reference colours.
func New(p policy.Policy, opts ...Option) (*Deriver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := &Deriver{
		policy: p,
		logger: hclog.NewNullLogger(),
	}

	refs := []struct {
		name  string
		value string
		dst   *colour.Color
	}{
		{"dark background", p.DarkBackground, &d.darkBg},
		{"light background", p.LightBackground, &d.lightBg},
		{"fallback colour", p.FallbackColour, &d.fallback},
		{"light fallback colour", p.LightFallbackColour, &d.lightFallback},
	}
	for _, ref := range refs {
		c, err := colour.Parse(ref.value)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", ref.name, err)
		}
		*ref.dst = c
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Policy returns the policy the deriver was built with.
func (d *Deriver) Policy() policy.Policy {
	return d.policy
}

// DarkBackground returns the resolved dark background colour.
func (d *Deriver) DarkBackground() colour.Color {
	return d.darkBg
}

// LightBackground returns the resolved light background colour.
func (d *Deriver) LightBackground() colour.Color {
	return d.lightBg
}

// Derive parses input and derives its tokens.
// The only failure is an unparsable input (colour.ErrInvalidColor).
func (d *Deriver) Derive(input string) (*Derivation, error) {
	c, err := colour.Parse(input)
	if err != nil {
		return nil, err
	}
	return d.DeriveColour(c), nil
}

// DeriveColour derives the full token set for an already parsed colour.
func (d *Deriver) DeriveColour(input colour.Color) *Derivation {
	result := &Derivation{
		Input:           input,
		MinTextContrast: d.policy.MinTextContrast,
		MinUIContrast:   d.policy.MinUIContrast,
		LightBackground: d.lightBg,
		DarkBackground:  d.darkBg,
	}

	light := d.deriveLight(input, result)
	dark, baseText := d.deriveDark(input, result)

	result.Tokens = TokenSet{
		Light:        light,
		Dark:         dark,
		DarkBaseText: baseText,
	}
	result.LightPillContrast = colour.ContrastRatio(light.Base, light.Lighter)
	result.DarkPillContrast = colour.ContrastRatio(dark.Base, dark.Lighter)

	d.logger.Debug("derived tokens",
		"input", input.Hex(),
		"class", result.Class.String(),
		"base_light", light.Base.Hex(),
		"base_dark", dark.Base.Hex())

	return result
}

// Classify returns the tone class of a colour under the deriver's policy.
func (d *Deriver) Classify(c colour.Color) (ToneClass, Recipe) {
	_, s, l := c.HSL()
	class := Classify(l, s, d.policy.Classifier)
	return class, recipeFor(class, c, d.darkBg, d.policy)
}

// deriveLight keeps the input hue as the light base and picks readable text.
func (d *Deriver) deriveLight(input colour.Color, result *Derivation) Mode {
	p := d.policy
	base := input

	tooLight := input.Lightness() > p.Classifier.TooLightAbove
	if tooLight && colour.ContrastRatio(base, d.lightBg) < p.MinSurfaceContrast {
		d.logger.Debug("light base too close to light background, using neutral",
			"input", input.Hex(), "replacement", d.lightFallback.Hex())
		base = d.lightFallback
		result.LightSurfaceFallback = true
	}

	var text colour.Color
	switch {
	case colour.MeetsContrast(base, colour.Black, p.MinTextContrast):
		text = colour.Black
	case colour.MeetsContrast(base, colour.White, p.MinTextContrast):
		text = colour.White
	default:
		d.logger.Debug("no readable text colour for light base, using fallback",
			"base", base.Hex(), "fallback", d.fallback.Hex())
		base = d.fallback
		text = colour.Black
		result.LightTextFallback = true
	}

	return Mode{
		Base:       base,
		Darker:     base.Mix(colour.Black, p.Variants.LightDarkerMix),
		Lighter:    base.Mix(colour.White, p.Variants.LightLighterMix),
		TextOnBase: text,
	}
}

// deriveDark runs classify -> recipe -> converge -> post-hoc cap, then
// derives the shades. The 900 shade is never lighter than the base and the
// 100 shade never darker.
func (d *Deriver) deriveDark(input colour.Color, result *Derivation) (Mode, colour.Color) {
	p := d.policy

	class, recipe := d.Classify(input)
	result.Class = class
	result.Recipe = recipe

	prepared := recipe.Apply(input, d.darkBg, p.Converge.SaturationDropLimit)

	ui := d.converger(p.MinUIContrast, recipe.SaturationCap)
	result.DarkBase = d.run(ui, prepared, NameBaseDark)

	base := result.DarkBase.Colour
	if result.DarkBase.Converged() {
		if capped, ok := d.capSaturation(base, recipe.SaturationCap, p.MinUIContrast); ok {
			base = capped
			result.DarkBase.Colour = capped
			result.DarkBase.Contrast = colour.ContrastRatio(capped, d.darkBg)
			result.DarkSaturationCapped = true
		}
	}

	text := d.converger(p.MinTextContrast, recipe.SaturationCap)
	result.DarkBaseText = d.run(text, prepared, NameBaseTextDark)

	result.DarkDarker = d.darken(base, result.DarkBase.State, p.MinUIContrast)
	result.DarkLighter = d.run(ui, base.Mix(colour.White, p.Variants.DarkLighterMix), NameLighterDark)

	onBase := colour.Black
	if colour.MeetsContrast(base, colour.White, p.MinTextContrast) {
		onBase = colour.White
	}

	return Mode{
		Base:       base,
		Darker:     result.DarkDarker.Colour,
		Lighter:    result.DarkLighter.Colour,
		TextOnBase: onBase,
	}, result.DarkBaseText.Colour
}

func (d *Deriver) converger(target, saturationCap float64) Converger {
	return Converger{
		Background:    d.darkBg,
		Fallback:      d.fallback,
		Target:        target,
		SaturationCap: saturationCap,
		DarkBelow:     d.policy.Classifier.DarkBelow,
		Params:        d.policy.Converge,
	}
}

func (d *Deriver) run(cv Converger, candidate colour.Color, token string) ConvergeResult {
	res := cv.Run(candidate)
	if res.State == StateFallback {
		d.logger.Debug("contrast search fell back",
			"token", token,
			"candidate", candidate.Hex(),
			"target", cv.Target,
			"attempts", res.Attempts,
			"fallback", res.Colour.Hex())
	}
	return res
}

// darken searches from DarkDarkerMix back toward the base for the darkest
// mix with black that still meets target. When none does the base itself
// is used, carrying the base's search state.
func (d *Deriver) darken(base colour.Color, baseState State, target float64) ConvergeResult {
	p := d.policy
	result := ConvergeResult{Target: target}

	for t := p.Variants.DarkDarkerMix; t > 1e-9 && result.Attempts < p.Converge.MaxAttempts; t -= p.Converge.Step {
		result.Attempts++
		c := base.Mix(colour.Black, t)
		if contrast := colour.ContrastRatio(c, d.darkBg); contrast >= target {
			result.Colour = c
			result.Contrast = contrast
			result.State = StateConverged
			return result
		}
	}

	d.logger.Debug("no darker shade meets contrast, using base",
		"token", NameDarkerDark, "base", base.Hex(), "target", target)
	result.Colour = base
	result.Contrast = colour.ContrastRatio(base, d.darkBg)
	result.State = baseState
	return result
}

// capSaturation lowers saturation to the class cap only when the converged
// colour exceeds it and the capped colour still meets target.
func (d *Deriver) capSaturation(c colour.Color, saturationCap, target float64) (colour.Color, bool) {
	if c.Saturation() <= saturationCap {
		return c, false
	}
	capped := c.WithSaturation(saturationCap)
	if !colour.MeetsContrast(capped, d.darkBg, target) {
		return c, false
	}
	return capped, true
}
