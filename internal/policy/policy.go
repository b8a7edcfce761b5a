// Package policy holds the tunable constants used when deriving colour tokens.
//
// A Policy is a plain value. It is built once (Default, or Load for
// file/env/flag overrides), validated, and then passed read-only into the
// derivation pipeline so alternate policies can be tested without touching
// the convergence loop.
package policy

// Policy is the full set of thresholds, reference colours and step sizes.
type Policy struct {
	// MinTextContrast is the minimum ratio for text colours (WCAG AA normal text).
	MinTextContrast float64 `mapstructure:"min_text_contrast" json:"min_text_contrast" yaml:"min_text_contrast" validate:"gte=1,lte=21"`
	// MinUIContrast is the minimum ratio for UI elements against the dark background.
	MinUIContrast float64 `mapstructure:"min_ui_contrast" json:"min_ui_contrast" yaml:"min_ui_contrast" validate:"gte=1,lte=21"`
	// MinSurfaceContrast is the minimum ratio between a light-mode base and the
	// light background below which a very light base (Classifier.TooLightAbove)
	// is replaced by LightFallbackColour.
	MinSurfaceContrast float64 `mapstructure:"min_surface_contrast" json:"min_surface_contrast" yaml:"min_surface_contrast" validate:"gte=1,lte=21"`

	DarkBackground      string `mapstructure:"dark_background" json:"dark_background" yaml:"dark_background" validate:"required,hexcolor"`
	LightBackground     string `mapstructure:"light_background" json:"light_background" yaml:"light_background" validate:"required,hexcolor"`
	FallbackColour      string `mapstructure:"fallback_colour" json:"fallback_colour" yaml:"fallback_colour" validate:"required,hexcolor"`
	LightFallbackColour string `mapstructure:"light_fallback_colour" json:"light_fallback_colour" yaml:"light_fallback_colour" validate:"required,hexcolor"`

	Classifier Classifier `mapstructure:"classifier" json:"classifier" yaml:"classifier"`
	Recipes    Recipes    `mapstructure:"recipes" json:"recipes" yaml:"recipes"`
	Converge   Converge   `mapstructure:"converge" json:"converge" yaml:"converge"`
	Variants   Variants   `mapstructure:"variants" json:"variants" yaml:"variants"`
}

// Classifier holds the tone class cut points.
type Classifier struct {
	DarkBelow      float64 `mapstructure:"dark_below" json:"dark_below" yaml:"dark_below" validate:"gte=0,lte=1"`
	LightAbove     float64 `mapstructure:"light_above" json:"light_above" yaml:"light_above" validate:"gte=0,lte=1,gtefield=DarkBelow"`
	VeryLightAbove float64 `mapstructure:"very_light_above" json:"very_light_above" yaml:"very_light_above" validate:"gte=0,lte=1,gtefield=LightAbove"`
	// TooLightAbove gates the light mode surface check: only inputs lighter
	// than this can be replaced by LightFallbackColour.
	TooLightAbove  float64 `mapstructure:"too_light_above" json:"too_light_above" yaml:"too_light_above" validate:"gte=0,lte=1,gtefield=VeryLightAbove"`
	SaturatedAbove float64 `mapstructure:"saturated_above" json:"saturated_above" yaml:"saturated_above" validate:"gte=0,lte=1"`
}

// Recipes holds the per-class mixing strengths and saturation caps applied
// before contrast convergence.
type Recipes struct {
	LightMix           float64 `mapstructure:"light_mix" json:"light_mix" yaml:"light_mix" validate:"gte=0,lte=1"`
	VeryLightMix       float64 `mapstructure:"very_light_mix" json:"very_light_mix" yaml:"very_light_mix" validate:"gte=0,lte=1"`
	LightSaturationCap float64 `mapstructure:"light_saturation_cap" json:"light_saturation_cap" yaml:"light_saturation_cap" validate:"gte=0,lte=1"`

	MidSaturatedCap    float64 `mapstructure:"mid_saturated_cap" json:"mid_saturated_cap" yaml:"mid_saturated_cap" validate:"gte=0,lte=1"`
	MidSaturatedMixMin float64 `mapstructure:"mid_saturated_mix_min" json:"mid_saturated_mix_min" yaml:"mid_saturated_mix_min" validate:"gte=0,lte=1"`
	MidSaturatedMixMax float64 `mapstructure:"mid_saturated_mix_max" json:"mid_saturated_mix_max" yaml:"mid_saturated_mix_max" validate:"gte=0,lte=1,gtefield=MidSaturatedMixMin"`
	MidUnsaturatedMix  float64 `mapstructure:"mid_unsaturated_mix" json:"mid_unsaturated_mix" yaml:"mid_unsaturated_mix" validate:"gte=0,lte=1"`

	DarkSaturatedLift float64 `mapstructure:"dark_saturated_lift" json:"dark_saturated_lift" yaml:"dark_saturated_lift" validate:"gte=0,lte=1"`
	DarkSaturatedCap  float64 `mapstructure:"dark_saturated_cap" json:"dark_saturated_cap" yaml:"dark_saturated_cap" validate:"gte=0,lte=1"`

	DarkUnsaturatedLiftMin float64 `mapstructure:"dark_unsaturated_lift_min" json:"dark_unsaturated_lift_min" yaml:"dark_unsaturated_lift_min" validate:"gte=0,lte=1"`
	DarkUnsaturatedLiftMax float64 `mapstructure:"dark_unsaturated_lift_max" json:"dark_unsaturated_lift_max" yaml:"dark_unsaturated_lift_max" validate:"gte=0,lte=1,gtefield=DarkUnsaturatedLiftMin"`

	// SaturationFloorFactor and SaturationFloorCap describe the restoration
	// target min(s*factor, cap) used when a mix drains too much saturation.
	SaturationFloorFactor float64 `mapstructure:"saturation_floor_factor" json:"saturation_floor_factor" yaml:"saturation_floor_factor" validate:"gte=0,lte=1"`
	SaturationFloorCap    float64 `mapstructure:"saturation_floor_cap" json:"saturation_floor_cap" yaml:"saturation_floor_cap" validate:"gte=0,lte=1"`
}

// Converge holds the bounded contrast search parameters.
type Converge struct {
	MaxAttempts int     `mapstructure:"max_attempts" json:"max_attempts" yaml:"max_attempts" validate:"gte=1,lte=100"`
	Step        float64 `mapstructure:"step" json:"step" yaml:"step" validate:"gt=0,lte=1"`
	// DarkStep is used while the candidate is darker than Classifier.DarkBelow.
	DarkStep float64 `mapstructure:"dark_step" json:"dark_step" yaml:"dark_step" validate:"gt=0,lte=1"`
	// SaturationDropLimit is the relative per-iteration saturation loss that
	// triggers restoration (0.2 = 20%).
	SaturationDropLimit float64 `mapstructure:"saturation_drop_limit" json:"saturation_drop_limit" yaml:"saturation_drop_limit" validate:"gte=0,lte=1"`
}

// Variants holds the mixing weights for the 900 (darker) and 100 (lighter) shades.
type Variants struct {
	LightDarkerMix  float64 `mapstructure:"light_darker_mix" json:"light_darker_mix" yaml:"light_darker_mix" validate:"gte=0,lte=1"`
	LightLighterMix float64 `mapstructure:"light_lighter_mix" json:"light_lighter_mix" yaml:"light_lighter_mix" validate:"gte=0,lte=1"`
	DarkDarkerMix   float64 `mapstructure:"dark_darker_mix" json:"dark_darker_mix" yaml:"dark_darker_mix" validate:"gte=0,lte=1"`
	DarkLighterMix  float64 `mapstructure:"dark_lighter_mix" json:"dark_lighter_mix" yaml:"dark_lighter_mix" validate:"gte=0,lte=1"`
}

// Default returns the policy used when nothing is overridden.
func Default() Policy {
	return Policy{
		MinTextContrast:    4.5, // WCAG AA
		MinUIContrast:      3.0, // WCAG AA non-text
		MinSurfaceContrast: 1.5,

		DarkBackground:      "#121212",
		LightBackground:     "#ffffff",
		FallbackColour:      "#d1d1d1",
		LightFallbackColour: "#6b6b6b",

		Classifier: Classifier{
			DarkBelow:      0.4,
			LightAbove:     0.6,
			VeryLightAbove: 0.75,
			TooLightAbove:  0.85,
			SaturatedAbove: 0.5,
		},
		Recipes: Recipes{
			LightMix:               0.4,
			VeryLightMix:           0.6,
			LightSaturationCap:     0.75,
			MidSaturatedCap:        0.8,
			MidSaturatedMixMin:     0.4,
			MidSaturatedMixMax:     0.6,
			MidUnsaturatedMix:      0.3,
			DarkSaturatedLift:      0.05,
			DarkSaturatedCap:       0.9,
			DarkUnsaturatedLiftMin: 0.04,
			DarkUnsaturatedLiftMax: 0.3,
			SaturationFloorFactor:  0.8,
			SaturationFloorCap:     0.8,
		},
		Converge: Converge{
			MaxAttempts:         10,
			Step:                0.1,
			DarkStep:            0.05,
			SaturationDropLimit: 0.2,
		},
		Variants: Variants{
			LightDarkerMix:  0.4,
			LightLighterMix: 0.8,
			DarkDarkerMix:   0.2,
			DarkLighterMix:  0.3,
		},
	}
}
