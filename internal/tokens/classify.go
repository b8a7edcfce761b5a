package tokens

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/policy"
)

// ToneClass buckets an input colour by HSL lightness and saturation.
type ToneClass int

const (
	// ToneLight is any colour lighter than Classifier.LightAbove.
	ToneLight ToneClass = iota
	// ToneMidSaturated is mid lightness with saturation above the cut.
	ToneMidSaturated
	// ToneMidUnsaturated is mid lightness with saturation at or below the cut.
	ToneMidUnsaturated
	// ToneDarkSaturated is darker than Classifier.DarkBelow and saturated.
	ToneDarkSaturated
	// ToneDarkUnsaturated is darker than Classifier.DarkBelow and unsaturated.
	ToneDarkUnsaturated
)

// String returns the string representation of a ToneClass.
func (t ToneClass) String() string {
	switch t {
	case ToneLight:
		return "light"
	case ToneMidSaturated:
		return "mid-saturated"
	case ToneMidUnsaturated:
		return "mid-unsaturated"
	case ToneDarkSaturated:
		return "dark-saturated"
	case ToneDarkUnsaturated:
		return "dark-unsaturated"
	default:
		return "unknown"
	}
}

// MarshalText encodes the class by name.
func (t ToneClass) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Classify maps a (lightness, saturation) pair to exactly one ToneClass.
//
//	l > LightAbove               -> light
//	DarkBelow <= l <= LightAbove -> mid, split on SaturatedAbove
//	l < DarkBelow                -> dark, split on SaturatedAbove
func Classify(l, s float64, p policy.Classifier) ToneClass {
	saturated := s > p.SaturatedAbove

	switch {
	case l > p.LightAbove:
		return ToneLight
	case l < p.DarkBelow:
		if saturated {
			return ToneDarkSaturated
		}
		return ToneDarkUnsaturated
	default:
		if saturated {
			return ToneMidSaturated
		}
		return ToneMidUnsaturated
	}
}

// OpKind is a single recipe step.
type OpKind int

const (
	// OpMixBackground mixes toward the dark background by Amount.
	OpMixBackground OpKind = iota
	// OpMixWhite mixes toward white by Amount.
	OpMixWhite
	// OpCapSaturation lowers saturation to Amount if it is higher.
	OpCapSaturation
	// OpSetSaturation replaces saturation with Amount.
	OpSetSaturation
	// OpRestoreSaturation raises saturation to Amount when the previous
	// steps drained more than the allowed share of the source saturation.
	OpRestoreSaturation
)

// Operation is one step of a Recipe.
type Operation struct {
	Kind   OpKind
	Amount float64
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	switch o.Kind {
	case OpMixBackground:
		return fmt.Sprintf("mix toward background %.2f", o.Amount)
	case OpMixWhite:
		return fmt.Sprintf("mix toward white %.2f", o.Amount)
	case OpCapSaturation:
		return fmt.Sprintf("cap saturation %.2f", o.Amount)
	case OpSetSaturation:
		return fmt.Sprintf("set saturation %.2f", o.Amount)
	case OpRestoreSaturation:
		return fmt.Sprintf("restore saturation %.2f", o.Amount)
	default:
		return "unknown"
	}
}

// Recipe is the ordered list of adjustments applied to an input colour
// before the contrast search runs.
type Recipe struct {
	Class ToneClass
	Ops   []Operation
	// SaturationCap is the class ceiling used by the contrast search when it
	// restores saturation, and by the post-hoc cap.
	SaturationCap float64
}

// String implements fmt.Stringer.
func (r Recipe) String() string {
	parts := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ", ")
}

// MarshalText encodes the recipe in its String form.
func (r Recipe) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Apply runs the recipe. dropLimit is the relative saturation loss
// (0.2 = 20%) that arms OpRestoreSaturation.
func (r Recipe) Apply(c, background colour.Color, dropLimit float64) colour.Color {
	source := c.Saturation()
	out := c

	for _, op := range r.Ops {
		switch op.Kind {
		case OpMixBackground:
			out = out.Mix(background, op.Amount)
		case OpMixWhite:
			out = out.Mix(colour.White, op.Amount)
		case OpCapSaturation:
			if out.Saturation() > op.Amount {
				out = out.WithSaturation(op.Amount)
			}
		case OpSetSaturation:
			out = out.WithSaturation(op.Amount)
		case OpRestoreSaturation:
			s := out.Saturation()
			if s < source*(1-dropLimit) && op.Amount > s {
				out = out.WithSaturation(op.Amount)
			}
		}
	}

	return out
}

// recipeFor builds the recipe for an already classified input.
// Dark unsaturated colours scale their lift by how far the input is from
// the UI target, so near-passing colours move very little.
func recipeFor(class ToneClass, c, background colour.Color, p policy.Policy) Recipe {
	r := p.Recipes
	_, s, l := c.HSL()
	floor := math.Min(s*r.SaturationFloorFactor, r.SaturationFloorCap)

	switch class {
	case ToneLight:
		mix := r.LightMix
		if l > p.Classifier.VeryLightAbove {
			mix = r.VeryLightMix
		}
		return Recipe{
			Class:         class,
			SaturationCap: r.LightSaturationCap,
			Ops: []Operation{
				{Kind: OpMixBackground, Amount: mix},
				{Kind: OpCapSaturation, Amount: r.LightSaturationCap},
			},
		}

	case ToneMidSaturated:
		span := 1 - p.Classifier.SaturatedAbove
		weight := 1.0
		if span > 0 {
			weight = (s - p.Classifier.SaturatedAbove) / span
		}
		mix := r.MidSaturatedMixMin + weight*(r.MidSaturatedMixMax-r.MidSaturatedMixMin)
		return Recipe{
			Class:         class,
			SaturationCap: r.MidSaturatedCap,
			Ops: []Operation{
				{Kind: OpCapSaturation, Amount: r.MidSaturatedCap},
				{Kind: OpMixBackground, Amount: mix},
			},
		}

	case ToneMidUnsaturated:
		return Recipe{
			Class:         class,
			SaturationCap: r.SaturationFloorCap,
			Ops: []Operation{
				{Kind: OpMixBackground, Amount: r.MidUnsaturatedMix},
				{Kind: OpRestoreSaturation, Amount: floor},
			},
		}

	case ToneDarkSaturated:
		return Recipe{
			Class:         class,
			SaturationCap: r.DarkSaturatedCap,
			Ops: []Operation{
				{Kind: OpMixWhite, Amount: r.DarkSaturatedLift},
				{Kind: OpSetSaturation, Amount: math.Min(s, r.DarkSaturatedCap)},
			},
		}

	default:
		deficit := 0.0
		if p.MinUIContrast > 0 {
			deficit = math.Max(0, math.Min(1, 1-colour.ContrastRatio(c, background)/p.MinUIContrast))
		}
		lift := r.DarkUnsaturatedLiftMin + deficit*(r.DarkUnsaturatedLiftMax-r.DarkUnsaturatedLiftMin)
		return Recipe{
			Class:         ToneDarkUnsaturated,
			SaturationCap: r.SaturationFloorCap,
			Ops: []Operation{
				{Kind: OpMixWhite, Amount: lift},
				{Kind: OpRestoreSaturation, Amount: floor},
			},
		}
	}
}
