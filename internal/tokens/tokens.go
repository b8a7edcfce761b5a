// Package tokens derives light and dark mode colour tokens from a single
// action colour.
//
// The pipeline is: classify the input by HSL lightness/saturation, apply the
// class recipe, run a bounded contrast search against the dark background,
// then derive the darker/lighter shades and the text colours. Everything is
// a pure function of the input colour and a policy.Policy.
package tokens

import "github.com/jmylchreest/nocturne/internal/colour"

// Token names exposed to renderers. The 500/900/100 suffixes follow the
// base/darker/lighter shade convention.
const (
	NameBaseLight       = "custom-base-500_light"
	NameDarkerLight     = "custom-base-900_light"
	NameLighterLight    = "custom-base-100_light"
	NameTextOnBaseLight = "textColorOnActionColor_light"

	NameBaseDark       = "custom-base-500_dark"
	NameDarkerDark     = "custom-base-900_dark"
	NameLighterDark    = "custom-base-100_dark"
	NameTextOnBaseDark = "textColorOnActionColor_dark"
	NameBaseTextDark   = "custom-base-500-text_dark"
)

// names is the canonical token order.
var names = []string{
	NameBaseLight,
	NameDarkerLight,
	NameLighterLight,
	NameTextOnBaseLight,
	NameBaseDark,
	NameDarkerDark,
	NameLighterDark,
	NameTextOnBaseDark,
	NameBaseTextDark,
}

// Mode is one token family.
type Mode struct {
	Base       colour.Color `json:"base"`
	Darker     colour.Color `json:"darker"`
	Lighter    colour.Color `json:"lighter"`
	TextOnBase colour.Color `json:"text_on_base"`
}

// TokenSet is the complete result of a derivation.
type TokenSet struct {
	Light Mode
	Dark  Mode
	// DarkBaseText is the action colour tuned to text contrast on the dark
	// background (links, pill labels), as opposed to Dark.Base which only
	// meets the UI threshold.
	DarkBaseText colour.Color
}

// Names returns every token name in canonical order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Get returns a token by name.
func (ts TokenSet) Get(name string) (colour.Color, bool) {
	switch name {
	case NameBaseLight:
		return ts.Light.Base, true
	case NameDarkerLight:
		return ts.Light.Darker, true
	case NameLighterLight:
		return ts.Light.Lighter, true
	case NameTextOnBaseLight:
		return ts.Light.TextOnBase, true
	case NameBaseDark:
		return ts.Dark.Base, true
	case NameDarkerDark:
		return ts.Dark.Darker, true
	case NameLighterDark:
		return ts.Dark.Lighter, true
	case NameTextOnBaseDark:
		return ts.Dark.TextOnBase, true
	case NameBaseTextDark:
		return ts.DarkBaseText, true
	default:
		return colour.Color{}, false
	}
}

// Map returns a fresh name -> "#rrggbb" map. Callers may modify it freely.
func (ts TokenSet) Map() map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		c, _ := ts.Get(name)
		m[name] = c.Hex()
	}
	return m
}
