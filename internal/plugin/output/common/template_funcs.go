// Package common provides shared utilities for output plugins.
package common

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

// TemplateFuncs returns standard template functions for all output plugins.
// These functions provide consistent token access and formatting across all templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Token access.
		"get":     getTokenFunc,
		"getSafe": getSafeTokenFunc,
		"tokens":  tokenNamesFunc,

		// Format conversion.
		"hex":       hexFunc,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"rgbSpaces": rgbSpacesFunc,
		"hsl":       hslFunc,

		// Accessibility.
		"contrast": contrastFunc,

		// Naming.
		"cssVar": CSSVarName,

		// String manipulation (custom wrappers for pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// Deriver is implemented by template data that wraps a derivation.
type Deriver interface {
	Derivation() *tokens.Derivation
}

// getTokenFunc returns a token colour by name.
// Panics if the token doesn't exist - use getSafe to check first.
func getTokenFunc(data any, name string) colour.Color {
	c, ok := extractTokens(data).Get(name)
	if !ok {
		panic(fmt.Sprintf("unknown token %q", name))
	}
	return c
}

// getSafeTokenFunc returns a token colour by name with existence check.
// Returns error if the token doesn't exist (Go template convention).
func getSafeTokenFunc(data any, name string) (colour.Color, error) {
	c, ok := extractTokens(data).Get(name)
	if !ok {
		return colour.Color{}, fmt.Errorf("token %q not found", name)
	}
	return c, nil
}

// tokenNamesFunc returns every token name in canonical order.
func tokenNamesFunc() []string {
	return tokens.Names()
}

// extractTokens extracts the TokenSet from *tokens.Derivation or a Deriver.
func extractTokens(data any) tokens.TokenSet {
	switch v := data.(type) {
	case *tokens.Derivation:
		return v.Tokens
	case Deriver:
		return v.Derivation().Tokens
	case tokens.TokenSet:
		return v
	default:
		panic(fmt.Sprintf("expected *tokens.Derivation or tokens.TokenSet, got %T", data))
	}
}

// hexFunc returns color in #rrggbb format.
func hexFunc(c colour.Color) string {
	return c.Hex()
}

// hexNoHashFunc returns color in rrggbb format (no # prefix).
func hexNoHashFunc(c colour.Color) string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// rgbFunc returns color in CSS rgb(r, g, b) format.
func rgbFunc(c colour.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// rgbSpacesFunc returns "r g b", the channel form Tailwind uses with <alpha-value>.
func rgbSpacesFunc(c colour.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// hslFunc returns "hue saturation% lightness%" (e.g., "225.0 100.0% 60.0%").
func hslFunc(c colour.Color) string {
	h, s, l := c.HSL()
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s*100, l*100)
}

// contrastFunc returns the WCAG contrast ratio formatted to two decimals.
func contrastFunc(a, b colour.Color) string {
	return fmt.Sprintf("%.2f", colour.ContrastRatio(a, b))
}

// CSSVarName turns a token name into a CSS custom property name.
// "custom-base-500_dark" with prefix "nc" becomes "--nc-custom-base-500-dark".
func CSSVarName(prefix, name string) string {
	name = strings.ReplaceAll(name, "_", "-")
	if prefix == "" {
		return "--" + name
	}
	return "--" + strings.TrimSuffix(prefix, "-") + "-" + name
}

// trimPrefixFunc removes prefix from string (pipe-friendly argument order).
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc removes suffix from string (pipe-friendly argument order).
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
func replaceFunc(old, replacement, s string) string {
	return strings.ReplaceAll(s, old, replacement)
}
