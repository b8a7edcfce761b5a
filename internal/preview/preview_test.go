package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/policy"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

func derive(t *testing.T, hex string) *tokens.Derivation {
	t.Helper()
	d, err := tokens.New(policy.Default())
	if err != nil {
		t.Fatalf("tokens.New() error = %v", err)
	}
	res, err := d.Derive(hex)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	return res
}

func TestRender(t *testing.T) {
	d := derive(t, "#3366ff")

	var buf bytes.Buffer
	out := New(&buf).Render(d)

	required := []string{
		"#3366ff",
		"mid-saturated",
		"Light mode",
		"Dark mode",
		"Base 500",
		"900",
		"100",
		"WCAG AA",
		"Your order has shipped!",
		"Status: new",
		"View details",
		d.Tokens.Dark.Base.Hex(),
		d.Tokens.Light.Darker.Hex(),
	}
	for _, s := range required {
		if !strings.Contains(out, s) {
			t.Errorf("Render() missing %q", s)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	d := derive(t, "#3366ff")
	var buf bytes.Buffer

	wide := New(&buf).WithWidth(200).Render(d)
	narrow := New(&buf).WithWidth(40).Render(d)

	// Side by side puts both titles on one line.
	if !lineContainsBoth(wide, "Light mode", "Dark mode") {
		t.Error("wide layout should place panels side by side")
	}
	if lineContainsBoth(narrow, "Light mode", "Dark mode") {
		t.Error("narrow layout should stack panels")
	}
}

func lineContainsBoth(s, a, b string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, a) && strings.Contains(line, b) {
			return true
		}
	}
	return false
}

func TestBadge(t *testing.T) {
	r := New(&bytes.Buffer{})

	if got := r.badge(true); !strings.Contains(got, "WCAG AA compliant") {
		t.Errorf("badge(true) = %q", got)
	}
	if got := r.badge(false); !strings.Contains(got, "below WCAG AA") {
		t.Errorf("badge(false) = %q", got)
	}
}

func TestRenderBadgeFollowsPolicy(t *testing.T) {
	strict := policy.Default()
	strict.MinTextContrast = 7
	dv, err := tokens.New(strict)
	if err != nil {
		t.Fatalf("tokens.New() error = %v", err)
	}

	// White text on #3366ff is 4.7:1: AA under the default policy, short of 7:1.
	loose := New(&bytes.Buffer{}).WithWidth(200).Render(derive(t, "#3366ff"))
	tight := New(&bytes.Buffer{}).WithWidth(200).Render(dv.DeriveColour(colour.MustParse("#3366ff")))

	if got, base := strings.Count(tight, "below WCAG AA"), strings.Count(loose, "below WCAG AA"); got <= base {
		t.Errorf("failing badges at 7:1 = %d, want more than %d at 4.5:1", got, base)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}
