package tokens

import (
	"testing"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/policy"
)

func testConverger(target float64) Converger {
	p := policy.Default()
	return Converger{
		Background:    colour.MustParse(p.DarkBackground),
		Fallback:      colour.MustParse(p.FallbackColour),
		Target:        target,
		SaturationCap: 0.8,
		DarkBelow:     p.Classifier.DarkBelow,
		Params:        p.Converge,
	}
}

func TestConvergeAlreadyMeetsTarget(t *testing.T) {
	cv := testConverger(3.0)
	candidate := colour.MustParse("#7fa0ff")

	res := cv.Run(candidate)
	if res.State != StateConverged {
		t.Fatalf("State = %s, want converged", res.State)
	}
	if res.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", res.Attempts)
	}
	if !res.Colour.Equal(candidate) {
		t.Errorf("Colour = %s, want unchanged %s", res.Colour, candidate)
	}
}

func TestConvergeLightensTowardTarget(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		target float64
	}{
		{name: "dark gray ui", hex: "#434343", target: 3.0},
		{name: "dark gray text", hex: "#434343", target: 4.5},
		{name: "navy ui", hex: "#1a237e", target: 3.0},
		{name: "dark red ui", hex: "#7f1010", target: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := testConverger(tt.target)
			candidate := colour.MustParse(tt.hex)

			res := cv.Run(candidate)
			if res.Attempts > cv.Params.MaxAttempts {
				t.Fatalf("Attempts = %d, exceeds %d", res.Attempts, cv.Params.MaxAttempts)
			}
			if res.State != StateConverged {
				t.Fatalf("State = %s after %d attempts, want converged", res.State, res.Attempts)
			}
			if got := colour.ContrastRatio(res.Colour, cv.Background); got < tt.target {
				t.Errorf("contrast = %.2f, want >= %.2f", got, tt.target)
			}
			if res.Contrast != colour.ContrastRatio(res.Colour, cv.Background) {
				t.Errorf("reported contrast %.4f does not match colour", res.Contrast)
			}
			if res.Attempts == 0 {
				t.Error("Attempts = 0, expected at least one mix")
			}
			if colour.Luminance(res.Colour) <= colour.Luminance(candidate) {
				t.Errorf("colour did not lighten: %s -> %s", candidate, res.Colour)
			}
		})
	}
}

func TestConvergeFallback(t *testing.T) {
	cv := testConverger(3.0)
	cv.Params.MaxAttempts = 1
	cv.Params.DarkStep = 0.01

	res := cv.Run(colour.Black)
	if res.State != StateFallback {
		t.Fatalf("State = %s, want fallback", res.State)
	}
	if !res.Colour.Equal(cv.Fallback) {
		t.Errorf("Colour = %s, want fallback %s", res.Colour, cv.Fallback)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
	if res.Converged() {
		t.Error("Converged() = true, want false")
	}
}

func TestConvergeVeryDarkInputStaysBounded(t *testing.T) {
	cv := testConverger(3.0)
	res := cv.Run(colour.MustParse("#101010"))

	if res.Attempts > cv.Params.MaxAttempts {
		t.Fatalf("Attempts = %d, exceeds %d", res.Attempts, cv.Params.MaxAttempts)
	}
	if !res.Converged() && !res.Colour.Equal(cv.Fallback) {
		t.Errorf("result %s neither converged nor fallback", res.Colour)
	}
	if res.Converged() && res.Contrast < cv.Target {
		t.Errorf("contrast = %.2f, want >= %.2f", res.Contrast, cv.Target)
	}
}

func TestConvergeUsesSmallStepForDarkColours(t *testing.T) {
	cv := testConverger(3.0)
	cv.Params.MaxAttempts = 1
	candidate := colour.MustParse("#202020") // l~0.125

	res := cv.Run(candidate)
	want := candidate.Mix(colour.White, cv.Params.DarkStep)
	if res.State == StateConverged && !res.Colour.Equal(want) {
		t.Errorf("first step = %s, want %s", res.Colour, want)
	}
	if got := cv.step(candidate, true); got != cv.Params.DarkStep {
		t.Errorf("step(dark) = %.2f, want %.2f", got, cv.Params.DarkStep)
	}
	if got := cv.step(colour.MustParse("#a0a0a0"), true); got != cv.Params.Step {
		t.Errorf("step(light) = %.2f, want %.2f", got, cv.Params.Step)
	}
}

func TestConvergeLightBackgroundDarkens(t *testing.T) {
	cv := testConverger(4.5)
	cv.Background = colour.White
	candidate := colour.MustParse("#999999")

	res := cv.Run(candidate)
	if !res.Converged() {
		t.Fatalf("State = %s, want converged", res.State)
	}
	if colour.Luminance(res.Colour) >= colour.Luminance(candidate) {
		t.Errorf("colour did not darken: %s -> %s", candidate, res.Colour)
	}
	if res.Contrast < 4.5 {
		t.Errorf("contrast = %.2f, want >= 4.5", res.Contrast)
	}
}

func TestConvergeCandidateBeyondBackground(t *testing.T) {
	cv := testConverger(3.0)

	// Black is darker than the #121212 background.
	res := cv.Run(colour.Black)
	if !res.Converged() {
		t.Fatalf("State = %s after %d attempts, want converged", res.State, res.Attempts)
	}
	if colour.Luminance(res.Colour) <= colour.Luminance(cv.Background) {
		t.Errorf("colour %s did not pass the background luminance", res.Colour)
	}
	if res.Contrast < cv.Target {
		t.Errorf("contrast = %.2f, want >= %.2f", res.Contrast, cv.Target)
	}
}

func TestConvergeDeterministic(t *testing.T) {
	cv := testConverger(4.5)
	first := cv.Run(colour.MustParse("#1a237e"))
	for i := 0; i < 5; i++ {
		if again := cv.Run(colour.MustParse("#1a237e")); again != first {
			t.Fatalf("run %d = %+v, want %+v", i, again, first)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReady, "ready"},
		{StateIterating, "iterating"},
		{StateConverged, "converged"},
		{StateFallback, "fallback"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
