package tokens

import (
	"math"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/policy"
)

// State is the position of a contrast search.
type State int

const (
	// StateReady is a search that has not started.
	StateReady State = iota
	// StateIterating is a search still below its target.
	StateIterating
	// StateConverged is a search that met its target.
	StateConverged
	// StateFallback is a search that ran out of attempts.
	StateFallback
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ConvergeResult is the outcome of one contrast search.
type ConvergeResult struct {
	Colour   colour.Color `json:"colour"`
	Contrast float64      `json:"contrast"`
	Target   float64      `json:"target"`
	Attempts int          `json:"attempts"`
	State    State        `json:"state"`
}

// Converged reports whether the target was met without falling back.
func (r ConvergeResult) Converged() bool {
	return r.State == StateConverged
}

// Converger nudges a candidate toward a minimum contrast against a fixed
// background. It never runs more than Params.MaxAttempts mixes, and if the
// target is still missed the result is Fallback with all partial work
// discarded.
type Converger struct {
	Background colour.Color
	Fallback   colour.Color
	Target     float64
	// SaturationCap bounds saturation restoration.
	SaturationCap float64
	// DarkBelow selects the smaller step for colours far from the mix pole.
	DarkBelow float64
	Params    policy.Converge
}

// Run executes the search.
func (cv Converger) Run(candidate colour.Color) ConvergeResult {
	result := ConvergeResult{
		Colour:   candidate,
		Contrast: colour.ContrastRatio(candidate, cv.Background),
		Target:   cv.Target,
		State:    StateReady,
	}

	// The pole is the side opposite the background, also for candidates that
	// start beyond it (black on #121212): a mix toward the background never
	// raises contrast.
	pole := colour.White
	towardWhite := colour.IsDark(cv.Background)
	if !towardWhite {
		pole = colour.Black
	}

	current := candidate
	for result.Contrast < cv.Target && result.Attempts < cv.Params.MaxAttempts {
		result.State = StateIterating
		prevSat := current.Saturation()

		next := current.Mix(pole, cv.step(current, towardWhite))

		if sat := next.Saturation(); prevSat > 0 && sat < prevSat*(1-cv.Params.SaturationDropLimit) {
			floor := math.Min(prevSat*(1-cv.Params.SaturationDropLimit), cv.SaturationCap)
			if floor > sat {
				next = next.WithSaturation(floor)
			}
		}

		current = next
		result.Contrast = colour.ContrastRatio(current, cv.Background)
		result.Attempts++
	}

	if result.Contrast >= cv.Target {
		result.Colour = current
		result.State = StateConverged
		return result
	}

	result.Colour = cv.Fallback
	result.Contrast = colour.ContrastRatio(cv.Fallback, cv.Background)
	result.State = StateFallback
	return result
}

// step picks the mix weight for one iteration. Colours far from the pole
// take the smaller step so one mix cannot overshoot.
func (cv Converger) step(c colour.Color, towardWhite bool) float64 {
	l := c.Lightness()
	if towardWhite && l < cv.DarkBelow {
		return cv.Params.DarkStep
	}
	if !towardWhite && l > 1-cv.DarkBelow {
		return cv.Params.DarkStep
	}
	return cv.Params.Step
}
