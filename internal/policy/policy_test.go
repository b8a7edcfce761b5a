package policy

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Policy)
		wantField string
	}{
		{
			name:      "contrast above 21",
			mutate:    func(p *Policy) { p.MinTextContrast = 22 },
			wantField: "MinTextContrast",
		},
		{
			name:      "bad background",
			mutate:    func(p *Policy) { p.DarkBackground = "121212" },
			wantField: "DarkBackground",
		},
		{
			name:      "missing fallback",
			mutate:    func(p *Policy) { p.FallbackColour = "" },
			wantField: "FallbackColour",
		},
		{
			name:      "zero attempts",
			mutate:    func(p *Policy) { p.Converge.MaxAttempts = 0 },
			wantField: "Converge.MaxAttempts",
		},
		{
			name:      "zero step",
			mutate:    func(p *Policy) { p.Converge.Step = 0 },
			wantField: "Converge.Step",
		},
		{
			name: "light cut below dark cut",
			mutate: func(p *Policy) {
				p.Classifier.DarkBelow = 0.5
				p.Classifier.LightAbove = 0.45
			},
			wantField: "Classifier.LightAbove",
		},
		{
			name:      "too light cut below very light cut",
			mutate:    func(p *Policy) { p.Classifier.TooLightAbove = 0.7 },
			wantField: "Classifier.TooLightAbove",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)

			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error type = %T, want *ValidationError", err)
			}

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() fields = %+v, want %s", verr.Errors, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Error() = %q, should mention %s", err.Error(), tt.wantField)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p != Default() {
		t.Errorf("Load() = %+v, want %+v", p, Default())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := `min_ui_contrast: 2.5
dark_background: "#1e1e1e"
converge:
  max_attempts: 4
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	p, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.MinUIContrast != 2.5 {
		t.Errorf("MinUIContrast = %v, want 2.5", p.MinUIContrast)
	}
	if p.DarkBackground != "#1e1e1e" {
		t.Errorf("DarkBackground = %s, want #1e1e1e", p.DarkBackground)
	}
	if p.Converge.MaxAttempts != 4 {
		t.Errorf("Converge.MaxAttempts = %d, want 4", p.Converge.MaxAttempts)
	}
	// Untouched keys keep their defaults.
	if p.MinTextContrast != Default().MinTextContrast {
		t.Errorf("MinTextContrast = %v, want %v", p.MinTextContrast, Default().MinTextContrast)
	}
	if p.Classifier != Default().Classifier {
		t.Errorf("Classifier = %+v, want defaults", p.Classifier)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("NOCTURNE_MIN_TEXT_CONTRAST", "7")
	t.Setenv("NOCTURNE_CONVERGE_DARK_STEP", "0.02")

	p, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.MinTextContrast != 7 {
		t.Errorf("MinTextContrast = %v, want 7", p.MinTextContrast)
	}
	if p.Converge.DarkStep != 0.02 {
		t.Errorf("Converge.DarkStep = %v, want 0.02", p.Converge.DarkStep)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("NOCTURNE_MIN_UI_CONTRAST", "2")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse([]string{"--min-ui-contrast=3.5", "--max-attempts=6"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p, err := Load("", fs)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.MinUIContrast != 3.5 {
		t.Errorf("MinUIContrast = %v, want 3.5", p.MinUIContrast)
	}
	if p.Converge.MaxAttempts != 6 {
		t.Errorf("Converge.MaxAttempts = %d, want 6", p.Converge.MaxAttempts)
	}
	// Unchanged flags must not clobber defaults.
	if p.DarkBackground != Default().DarkBackground {
		t.Errorf("DarkBackground = %s, want %s", p.DarkBackground, Default().DarkBackground)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("NOCTURNE_MIN_UI_CONTRAST", "40")

	if _, err := Load("", nil); err == nil {
		t.Error("Load() error = nil, want validation error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}
