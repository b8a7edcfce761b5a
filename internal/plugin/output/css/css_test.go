package css

import (
	"strings"
	"testing"

	plugintesting "github.com/jmylchreest/nocturne/internal/plugin/output/testing"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

// TestCSSPlugin runs all standard plugin tests using shared utilities.
func TestCSSPlugin(t *testing.T) {
	plugintesting.RunAllTests(t, New(), plugintesting.TestConfig{
		ExpectedName:  "css",
		ExpectedFiles: []string{"nocturne.css"},
	})
}

func TestCSSPlugin_Validate(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		wantErr bool
	}{
		{name: "empty prefix", prefix: "", wantErr: false},
		{name: "simple prefix", prefix: "nc", wantErr: false},
		{name: "dashed prefix", prefix: "brand-ui", wantErr: false},
		{name: "leading digit", prefix: "1nc", wantErr: true},
		{name: "whitespace", prefix: "n c", wantErr: true},
		{name: "css injection", prefix: "nc;}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			p.prefix = tt.prefix
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCSSPlugin_ContentValidation checks the selectors and every token value.
func TestCSSPlugin_ContentValidation(t *testing.T) {
	d := plugintesting.CreateTestDerivation(t, "#3366ff")
	p := New()
	p.SetLogger(nil)

	files, err := p.Generate(d)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	css := string(files["nocturne.css"])

	required := []string{
		":root {",
		"@media (prefers-color-scheme: dark)",
		`:root:not([data-theme="light"])`,
		`[data-theme="dark"] {`,
		"--custom-base-500-light: #3366ff;",
		"--action: var(--custom-base-500-light);",
		"--action: var(--custom-base-500-dark);",
		"--action-text: var(--custom-base-500-text-dark);",
		"--text-on-action: var(--textColorOnActionColor-dark);",
	}
	for _, s := range required {
		if !strings.Contains(css, s) {
			t.Errorf("CSS missing %q", s)
		}
	}

	for _, name := range tokens.Names() {
		c, _ := d.Tokens.Get(name)
		decl := "--" + strings.ReplaceAll(name, "_", "-") + ": " + c.Hex() + ";"
		if !strings.Contains(css, decl) {
			t.Errorf("CSS missing declaration %q", decl)
		}
	}

	if strings.Count(css, "{") != strings.Count(css, "}") {
		t.Error("CSS has unbalanced braces")
	}
}

func TestCSSPlugin_Prefix(t *testing.T) {
	p := New()
	p.prefix = "nc"

	files, err := p.Generate(plugintesting.CreateTestDerivation(t, "#3366ff"))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	css := string(files["nocturne.css"])

	if !strings.Contains(css, "--nc-action: var(--nc-custom-base-500-light);") {
		t.Errorf("prefixed alias missing:\n%s", css)
	}
	if strings.Contains(css, "  --custom-base") {
		t.Error("unprefixed property found with prefix set")
	}
}
