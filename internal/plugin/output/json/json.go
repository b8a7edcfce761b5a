// Package json provides an output plugin that writes the token set as JSON.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

// Plugin implements the output.Plugin interface for JSON token files.
type Plugin struct {
	report    bool
	indent    bool
	filename  string
	outputDir string
}

// New creates a new JSON output plugin.
func New() *Plugin {
	return &Plugin{
		indent:   true,
		filename: "nocturne.json",
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Write tokens as a JSON object, optionally with a derivation report"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.report, "json.report", false, "Include class, recipe and contrast diagnostics")
	cmd.Flags().BoolVar(&p.indent, "json.indent", p.indent, "Indent output")
	cmd.Flags().StringVar(&p.filename, "json.filename", p.filename, "Output file name")
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Document is the file layout.
type Document struct {
	Input  string            `json:"input"`
	Tokens map[string]string `json:"tokens"`
	Report *Report           `json:"report,omitempty"`
}

// Report carries the diagnostics of a derivation.
type Report struct {
	*tokens.Derivation

	// TextContrast is the contrast of each mode's text colour on its base.
	TextContrast map[string]float64 `json:"text_contrast"`
	// WCAGAA is true when both text colours reach the derivation's
	// MinTextContrast on their base.
	WCAGAA bool `json:"wcag_aa"`
}

// Generate renders the JSON document.
func (p *Plugin) Generate(d *tokens.Derivation) (map[string][]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("derivation cannot be nil")
	}

	doc := Document{
		Input:  d.Input.Hex(),
		Tokens: d.Tokens.Map(),
	}
	if p.report {
		doc.Report = NewReport(d)
	}

	var (
		data []byte
		err  error
	)
	if p.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tokens: %w", err)
	}

	return map[string][]byte{p.filename: append(data, '\n')}, nil
}

// NewReport builds the report section for d.
func NewReport(d *tokens.Derivation) *Report {
	light := colour.ContrastRatio(d.Tokens.Light.TextOnBase, d.Tokens.Light.Base)
	dark := colour.ContrastRatio(d.Tokens.Dark.TextOnBase, d.Tokens.Dark.Base)

	return &Report{
		Derivation: d,
		TextContrast: map[string]float64{
			tokens.NameTextOnBaseLight: round2(light),
			tokens.NameTextOnBaseDark:  round2(dark),
		},
		WCAGAA: d.TextPasses(d.Tokens.Light) && d.TextPasses(d.Tokens.Dark),
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
