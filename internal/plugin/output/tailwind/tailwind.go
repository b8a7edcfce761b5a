// Package tailwind provides a Tailwind CSS / shadcn/ui output plugin.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/nocturne/internal/plugin/output/template"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

//go:embed *.tmpl
var templates embed.FS

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // "css" or "config"
	outputDir string
	logger    hclog.Logger
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat("css")
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format: format,
		logger: hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate Tailwind CSS / shadcn/ui theme variables or config"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", p.format, "Output format (css or config)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: app/, src/app/ or current directory)")
}

// SetLogger implements output.LoggerSetter.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// GetEmbeddedFS implements output.TemplateProvider.
func (p *Plugin) GetEmbeddedFS() fs.FS {
	return templates
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != "css" && p.format != "config" {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	if p.format == "config" {
		return "."
	}

	// For CSS, try to detect if we're in a Next.js project
	if _, err := os.Stat("app"); err == nil {
		return "app"
	}
	if _, err := os.Stat("src"); err == nil {
		return filepath.Join("src", "app")
	}

	return "."
}

// Generate creates the Tailwind CSS variables or config from the derivation.
func (p *Plugin) Generate(d *tokens.Derivation) (map[string][]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("derivation cannot be nil")
	}

	filename, tmplName := "globals.css", "globals.css.tmpl"
	if p.format == "config" {
		filename, tmplName = "tailwind.config.js", "tailwind.config.js.tmpl"
	}

	content, err := p.render(tmplName, newData(d))
	if err != nil {
		return nil, err
	}

	return map[string][]byte{filename: content}, nil
}

func (p *Plugin) render(name string, data Data) ([]byte, error) {
	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	tmplContent, _, err := loader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", name, err)
	}

	return buf.Bytes(), nil
}

// Data holds the template context for both formats.
type Data struct {
	Input string
	Class string
	Light tokens.Mode
	Dark  tokens.Mode
	// LightText and DarkText are the action colours safe for text on the
	// page background.
	LightText colour.Color
	DarkText  colour.Color

	d *tokens.Derivation
}

// Derivation implements common.Deriver.
func (d Data) Derivation() *tokens.Derivation {
	return d.d
}

func newData(d *tokens.Derivation) Data {
	ts := d.Tokens
	return Data{
		Input:     d.Input.Hex(),
		Class:     d.Class.String(),
		Light:     ts.Light,
		Dark:      ts.Dark,
		LightText: ts.Light.Base,
		DarkText:  ts.DarkBaseText,
		d:         d,
	}
}
