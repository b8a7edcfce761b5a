// Package css provides an output plugin for CSS custom properties.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/nocturne/internal/plugin/output/template"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

//go:embed *.tmpl
var templates embed.FS

const templateName = "tokens.css.tmpl"

var prefixPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Plugin implements the output.Plugin interface for CSS custom properties.
type Plugin struct {
	prefix    string
	filename  string
	outputDir string
	logger    hclog.Logger
}

// New creates a new CSS output plugin with default settings.
func New() *Plugin {
	return &Plugin{
		filename: "nocturne.css",
		logger:   hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate CSS custom properties with light and dark mode selectors"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.prefix, "css.prefix", p.prefix, "Custom property prefix (e.g. 'nc' gives --nc-custom-base-500-light)")
	cmd.Flags().StringVar(&p.filename, "css.filename", p.filename, "Output file name")
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: current directory)")
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
	if p.prefix != "" && !prefixPattern.MatchString(p.prefix) {
		return fmt.Errorf("invalid prefix %q: must start with a letter and contain only letters, digits and '-'", p.prefix)
	}
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

// Generate renders the stylesheet.
func (p *Plugin) Generate(d *tokens.Derivation) (map[string][]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("derivation cannot be nil")
	}

	loader := tmplloader.New(p.Name(), templates).WithLogger(p.logger)
	tmplContent, _, err := loader.Load(templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("css").Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newData(d, p.prefix)); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}

	return map[string][]byte{p.filename: buf.Bytes()}, nil
}

// Alias is a mode-switching custom property that points at one token per mode.
type Alias struct {
	Name  string
	Light string
	Dark  string
}

// Data is the template context.
type Data struct {
	Prefix  string
	Input   string
	Class   string
	Names   []string
	Aliases []Alias

	d *tokens.Derivation
}

// Derivation implements common.Deriver.
func (d Data) Derivation() *tokens.Derivation {
	return d.d
}

// aliases maps the semantic names used in stylesheets onto the token pairs.
// The light text-safe action colour is the light base itself.
var aliases = []Alias{
	{Name: "action", Light: tokens.NameBaseLight, Dark: tokens.NameBaseDark},
	{Name: "action-darker", Light: tokens.NameDarkerLight, Dark: tokens.NameDarkerDark},
	{Name: "action-lighter", Light: tokens.NameLighterLight, Dark: tokens.NameLighterDark},
	{Name: "text-on-action", Light: tokens.NameTextOnBaseLight, Dark: tokens.NameTextOnBaseDark},
	{Name: "action-text", Light: tokens.NameBaseLight, Dark: tokens.NameBaseTextDark},
}

func newData(d *tokens.Derivation, prefix string) Data {
	return Data{
		Prefix:  prefix,
		Input:   d.Input.Hex(),
		Class:   d.Class.String(),
		Names:   tokens.Names(),
		Aliases: aliases,
		d:       d,
	}
}
