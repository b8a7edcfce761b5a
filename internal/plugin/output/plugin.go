// Package output provides the interface and base types for output plugins.
package output

import (
	"io/fs"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/tokens"
)

// Plugin represents an output plugin that renders a token derivation into
// one or more files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given derivation.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(d *tokens.Derivation) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// TemplateProvider is implemented by plugins that render embedded templates
// which users may override.
type TemplateProvider interface {
	GetEmbeddedFS() fs.FS
}

// LoggerSetter is implemented by plugins that want the CLI logger.
type LoggerSetter interface {
	SetLogger(logger hclog.Logger)
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
