// Package template loads plugin templates, preferring user overrides in
// $XDG_CONFIG_HOME/nocturne/templates/{plugin}/ over the embedded defaults.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by Dump when an override is already present
// and force is not set.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader resolves a plugin's templates against its override directory.
type Loader struct {
	pluginName string
	fsys       fs.FS
	customBase string
	logger     hclog.Logger
}

// New creates a loader for pluginName backed by fsys (normally the plugin's
// embed.FS).
func New(pluginName string, fsys fs.FS) *Loader {
	base := ""
	if dir, err := os.UserConfigDir(); err == nil {
		base = filepath.Join(dir, "nocturne", "templates")
	}

	return &Loader{
		pluginName: pluginName,
		fsys:       fsys,
		customBase: base,
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase overrides the override root directory.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template source was used.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger.Named(l.pluginName)
	}
	return l
}

// Load returns the template content and whether it came from an override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		customPath := l.CustomPath(filename)
		if content, err := os.ReadFile(customPath); err == nil {
			l.logger.Debug("using custom template", "path", customPath)
			return content, true, nil
		}
	}

	content, err = fs.ReadFile(l.fsys, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	l.logger.Trace("using embedded template", "name", filename)

	return content, false, nil
}

// Name returns the plugin the loader serves.
func (l *Loader) Name() string {
	return l.pluginName
}

// CustomDir returns the override directory for this plugin.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.pluginName)
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.CustomDir(), filepath.FromSlash(filename))
}

// HasCustomTemplate reports whether an override exists for filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns the embedded .tmpl files in walk order.
func (l *Loader) List() ([]string, error) {
	var templates []string

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			templates = append(templates, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	return templates, nil
}

// Dump copies an embedded template into the override directory and returns
// the written path. Existing overrides are kept unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := fs.ReadFile(l.fsys, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force && l.HasCustomTemplate(filename) {
		return outputPath, fmt.Errorf("%w: %s", ErrTemplateExists, outputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %q: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return outputPath, nil
}

// DumpAll dumps every embedded template. Templates that already have an
// override are skipped and reported in the joined error; any other failure
// stops immediately.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	templates, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error

	for _, name := range templates {
		written, err := l.Dump(name, force)
		switch {
		case errors.Is(err, ErrTemplateExists):
			skipped = append(skipped, err)
		case err != nil:
			return dumped, err
		default:
			dumped = append(dumped, written)
		}
	}

	return dumped, errors.Join(skipped...)
}
