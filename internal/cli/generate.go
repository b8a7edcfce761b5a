package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/plugin/output"
	"github.com/jmylchreest/nocturne/internal/preview"
	"github.com/jmylchreest/nocturne/internal/security"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

type generateOptions struct {
	*rootOptions

	outputs   []string
	outputDir string
	dryRun    bool
	preview   bool

	registry *output.Registry
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{
		rootOptions: root,
		registry:    newRegistry(),
	}

	cmd := &cobra.Command{
		Use:   "generate <colour>",
		Short: "Generate token files from a brand colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.outputs, "outputs", "o", []string{"json"}, "Output plugins (comma-separated or 'all')")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Write every output to this directory instead of each plugin's default")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without writing files")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Show a terminal preview of the tokens")

	for _, name := range opts.registry.List() {
		p, _ := opts.registry.Get(name)
		p.RegisterFlags(cmd)
	}

	cmd.Long = buildGenerateHelp(opts.registry)
	return cmd
}

// buildGenerateHelp lists the registered plugins in the help text.
func buildGenerateHelp(reg *output.Registry) string {
	var b strings.Builder
	b.WriteString(`Derive light and dark mode action tokens from a colour and write them
through one or more output plugins.

The colour is a 3 or 6 digit hex value, with or without a leading '#'.
Use --lenient to accept pasted values such as "#33 66 FF;".

Output Plugins:
`)
	for _, name := range reg.List() {
		p, _ := reg.Get(name)
		fmt.Fprintf(&b, "  %-9s - %s\n", name, p.Description())
	}
	b.WriteString(`
Examples:
  # Token report as JSON in the current directory
  nocturne generate "#3366FF"

  # CSS custom properties and Tailwind variables
  nocturne generate 3366ff -o css,tailwind --css.prefix brand

  # Everything, into one directory
  nocturne generate 3366ff -o all --output-dir ./theme

  # Preview before writing
  nocturne generate 3366ff --preview --dry-run`)
	return b.String()
}

// selectPlugins resolves the --outputs names against the registry.
func (o *generateOptions) selectPlugins() ([]output.Plugin, error) {
	if len(o.outputs) == 1 && o.outputs[0] == "all" {
		plugins := make([]output.Plugin, 0, len(o.registry.List()))
		for _, name := range o.registry.List() {
			p, _ := o.registry.Get(name)
			plugins = append(plugins, p)
		}
		return plugins, nil
	}

	seen := make(map[string]bool)
	var plugins []output.Plugin
	for _, name := range o.outputs {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		p, ok := o.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(o.registry.List(), ", "))
		}
		seen[name] = true
		plugins = append(plugins, p)
	}

	if len(plugins) == 0 {
		return nil, fmt.Errorf("no output plugins selected")
	}
	return plugins, nil
}

func (o *generateOptions) run(cmd *cobra.Command, arg string) error {
	plugins, err := o.selectPlugins()
	if err != nil {
		return err
	}

	dv, d, err := o.derive(cmd, arg)
	if err != nil {
		return err
	}
	warnFallbacks(o.logger, d)

	out := cmd.OutOrStdout()
	if o.preview {
		fmt.Fprintln(out)
		fmt.Fprint(out, preview.New(out).WithBackgrounds(dv.LightBackground(), dv.DarkBackground()).Render(d))
		fmt.Fprintln(out)
	}

	successCount := 0
	for _, plugin := range plugins {
		if setter, ok := plugin.(output.LoggerSetter); ok {
			setter.SetLogger(o.logger)
		}

		if err := plugin.Validate(); err != nil {
			o.logger.Warn("skipping output plugin", "plugin", plugin.Name(), "error", err)
			continue
		}

		o.logger.Debug("running output plugin", "plugin", plugin.Name(), "description", plugin.Description())

		files, err := plugin.Generate(d)
		if err != nil {
			o.logger.Error("output plugin failed", "plugin", plugin.Name(), "error", err)
			continue
		}

		dir := plugin.DefaultOutputDir()
		if o.outputDir != "" {
			dir = o.outputDir
		}

		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := security.ValidateOutputName(name, dir); err != nil {
				return fmt.Errorf("%s: %w", plugin.Name(), err)
			}
			content := files[name]
			fullPath := filepath.Join(dir, name)

			if o.dryRun {
				fmt.Fprintf(out, "  Would write: %s (%d bytes)\n", fullPath, len(content))
				continue
			}
			if err := writeFile(cmd.ErrOrStderr(), fullPath, content); err != nil {
				return fmt.Errorf("failed to write %s: %w", fullPath, err)
			}
			if !o.quiet {
				fmt.Fprintf(out, "  ├─ %s (%d bytes)\n", fullPath, len(content))
			}
		}

		successCount++
	}

	if successCount == 0 {
		return fmt.Errorf("no output plugins succeeded")
	}
	if !o.dryRun && !o.quiet {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "✓ Done! Generated %d output plugin(s)\n", successCount)
	}
	return nil
}

// warnFallbacks reports every token that had to give up on its contrast
// target. The Deriver logs the search details at debug level.
func warnFallbacks(logger hclog.Logger, d *tokens.Derivation) {
	results := map[string]tokens.ConvergeResult{
		tokens.NameBaseDark:     d.DarkBase,
		tokens.NameBaseTextDark: d.DarkBaseText,
		tokens.NameDarkerDark:   d.DarkDarker,
		tokens.NameLighterDark:  d.DarkLighter,
	}
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if r := results[name]; r.State == tokens.StateFallback {
			logger.Warn("token uses fallback colour", "token", name, "colour", r.Colour.Hex(), "contrast", fmt.Sprintf("%.2f", r.Contrast))
		}
	}
	if d.LightSurfaceFallback {
		logger.Warn("light base too close to the light background, uses fallback colour",
			"token", tokens.NameBaseLight, "input", d.Input.Hex(), "colour", d.Tokens.Light.Base.Hex())
	}
	if d.LightTextFallback {
		logger.Warn("light base uses fallback colour", "token", tokens.NameBaseLight, "colour", d.Tokens.Light.Base.Hex())
	}
}

// writeFile writes content to a file, creating directories as needed.
// An existing file is kept as path.backup.
func writeFile(log io.Writer, path string, content []byte) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backupPath := path + ".backup"
		if err := os.Rename(path, backupPath); err != nil {
			fmt.Fprintf(log, "  ⚠ Could not create backup: %v\n", err)
		} else {
			fmt.Fprintf(log, "  ℹ Created backup: %s\n", backupPath)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
