package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/plugin/output"
	"github.com/jmylchreest/nocturne/internal/plugin/output/template"
)

type templatesOptions struct {
	*rootOptions

	plugins  []string
	force    bool
	location string

	registry *output.Registry
}

func newTemplatesCmd(root *rootOptions) *cobra.Command {
	opts := &templatesOptions{
		rootOptions: root,
		registry:    newRegistry(),
	}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `List and dump the embedded output plugin templates.

Templates placed in $XDG_CONFIG_HOME/nocturne/templates/{plugin}/ are used
instead of the embedded ones.

Examples:
  nocturne templates list
  nocturne templates dump -o css
  nocturne templates dump -o tailwind --force
  nocturne templates dump -l ./templates`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List available plugin templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runList(cmd)
		},
	}
	list.Flags().StringSliceVarP(&opts.plugins, "output-plugins", "o", nil, "comma-separated list of output plugins (default: all)")

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Dump embedded templates for customisation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runDump(cmd)
		},
	}
	dump.Flags().StringSliceVarP(&opts.plugins, "output-plugins", "o", nil, "comma-separated list of output plugins (default: all)")
	dump.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite existing custom templates")
	dump.Flags().StringVarP(&opts.location, "location", "l", "", "dump to this directory instead of the user config directory")

	cmd.AddCommand(list, dump)
	return cmd
}

// loaders returns a template loader for every selected plugin that embeds
// templates, in name order.
func (o *templatesOptions) loaders() ([]*template.Loader, error) {
	names := o.plugins
	if len(names) == 0 {
		names = o.registry.List()
	}

	base, err := expandHome(o.location)
	if err != nil {
		return nil, err
	}

	var loaders []*template.Loader
	for _, name := range names {
		p, ok := o.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(o.registry.List(), ", "))
		}
		provider, ok := p.(output.TemplateProvider)
		if !ok {
			o.logger.Debug("plugin has no templates", "plugin", name)
			continue
		}

		l := template.New(name, provider.GetEmbeddedFS()).WithLogger(o.logger)
		if base != "" {
			l = l.WithCustomBase(base)
		}
		loaders = append(loaders, l)
	}
	return loaders, nil
}

func (o *templatesOptions) runList(cmd *cobra.Command) error {
	loaders, err := o.loaders()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(loaders) == 0 {
		fmt.Fprintln(out, "No matching plugins have templates")
		return nil
	}

	t := NewTable([]string{"PLUGIN", "TEMPLATE", "SOURCE", "OVERRIDE PATH"})
	for _, l := range loaders {
		templates, err := l.List()
		if err != nil {
			return err
		}
		for _, name := range templates {
			source := "embedded"
			if l.HasCustomTemplate(name) {
				source = "custom"
			}
			t.AddRow([]string{l.Name(), name, source, l.CustomPath(name)})
		}
	}
	fmt.Fprint(out, t.Render())
	return nil
}

func (o *templatesOptions) runDump(cmd *cobra.Command) error {
	loaders, err := o.loaders()
	if err != nil {
		return err
	}
	if len(loaders) == 0 {
		return fmt.Errorf("no matching plugins have templates")
	}

	out := cmd.OutOrStdout()
	total, skipped := 0, 0
	for _, l := range loaders {
		dumped, err := l.DumpAll(o.force)
		for _, path := range dumped {
			fmt.Fprintf(out, "  ├─ %s\n", path)
			total++
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, template.ErrTemplateExists) {
			return fmt.Errorf("failed to dump templates for %s: %w", l.Name(), err)
		}
		for _, e := range unwrapJoined(err) {
			fmt.Fprintf(out, "  ⊘ %s\n", strings.TrimPrefix(e.Error(), template.ErrTemplateExists.Error()+": "))
			skipped++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Dumped %d template(s)", total)
	if skipped > 0 {
		fmt.Fprintf(out, ", skipped %d existing (use --force to overwrite)", skipped)
	}
	fmt.Fprintln(out)
	return nil
}

// unwrapJoined splits an errors.Join result back into its parts.
func unwrapJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// expandHome expands a leading ~/ in path.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
