// Package cli provides the command-line interface for nocturne.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/plugin/output"
	"github.com/jmylchreest/nocturne/internal/plugin/output/css"
	"github.com/jmylchreest/nocturne/internal/plugin/output/json"
	"github.com/jmylchreest/nocturne/internal/plugin/output/png"
	"github.com/jmylchreest/nocturne/internal/plugin/output/tailwind"
	"github.com/jmylchreest/nocturne/internal/policy"
	"github.com/jmylchreest/nocturne/internal/tokens"
	"github.com/jmylchreest/nocturne/internal/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose    bool
	quiet      bool
	policyFile string
	lenient    bool

	logger hclog.Logger
}

// NewRootCmd builds the full command tree. Each call returns an independent
// tree with its own plugin registry and flag state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: hclog.NewNullLogger()}

	cmd := &cobra.Command{
		Use:   "nocturne",
		Short: "Accessible light and dark mode tokens from one brand colour",
		Long: `nocturne derives a light and a dark mode set of action colour tokens
(base, darker, lighter and text on base) from a single brand colour.

Every dark mode token is searched until it meets the WCAG contrast targets
against the dark background, so the output stays readable whatever colour
you start from.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVarP(&opts.policyFile, "policy", "p", "", "policy file (YAML, JSON or TOML)")
	pf.BoolVar(&opts.lenient, "lenient", false, "strip anything that is not a hex digit from colour arguments")
	policy.RegisterFlags(pf)

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newPolicyCmd(opts))
	cmd.AddCommand(newTemplatesCmd(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger returns the process logger. Fallbacks are logged at warn level,
// so the default shows them and --quiet hides them.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case quiet:
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "nocturne",
		Output: w,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// newRegistry returns the built-in output plugins.
func newRegistry() *output.Registry {
	reg := output.NewRegistry()
	reg.Register(json.New())
	reg.Register(css.New())
	reg.Register(tailwind.New())
	reg.Register(png.New())
	return reg
}

// deriver loads the effective policy for cmd and builds a Deriver from it.
func (o *rootOptions) deriver(cmd *cobra.Command) (*tokens.Deriver, error) {
	p, err := policy.Load(o.policyFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	d, err := tokens.New(p, tokens.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create deriver: %w", err)
	}
	return d, nil
}

// parseColour parses a colour argument, sanitising it first in lenient mode.
func (o *rootOptions) parseColour(arg string) (colour.Color, error) {
	if o.lenient {
		clean := colour.Sanitize(arg)
		if clean != arg {
			o.logger.Debug("sanitised colour argument", "raw", arg, "clean", clean)
		}
		arg = clean
	}

	c, err := colour.Parse(arg)
	if err != nil {
		return colour.Color{}, fmt.Errorf("invalid colour %q: %w", arg, err)
	}
	return c, nil
}

// derive parses arg and derives its tokens under the command's policy.
func (o *rootOptions) derive(cmd *cobra.Command, arg string) (*tokens.Deriver, *tokens.Derivation, error) {
	dv, err := o.deriver(cmd)
	if err != nil {
		return nil, nil, err
	}

	c, err := o.parseColour(arg)
	if err != nil {
		return nil, nil, err
	}
	return dv, dv.DeriveColour(c), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
