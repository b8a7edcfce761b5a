package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/colour"
	"github.com/jmylchreest/nocturne/internal/preview"
	"github.com/jmylchreest/nocturne/internal/tokens"
)

type previewOptions struct {
	*rootOptions

	plain bool
	width int
}

func newPreviewCmd(root *rootOptions) *cobra.Command {
	opts := &previewOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "preview <colour>",
		Short: "Show the derived tokens in the terminal",
		Long: `Show the light and dark mode tokens for a colour as terminal swatches.

When output is not a terminal, or with --plain, a table of token names,
hex values and contrast ratios is printed instead.

Examples:
  nocturne preview "#3366FF"
  nocturne preview 8b0000 --plain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a plain table instead of coloured swatches")
	cmd.Flags().IntVar(&opts.width, "width", 0, "layout width (default: terminal width)")
	return cmd
}

func (o *previewOptions) run(cmd *cobra.Command, arg string) error {
	dv, d, err := o.derive(cmd, arg)
	if err != nil {
		return err
	}
	warnFallbacks(o.logger, d)

	out := cmd.OutOrStdout()
	if o.plain || !preview.IsTerminal(out) {
		fmt.Fprintf(out, "%s  %s: %s\n\n", d.Input.Hex(), d.Class, d.Recipe)
		fmt.Fprint(out, tokenTable(dv, d).Render())
		return nil
	}

	r := preview.New(out).
		WithWidth(o.width).
		WithBackgrounds(dv.LightBackground(), dv.DarkBackground())
	fmt.Fprint(out, r.Render(d))
	return nil
}

// tokenTable lists every token with the contrast it was derived against:
// text tokens against their base, the rest against their page background.
func tokenTable(dv *tokens.Deriver, d *tokens.Derivation) *Table {
	light, dark := dv.LightBackground(), dv.DarkBackground()
	against := map[string]colour.Color{
		tokens.NameBaseLight:       light,
		tokens.NameDarkerLight:     light,
		tokens.NameLighterLight:    light,
		tokens.NameTextOnBaseLight: d.Tokens.Light.Base,
		tokens.NameBaseDark:        dark,
		tokens.NameDarkerDark:      dark,
		tokens.NameLighterDark:     dark,
		tokens.NameTextOnBaseDark:  d.Tokens.Dark.Base,
		tokens.NameBaseTextDark:    dark,
	}
	status := map[string]tokens.State{
		tokens.NameBaseDark:     d.DarkBase.State,
		tokens.NameBaseTextDark: d.DarkBaseText.State,
		tokens.NameDarkerDark:   d.DarkDarker.State,
		tokens.NameLighterDark:  d.DarkLighter.State,
	}

	t := NewTable([]string{"TOKEN", "HEX", "AGAINST", "CONTRAST", "SEARCH"})
	t.SetAlignRight(3)
	for _, name := range tokens.Names() {
		c, _ := d.Tokens.Get(name)
		bg := against[name]

		search := "-"
		if s, ok := status[name]; ok {
			search = s.String()
		}
		t.AddRow([]string{
			name,
			c.Hex(),
			bg.Hex(),
			fmt.Sprintf("%.2f", colour.ContrastRatio(c, bg)),
			search,
		})
	}
	return t
}
