package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <colour>...",
		Short: "Show the tone class and recipe for colours",
		Long: `Show how each colour is classified by HSL lightness and saturation, and
the recipe applied to it before the dark mode contrast search.

Examples:
  nocturne classify 3366ff ffeb3b 8b0000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dv, err := root.deriver(cmd)
			if err != nil {
				return err
			}

			t := NewTable([]string{"COLOUR", "H", "S", "L", "CLASS", "RECIPE"})
			for _, col := range []int{1, 2, 3} {
				t.SetAlignRight(col)
			}

			for _, arg := range args {
				c, err := root.parseColour(arg)
				if err != nil {
					return err
				}
				h, s, l := c.HSL()
				class, recipe := dv.Classify(c)
				t.AddRow([]string{
					c.Hex(),
					fmt.Sprintf("%.0f", h),
					fmt.Sprintf("%.2f", s),
					fmt.Sprintf("%.2f", l),
					class.String(),
					recipe.String(),
				})
			}

			fmt.Fprint(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
