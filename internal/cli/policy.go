package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/nocturne/internal/policy"
)

func newPolicyCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the effective policy",
		Long: `Print the policy after defaults, the --policy file, NOCTURNE_* environment
variables and flags have been merged.

The YAML output is a complete policy file, so it is a good starting point
for a custom one.

Examples:
  nocturne policy > policy.yaml
  NOCTURNE_MIN_UI_CONTRAST=4.5 nocturne policy --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(policy.Formats, format) {
				return fmt.Errorf("invalid format: %s (must be one of %s)", format, strings.Join(policy.Formats, ", "))
			}

			p, err := policy.Load(root.policyFile, cmd.Flags())
			if err != nil {
				return err
			}
			return policy.Encode(cmd.OutOrStdout(), p, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}
