package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/pyprojectfmt/internal/configloader"
	"github.com/yaklabco/pyprojectfmt/internal/ui/pretty"
)

const formatJSON = "json"

// envVarInfo represents an environment variable in JSON output.
type envVarInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newEnvCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "List supported environment variables",
		Long: `List the PYPROJECT_FMT_* environment variables. They override
configuration files and [tool.pyproject-fmt] tables and are overridden by
command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, vars := sortedEnvVars()

			if format == formatJSON {
				infos := lo.Map(names, func(name string, _ int) envVarInfo {
					return envVarInfo{Name: name, Description: vars[name]}
				})
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding environment variables: %w", err)
				}
				return nil
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled("auto", cmd.OutOrStdout()))
			width := maxWidth(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					styles.Bold.Render(runewidth.FillRight(name, width)),
					vars[name],
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// sortedEnvVars returns the environment variable names in order along
// with their descriptions.
func sortedEnvVars() ([]string, map[string]string) {
	vars := configloader.ListEnvVars()
	names := lo.Keys(vars)
	slices.Sort(names)
	return names, vars
}

func maxWidth(names []string) int {
	return lo.Max(lo.Map(names, func(name string, _ int) int { return len(name) }))
}
