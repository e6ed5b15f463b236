package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/ramanasai/tally/internal/version"
)

var (
	shortened bool
	output    = "json"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tally version",
	Example: `
tally version
tally version --short
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		resp := goversion.FuncWithOutput(shortened, version.GetVersion(), version.Commit, version.Date, output)
		fmt.Fprint(cmd.OutOrStdout(), resp)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
}
