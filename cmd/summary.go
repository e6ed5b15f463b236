package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/utils"
)

// summaryCmd prints the day's totals followed by a per-habit table.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Daily summary",
	Long: `Examples:
	tally summary
	tally summary --date yesterday
	tally summary --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := loadApp(cfg)
		if err != nil {
			return err
		}
		r, f, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		today := a.Today()
		day, err := dayFlag(onDay, today)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rows := utils.Rows(a.Habits(), day, today)
		if f == utils.FormatTable {
			completed, remaining := a.Progress(day)
			fmt.Fprint(out, r.RenderSummary(day, completed, remaining))
		}
		body, err := r.RenderHabits(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(out, body)
		return nil
	},
}

func init() {
	addOutputFlags(summaryCmd, "table")
	summaryCmd.Flags().StringVarP(&onDay, "date", "d", "", "Day to summarise: today|yesterday|3d|YYYY-MM-DD")
}
