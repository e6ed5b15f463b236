package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/app"
	"github.com/ramanasai/tally/internal/habit"
	"github.com/ramanasai/tally/internal/utils"
)

var (
	trackDate  string
	trackDown  bool
	trackValue float64
)

var trackCmd = &cobra.Command{
	Use:   "track <habit>",
	Short: "Increment or decrement a habit without opening the grid",
	Long: `Auto habits can only be changed this way or with :track-up/:track-down.

Examples:
	tally track read                    # one more for today
	tally track read --down             # one less
	tally track water --value 1.5       # set an exact amount
	tally track stretch --date yesterday`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := loadApp(cfg)
		if err != nil {
			return err
		}

		today := a.Today()
		day, err := dayFlag(trackDate, today)
		if err != nil {
			return err
		}
		if day.After(today) {
			return fmt.Errorf("cannot track %s: %s is in the future", args[0], day)
		}

		h, ok := habit.Find(a.Habits(), args[0])
		if !ok {
			return fmt.Errorf("%w: %s", app.ErrNoSuchHabit, args[0])
		}
		switch {
		case cmd.Flags().Changed("value"):
			if err := h.Insert(day, trackValue); err != nil {
				return fmt.Errorf("cannot set %s to %v: %w", h.Name(), trackValue, err)
			}
		case trackDown:
			h.Modify(day, habit.Decrement)
		default:
			h.Modify(day, habit.Increment)
		}
		if err := a.Save(); err != nil {
			return err
		}

		v, _ := h.Query(day)
		fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s (%s remaining)\n",
			h.Name(), day, utils.FormatAmount(v), utils.FormatAmount(h.Remaining(day)))
		return nil
	},
}

func init() {
	trackCmd.Flags().StringVarP(&trackDate, "date", "d", "", "Day to track: today|yesterday|3d|YYYY-MM-DD")
	trackCmd.Flags().BoolVar(&trackDown, "down", false, "Decrement instead of increment")
	trackCmd.Flags().Float64Var(&trackValue, "value", 0, "Set the day's amount directly")
	trackCmd.MarkFlagsMutuallyExclusive("down", "value")
}
