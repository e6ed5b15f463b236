package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/utils"
)

var onDay string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits and their progress",
	Long: `Examples:
	tally list                          # one name per line
	tally list --format table           # progress for today
	tally list --format json --date yesterday`,
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
		r, _, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		today := a.Today()
		day, err := dayFlag(onDay, today)
		if err != nil {
			return err
		}

		out, err := r.RenderHabits(utils.Rows(a.Habits(), day, today))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// newRenderer reads the flags registered by addOutputFlags. Each command keeps
// its own default format, so the values are looked up per command.
func newRenderer(cmd *cobra.Command) (*utils.Renderer, utils.OutputFormat, error) {
	name, _ := cmd.Flags().GetString("format")
	f, err := utils.ParseFormat(name)
	if err != nil {
		return nil, "", err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	return utils.NewRenderer(&utils.RenderConfig{Format: f, Color: !noColor && !color.NoColor}), f, nil
}

// dayFlag resolves a --date value; empty means today.
func dayFlag(value string, today calendar.Date) (calendar.Date, error) {
	if value == "" {
		return today, nil
	}
	day, err := utils.ParseDay(value, today)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return day, nil
}

func addOutputFlags(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("format", "f", def, "Output format: plain|table|json|csv")
	cmd.Flags().Bool("no-color", false, "Disable colors")
}

func init() {
	addOutputFlags(listCmd, "plain")
	listCmd.Flags().StringVarP(&onDay, "date", "d", "", "Day to report: today|yesterday|3d|YYYY-MM-DD")
}
