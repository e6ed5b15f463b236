package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/config"
	"github.com/ramanasai/tally/internal/notify"
	"github.com/ramanasai/tally/internal/schedule"
)

var (
	remindWatch bool
	remindAlert bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send a desktop notification listing today's open habits",
	Long: `Examples:
	tally remind            # notify once now
	tally remind --watch    # notify daily at reminder.time until interrupted`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !remindWatch {
			return remind(cmd, cfg)
		}
		if !cfg.Reminder.Enabled {
			return fmt.Errorf("reminders are disabled; set reminder.enabled: true in the config to use --watch")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.ErrOrStderr(), "next reminder at %s\n", schedule.NextAt(time.Now(), cfg).Format("Mon 02 Jan 15:04"))
		schedule.RunConfigured(ctx, cfg, func() {
			// The snapshot is read on every run so edits made in the grid
			// between reminders are picked up.
			if err := remind(cmd, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "remind: %v\n", err)
			}
		})
		return nil
	},
}

func remind(cmd *cobra.Command, cfg config.Config) error {
	a, err := loadApp(cfg)
	if err != nil {
		return err
	}
	pending := notify.Pending(a.Habits(), a.Today())
	title, msg := notify.FormatReminder(pending)
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	if len(pending) == 0 {
		return nil
	}
	if remindAlert {
		return notify.Alert(msg)
	}
	return notify.Info(title, msg)
}

func init() {
	remindCmd.Flags().BoolVarP(&remindWatch, "watch", "w", false, "Keep running and remind at the configured time")
	remindCmd.Flags().BoolVar(&remindAlert, "alert", false, "Use an alert with sound instead of a plain notification")
}
