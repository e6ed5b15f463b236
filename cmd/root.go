package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/app"
	"github.com/ramanasai/tally/internal/config"
	"github.com/ramanasai/tally/internal/store"
	"github.com/ramanasai/tally/internal/ui"
	"github.com/ramanasai/tally/internal/version"
)

var (
	cfgFile     string
	listNames   bool
	missingName string
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Track daily habits from the terminal",
	Long: `Without flags tally opens the interactive habit grid.

Examples:
	tally                   # interactive mode
	tally --list            # print every habit name
	tally --missing read    # days this month with no entry for "read"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := loadApp(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case listNames:
			for _, name := range a.Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		case cmd.Flags().Changed("missing"):
			days, err := a.MissedByName(missingName)
			if err != nil {
				return err
			}
			for _, d := range days {
				fmt.Fprintln(out, d)
			}
			return nil
		}
		return ui.Run(a, cfg)
	},
}

// Execute runs the root command. Build metadata is read here because main
// sets it after this package initialises.
func Execute() error {
	rootCmd.Version = version.GetVersionInfo()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/tally/config.yaml)")
	rootCmd.Flags().BoolVarP(&listNames, "list", "l", false, "List all habits")
	rootCmd.Flags().StringVarP(&missingName, "missing", "m", "", "List days this month with no entry for the habit")
	rootCmd.MarkFlagsMutuallyExclusive("list", "missing")

	// Add commands; other files define these vars
	rootCmd.AddCommand(listCmd, summaryCmd, trackCmd, archivesCmd, remindCmd, versionCmd)
}

func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	return config.Load()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	archiveDir, err := cfg.ArchiveDir()
	if err != nil {
		return nil, err
	}
	return store.Open(dataDir, archiveDir)
}

// loadApp reads the snapshot. A corrupt snapshot stops the command so the
// file is never overwritten.
func loadApp(cfg config.Config) (*app.App, error) {
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return app.Load(s)
}
