package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramanasai/tally/internal/utils"
)

// archivesCmd lists the monthly buckets written by :archive.
var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List archived months",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		r, f, err := newRenderer(cmd)
		if err != nil {
			return err
		}

		var rows []utils.BucketRow
		for _, b := range s.Buckets() {
			hs, err := s.ReadBucket(b)
			if err != nil {
				return fmt.Errorf("read %s: %w", b.FileName(), err)
			}
			row := utils.BucketRow{Name: b.Name(), File: b.FileName(), Habits: len(hs)}
			for _, h := range hs {
				row.Entries += len(h.Dates())
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 && f != utils.FormatJSON {
			fmt.Fprintln(cmd.ErrOrStderr(), "No archived months")
			return nil
		}
		out, err := r.RenderBuckets(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	addOutputFlags(archivesCmd, "table")
}
