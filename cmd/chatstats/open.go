package main

import (
	"fmt"
	"time"

	"github.com/Zuo-Peng/chat-stats/internal/open"
	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/spf13/cobra"
)

func openCmd(a *app) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "open TRANSCRIPT",
		Short: "Open the transcript in $EDITOR at the first message of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if day != "" {
				if _, err := time.Parse(parse.DayLayout, day); err != nil {
					return fmt.Errorf("invalid --day %q, want YYYY-MM-DD", day)
				}
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := ensureReport(a, db, args[0]); err != nil {
				return err
			}
			return open.OpenDay(db, args[0], day)
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to jump to (YYYY-MM-DD)")

	return cmd
}
