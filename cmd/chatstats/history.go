package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved reports, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			reports, err := db.ListReports()
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No saved reports (run 'chatstats index DIR' or 'chatstats report --save').")
				return nil
			}

			fmt.Printf("%-20s  %8s  %8s  %-22s  %s\n", "INDEXED", "WORDS", "MESSAGES", "DAYS", "TRANSCRIPT")
			for _, r := range reports {
				days := "-"
				if r.FirstDay != "" {
					days = r.FirstDay + ".." + r.LastDay
				}
				fmt.Printf("%-20s  %8d  %8d  %s  %s\n",
					r.IndexedAt, r.TotalWords, r.Messages,
					runewidth.FillRight(days, 22), r.Transcript)
			}
			return nil
		},
	}
}
