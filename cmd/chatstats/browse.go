package main

import (
	"github.com/Zuo-Peng/chat-stats/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse TRANSCRIPT",
		Short: "Browse speaker profiles of a transcript interactively",
		Long:  `Opens a TUI with the speakers of a transcript on the left and the selected speaker's profile on the right. Type to filter words by prefix; Enter copies the top words to the clipboard.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rep, err := ensureReport(a, db, args[0])
			if err != nil {
				return err
			}
			return tui.Run(db, *rep)
		},
	}
}
