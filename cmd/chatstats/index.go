package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/spf13/cobra"
)

func indexCmd(a *app) *cobra.Command {
	var multiline bool

	cmd := &cobra.Command{
		Use:   "index DIR",
		Short: "Save a report for every transcript under a directory",
		Long: `Scan DIR for *.txt and *.log transcripts and save one report per file to
the history database. Unchanged files are skipped; reports of files under DIR
that no longer exist are removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", args[0])

			stats, err := index.IndexAll(db, args[0], index.Options{
				Parse:    a.parseOptions(multiline),
				Keywords: a.cfg.Keywords,
				Log:      a.log,
			})
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&multiline, "multiline", false, "Attach lines without a header to the previous message")
	return cmd
}
