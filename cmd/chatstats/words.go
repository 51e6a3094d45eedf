package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-stats/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func wordsCmd(a *app) *cobra.Command {
	var speaker, prefix string
	var limit int

	cmd := &cobra.Command{
		Use:   "words TRANSCRIPT",
		Short: "Show the top words and bigrams of a transcript or one speaker",
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

			fd := int(os.Stdout.Fd())
			isTTY := term.IsTerminal(fd)
			width := 80
			if isTTY {
				if w, _, err := term.GetSize(fd); err == nil && w > 0 {
					width = w
				}
			}

			out, err := render.RenderSpeaker(db, rep.ReportID, speaker, render.Options{
				Width:  width,
				Limit:  limit,
				Prefix: prefix,
				Color:  isTTY,
			})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&speaker, "speaker", "", "Only this speaker (default everyone)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Only words starting with this prefix")
	cmd.Flags().IntVar(&limit, "limit", 20, "Max words to show")

	return cmd
}
