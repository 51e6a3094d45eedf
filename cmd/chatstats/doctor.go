package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-stats/internal/config"
	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/Zuo-Peng/chat-stats/internal/open"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func doctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: show config, database and terminal status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("=== Config ===")
			path := a.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("  File: %s (NOT FOUND, using defaults)\n", path)
			} else {
				fmt.Printf("  File: %s (OK)\n", path)
			}
			fmt.Printf("  Stop words: %d\n", len(a.cfg.StopSet()))
			fmt.Printf("  Keywords:   %v\n", a.cfg.Keywords)
			fmt.Printf("  Min count:  %d\n", a.cfg.MinCount)
			fmt.Printf("  Multiline:  %v\n", a.cfg.Multiline)

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", a.cfg.DBPath)
			if _, err := os.Stat(a.cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'chatstats index DIR' first)")
			} else {
				db, err := index.OpenDB(a.cfg.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer db.Close()

				reportCount, err := db.ReportCount()
				if err != nil {
					return fmt.Errorf("count reports: %w", err)
				}
				wordCount, err := db.WordRowCount()
				if err != nil {
					return fmt.Errorf("count words: %w", err)
				}
				fmt.Printf("  Reports:   %d\n", reportCount)
				fmt.Printf("  Word rows: %d\n", wordCount)

				if info, err := os.Stat(a.cfg.DBPath); err == nil {
					fmt.Printf("  Size:      %.1f MB\n", float64(info.Size())/1024/1024)
				}
			}

			fmt.Println("\n=== Terminal ===")
			fmt.Printf("  Editor: %s\n", open.Editor())
			fmt.Printf("  Stdout is a terminal: %v\n", term.IsTerminal(int(os.Stdout.Fd())))

			return nil
		},
	}
}
