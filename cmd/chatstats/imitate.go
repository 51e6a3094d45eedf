package main

import (
	"fmt"
	"math/rand"

	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"github.com/spf13/cobra"
)

func imitateCmd(a *app) *cobra.Command {
	var speaker string
	var n int
	var seed int64

	cmd := &cobra.Command{
		Use:   "imitate TRANSCRIPT",
		Short: "Generate sentences in the style of a speaker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := parse.ParseFile(args[0], a.parseOptions(false))
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}
			r := stats.Aggregate(tr.Messages, nil)

			names := []string{speaker}
			if speaker == "" {
				names = names[:0]
				for _, s := range r.Speakers {
					// nothing to imitate for links-or-emoji-only speakers
					if s.Words > 0 {
						names = append(names, s.Name)
					}
				}
			}

			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Seed
			}
			rng := rand.New(rand.NewSource(seed))
			for _, name := range names {
				for i := 0; i < n; i++ {
					line, err := r.Generate(name, rng)
					if err != nil {
						return err
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&speaker, "speaker", "", "Speaker to imitate (default all)")
	cmd.Flags().IntVarP(&n, "count", "n", 3, "Sentences per speaker")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed (default from config)")

	return cmd
}
