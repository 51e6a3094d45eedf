package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/render"
	"github.com/Zuo-Peng/chat-stats/internal/report"
	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type reportFlags struct {
	keywords  []string
	multiline bool
	save      bool
	sentences int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.keywords, "keyword", nil, "Word of interest for word_timeseries.txt (repeatable)")
	cmd.Flags().BoolVar(&f.multiline, "multiline", false, "Attach lines without a header to the previous message")
	cmd.Flags().BoolVar(&f.save, "save", false, "Also save the report to the history database")
	cmd.Flags().IntVar(&f.sentences, "sentences", -1, "Generated sentences per speaker (default from config)")
}

func reportCmd(a *app) *cobra.Command {
	var rf reportFlags

	cmd := &cobra.Command{
		Use:   "report TRANSCRIPT RESULTS_DIRECTORY",
		Short: "Write statistics for a transcript into a results directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(a, args[0], args[1], rf)
		},
	}
	rf.register(cmd)
	return cmd
}

func runReport(a *app, transcript, dir string, rf reportFlags) error {
	tr, err := parse.ParseFile(transcript, a.parseOptions(rf.multiline))
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	log := a.log.WithField("transcript", transcript)
	if tr.Skipped > 0 {
		log.WithField("skipped", tr.Skipped).Warn("skipped malformed lines")
	}
	if len(tr.Messages) == 0 {
		log.Warn("no messages found")
	}

	keywords := append(append([]string(nil), a.cfg.Keywords...), rf.keywords...)
	r := stats.Aggregate(tr.Messages, keywords)

	sentences := a.cfg.Sentences
	if rf.sentences >= 0 {
		sentences = rf.sentences
	}

	written, err := report.Write(dir, r, report.Options{
		MinCount:   a.cfg.MinCount,
		StopWords:  a.cfg.StopSet(),
		ReadingWPM: a.cfg.ReadingWPM,
		Sentences:  sentences,
		Seed:       a.cfg.Seed,
	})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"dir":      dir,
		"files":    len(written),
		"words":    r.TotalWords,
		"messages": r.Messages,
	}).Info("report written")

	if rf.save {
		if err := saveReport(a, tr, r); err != nil {
			return err
		}
	}

	fmt.Print(render.Summary(r, a.cfg.ReadingWPM, term.IsTerminal(int(os.Stdout.Fd()))))
	return nil
}

func saveReport(a *app, tr *parse.Transcript, r *stats.Report) error {
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := index.SaveReport(db, tr, r)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	a.log.WithFields(logrus.Fields{"transcript": tr.Path, "report": id}).Info("report saved")
	return nil
}

// ensureReport returns the stored report for transcript, saving a fresh one
// first when the file changed since it was last saved.
func ensureReport(a *app, db *index.DB, transcript string) (*index.ReportRow, error) {
	tr, err := parse.ParseFile(transcript, a.parseOptions(false))
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	needs, err := index.NeedsUpdate(db, tr)
	if err != nil {
		return nil, err
	}
	if needs {
		id, err := index.SaveReport(db, tr, stats.Aggregate(tr.Messages, a.cfg.Keywords))
		if err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
		a.log.WithFields(logrus.Fields{"transcript": transcript, "report": id}).Debug("report refreshed")
	}

	rep, err := db.GetReport(index.Key(transcript))
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("no report for %s", transcript)
	}
	return rep, nil
}
