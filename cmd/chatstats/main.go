package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-stats/internal/config"
	"github.com/Zuo-Peng/chat-stats/internal/index"
	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logrus.Logger
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) parseOptions(multiline bool) parse.Options {
	return parse.Options{Multiline: a.cfg.Multiline || multiline}
}

func (a *app) openDB() (*index.DB, error) {
	db, err := index.OpenDB(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(lvl)
	return log, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var rf reportFlags

	rootCmd := &cobra.Command{
		Use:   "chatstats TRANSCRIPT RESULTS_DIRECTORY",
		Short: "Chat Stats - word, speaker and time series statistics for chat transcripts",
		Long: `Parse a plaintext chat transcript and write descriptive statistics into
RESULTS_DIRECTORY. Transcript lines look like either

  2020-01-01 10:00:00 Alice: hi there
  [hangouts.py] 2020-01-01 10:00:00: <Alice> hi there

Lines in neither form are skipped.`,
		Version:           version,
		Args:              cobra.ExactArgs(2),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(a, args[0], args[1], rf)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/chatstats/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rf.register(rootCmd)

	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(indexCmd(a))
	rootCmd.AddCommand(historyCmd(a))
	rootCmd.AddCommand(wordsCmd(a))
	rootCmd.AddCommand(browseCmd(a))
	rootCmd.AddCommand(openCmd(a))
	rootCmd.AddCommand(imitateCmd(a))
	rootCmd.AddCommand(doctorCmd(a))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
