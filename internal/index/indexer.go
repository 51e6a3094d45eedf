package index

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Zuo-Peng/chat-stats/internal/parse"
	"github.com/Zuo-Peng/chat-stats/internal/scan"
	"github.com/Zuo-Peng/chat-stats/internal/stats"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

type Options struct {
	Parse    parse.Options
	Keywords []string
	Log      logrus.FieldLogger
}

// Key normalizes a transcript path into the key reports are stored under.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// IndexAll saves a report for every transcript under root, skipping files
// whose mtime and size are unchanged, and prunes reports of transcripts
// under root that no longer exist.
func IndexAll(db *DB, root string, opts Options) (Stats, error) {
	var st Stats
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	files, err := scan.ScanRoot(root)
	if err != nil {
		return st, fmt.Errorf("scan: %w", err)
	}
	st.Scanned = len(files)

	// track which files we see, for pruning
	seen := make(map[string]struct{})

	for _, fi := range files {
		key := Key(fi.Path)
		seen[key] = struct{}{}

		needs, err := needsUpdate(db, key, fi.Mtime, fi.Size)
		if err != nil {
			st.Errors++
			log.WithError(err).WithField("transcript", fi.Path).Warn("lookup failed")
			continue
		}
		if !needs {
			st.Skipped++
			continue
		}

		tr, err := parse.ParseFile(fi.Path, opts.Parse)
		if err != nil {
			st.Errors++
			log.WithError(err).WithField("transcript", fi.Path).Warn("parse failed")
			continue
		}
		if len(tr.Messages) == 0 {
			log.WithField("transcript", fi.Path).Debug("no messages, skipping")
			st.Skipped++
			continue
		}

		if _, err := SaveReport(db, tr, stats.Aggregate(tr.Messages, opts.Keywords)); err != nil {
			st.Errors++
			log.WithError(err).WithField("transcript", fi.Path).Warn("index failed")
			continue
		}
		st.Updated++
	}

	pruned, err := pruneReports(db, Key(root), seen)
	if err != nil {
		return st, fmt.Errorf("prune: %w", err)
	}
	st.Pruned = pruned

	return st, nil
}

// NeedsUpdate reports whether the transcript differs from its stored
// snapshot.
func NeedsUpdate(db *DB, tr *parse.Transcript) (bool, error) {
	return needsUpdate(db, Key(tr.Path), tr.Mtime.Unix(), tr.Size)
}

func needsUpdate(db *DB, key string, mtime, size int64) (bool, error) {
	info, err := db.GetReportInfo(key)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new transcript
	}
	return info.Mtime != mtime || info.Size != size, nil
}

// SaveReport replaces the stored snapshot of tr with r and returns the new
// report id.
func SaveReport(db *DB, tr *parse.Transcript, r *stats.Report) (string, error) {
	key := Key(tr.Path)

	tx, err := db.Raw().Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	// delete old data first
	var oldID string
	err = tx.QueryRow("SELECT report_id FROM reports WHERE transcript = ?", key).Scan(&oldID)
	switch {
	case err == nil:
		if err := deleteReportTx(tx, oldID); err != nil {
			return "", err
		}
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("lookup report: %w", err)
	}

	id := uuid.NewString()
	var firstDay, lastDay string
	if len(r.Days) > 0 {
		firstDay, lastDay = r.Days[0], r.Days[len(r.Days)-1]
	}

	_, err = tx.Exec(
		`INSERT INTO reports (report_id, transcript, indexed_at, first_day, last_day, total_words, messages, distinct_words, skipped_lines, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		key,
		time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		firstDay,
		lastDay,
		r.TotalWords,
		r.Messages,
		r.Distinct,
		tr.Skipped,
		tr.Mtime.Unix(),
		tr.Size,
	)
	if err != nil {
		return "", err
	}

	speakerStmt, err := tx.Prepare(
		`INSERT INTO speakers (report_id, speaker, words, messages, distinct_words) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", err
	}
	defer speakerStmt.Close()

	wordStmt, err := tx.Prepare(`INSERT INTO words (report_id, speaker, word, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer wordStmt.Close()

	bigramStmt, err := tx.Prepare(`INSERT INTO bigrams (report_id, speaker, first, second, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer bigramStmt.Close()

	for _, s := range r.Speakers {
		if _, err := speakerStmt.Exec(id, s.Name, s.Words, s.Messages, s.Distinct); err != nil {
			return "", err
		}
		for _, wc := range s.Unigrams {
			if _, err := wordStmt.Exec(id, s.Name, wc.Word, wc.Count); err != nil {
				return "", err
			}
		}
		for _, bc := range s.Bigrams {
			if _, err := bigramStmt.Exec(id, s.Name, bc.Bigram.First, bc.Bigram.Second, bc.Count); err != nil {
				return "", err
			}
		}
	}

	for ds, n := range r.DaySpeakerWords {
		if _, err := tx.Exec(
			`INSERT INTO days (report_id, day, speaker, words) VALUES (?, ?, ?, ?)`,
			id, ds.Day, ds.Speaker, n,
		); err != nil {
			return "", err
		}
	}
	for day, line := range r.DayFirstLine {
		if _, err := tx.Exec(
			`INSERT INTO day_lines (report_id, day, first_line) VALUES (?, ?, ?)`,
			id, day, line,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// pruneReports removes reports stored under root whose transcripts were not
// seen in the latest scan.
func pruneReports(db *DB, root string, seen map[string]struct{}) (int, error) {
	all, err := db.AllTranscripts()
	if err != nil {
		return 0, err
	}

	prefix := root + string(filepath.Separator)
	pruned := 0
	for path, id := range all {
		if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		if err := db.DeleteReport(id); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}
