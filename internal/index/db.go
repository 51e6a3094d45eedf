package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS reports (
    report_id      TEXT PRIMARY KEY,
    transcript     TEXT NOT NULL UNIQUE,
    indexed_at     TEXT NOT NULL DEFAULT '',
    first_day      TEXT NOT NULL DEFAULT '',
    last_day       TEXT NOT NULL DEFAULT '',
    total_words    INTEGER NOT NULL DEFAULT 0,
    messages       INTEGER NOT NULL DEFAULT 0,
    distinct_words INTEGER NOT NULL DEFAULT 0,
    skipped_lines  INTEGER NOT NULL DEFAULT 0,
    mtime          INTEGER NOT NULL DEFAULT 0,
    size           INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS speakers (
    report_id      TEXT NOT NULL,
    speaker        TEXT NOT NULL,
    words          INTEGER NOT NULL DEFAULT 0,
    messages       INTEGER NOT NULL DEFAULT 0,
    distinct_words INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (report_id, speaker)
);

CREATE TABLE IF NOT EXISTS words (
    report_id TEXT NOT NULL,
    speaker   TEXT NOT NULL,
    word      TEXT NOT NULL,
    count     INTEGER NOT NULL,
    PRIMARY KEY (report_id, speaker, word)
);

CREATE INDEX IF NOT EXISTS words_by_count ON words(report_id, count DESC);

CREATE TABLE IF NOT EXISTS bigrams (
    report_id TEXT NOT NULL,
    speaker   TEXT NOT NULL,
    first     TEXT NOT NULL,
    second    TEXT NOT NULL,
    count     INTEGER NOT NULL,
    PRIMARY KEY (report_id, speaker, first, second)
);

CREATE TABLE IF NOT EXISTS days (
    report_id TEXT NOT NULL,
    day       TEXT NOT NULL,
    speaker   TEXT NOT NULL,
    words     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (report_id, day, speaker)
);

CREATE TABLE IF NOT EXISTS day_lines (
    report_id  TEXT NOT NULL,
    day        TEXT NOT NULL,
    first_line INTEGER NOT NULL,
    PRIMARY KEY (report_id, day)
);
`

// tables holding per-report rows, deleted together with the report
var childTables = []string{"speakers", "words", "bigrams", "days", "day_lines"}

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// schema version tracking for forced re-index
	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever tokenization or aggregation
// changes to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// force re-index by resetting all report mtime/size to 0
		d.db.Exec("UPDATE reports SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ReportInfo struct {
	ReportID string
	Mtime    int64
	Size     int64
}

// GetReportInfo returns nil when the transcript has never been saved.
func (d *DB) GetReportInfo(transcript string) (*ReportInfo, error) {
	var info ReportInfo
	err := d.db.QueryRow(
		"SELECT report_id, mtime, size FROM reports WHERE transcript = ?",
		transcript,
	).Scan(&info.ReportID, &info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// AllTranscripts maps every stored transcript path to its report id.
func (d *DB) AllTranscripts() (map[string]string, error) {
	rows, err := d.db.Query("SELECT transcript, report_id FROM reports")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var path, id string
		if err := rows.Scan(&path, &id); err != nil {
			return nil, err
		}
		out[path] = id
	}
	return out, rows.Err()
}

func (d *DB) DeleteReport(reportID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteReportTx(tx, reportID); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteReportTx(tx *sql.Tx, reportID string) error {
	for _, table := range childTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE report_id = ?", reportID); err != nil {
			return err
		}
	}
	_, err := tx.Exec("DELETE FROM reports WHERE report_id = ?", reportID)
	return err
}

func (d *DB) ReportCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM reports").Scan(&n)
	return n, err
}

func (d *DB) WordRowCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&n)
	return n, err
}

type ReportRow struct {
	ReportID     string
	Transcript   string
	IndexedAt    string
	FirstDay     string
	LastDay      string
	TotalWords   int
	Messages     int
	Distinct     int
	SkippedLines int
}

const reportColumns = "report_id, transcript, indexed_at, first_day, last_day, total_words, messages, distinct_words, skipped_lines"

func scanReport(s interface{ Scan(...any) error }) (ReportRow, error) {
	var r ReportRow
	err := s.Scan(&r.ReportID, &r.Transcript, &r.IndexedAt, &r.FirstDay, &r.LastDay,
		&r.TotalWords, &r.Messages, &r.Distinct, &r.SkippedLines)
	return r, err
}

// GetReport returns nil when the transcript has never been saved.
func (d *DB) GetReport(transcript string) (*ReportRow, error) {
	r, err := scanReport(d.db.QueryRow(
		"SELECT "+reportColumns+" FROM reports WHERE transcript = ?", transcript,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReports returns stored reports, most recently indexed first.
func (d *DB) ListReports() ([]ReportRow, error) {
	rows, err := d.db.Query("SELECT " + reportColumns + " FROM reports ORDER BY indexed_at DESC, transcript")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportRow
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type SpeakerRow struct {
	Speaker  string
	Words    int
	Messages int
	Distinct int
}

// GetSpeakers returns a report's speakers ordered by word count.
func (d *DB) GetSpeakers(reportID string) ([]SpeakerRow, error) {
	rows, err := d.db.Query(
		"SELECT speaker, words, messages, distinct_words FROM speakers WHERE report_id = ? ORDER BY words DESC, speaker",
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SpeakerRow
	for rows.Next() {
		var s SpeakerRow
		if err := rows.Scan(&s.Speaker, &s.Words, &s.Messages, &s.Distinct); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type WordRow struct {
	Word  string
	Count int
}

type WordQuery struct {
	Speaker string // "" = all speakers
	Prefix  string // "" = no filter
	Limit   int    // <= 0 means 50
}

// TopWords returns the most frequent words of a report, summed across
// speakers unless q.Speaker is set.
func (d *DB) TopWords(reportID string, q WordQuery) ([]WordRow, error) {
	conditions := []string{"report_id = ?"}
	args := []interface{}{reportID}

	if q.Speaker != "" {
		conditions = append(conditions, "speaker = ?")
		args = append(args, q.Speaker)
	}
	if q.Prefix != "" {
		conditions = append(conditions, `word LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(strings.ToLower(q.Prefix))+"%")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	args = append(args, q.Limit)

	query := fmt.Sprintf(`
		SELECT word, SUM(count) AS total
		FROM words
		WHERE %s
		GROUP BY word
		ORDER BY total DESC, word
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("top words: %w", err)
	}
	defer rows.Close()

	var out []WordRow
	for rows.Next() {
		var w WordRow
		if err := rows.Scan(&w.Word, &w.Count); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type BigramRow struct {
	First, Second string
	Count         int
}

// TopBigrams mirrors TopWords for bigrams.
func (d *DB) TopBigrams(reportID, speaker string, limit int) ([]BigramRow, error) {
	conditions := []string{"report_id = ?"}
	args := []interface{}{reportID}
	if speaker != "" {
		conditions = append(conditions, "speaker = ?")
		args = append(args, speaker)
	}
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT first, second, SUM(count) AS total
		FROM bigrams
		WHERE %s
		GROUP BY first, second
		ORDER BY total DESC, first, second
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("top bigrams: %w", err)
	}
	defer rows.Close()

	var out []BigramRow
	for rows.Next() {
		var b BigramRow
		if err := rows.Scan(&b.First, &b.Second, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type DayRow struct {
	Day   string
	Words int
}

// GetDays returns per-day word counts in day order, for one speaker or all.
// Days without words are absent.
func (d *DB) GetDays(reportID, speaker string) ([]DayRow, error) {
	query := "SELECT day, SUM(words) FROM days WHERE report_id = ? GROUP BY day ORDER BY day"
	args := []interface{}{reportID}
	if speaker != "" {
		query = "SELECT day, words FROM days WHERE report_id = ? AND speaker = ? ORDER BY day"
		args = append(args, speaker)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayRow
	for rows.Next() {
		var r DayRow
		if err := rows.Scan(&r.Day, &r.Words); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FirstLine returns the transcript line number of the first message on day,
// or 0 if the day has no messages.
func (d *DB) FirstLine(reportID, day string) (int, error) {
	var line int
	err := d.db.QueryRow(
		"SELECT first_line FROM day_lines WHERE report_id = ? AND day = ?",
		reportID, day,
	).Scan(&line)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return line, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
