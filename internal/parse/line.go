package parse

import (
	"regexp"
	"strings"
	"time"
)

const (
	DayLayout       = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// hangoutsRe matches lines written by hangouts-log-reader:
//
//	[hangouts.py] 2014-03-02 18:41:07: <Jane Doe> message
var hangoutsRe = regexp.MustCompile(`^\[hangouts\.py\]\s+(\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}):?\s+<([^>]+)>\s?(.*)$`)

// plainRe matches "2020-01-01 10:00:00 Alice: hi there".
var plainRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2})\s+([^:]+?):\s*(.*)$`)

// parseHeader extracts timestamp, speaker and text from a header line.
// ok is false when the line matches neither grammar or carries an
// impossible date.
func parseHeader(line string) (ts time.Time, speaker, text string, ok bool) {
	m := hangoutsRe.FindStringSubmatch(line)
	if m == nil {
		m = plainRe.FindStringSubmatch(line)
	}
	if m == nil {
		return time.Time{}, "", "", false
	}

	stamp := strings.Join(strings.Fields(m[1]), " ")
	ts, err := time.Parse(TimestampLayout, stamp)
	if err != nil {
		return time.Time{}, "", "", false
	}

	speaker = strings.Join(strings.Fields(m[2]), " ")
	if speaker == "" {
		return time.Time{}, "", "", false
	}
	return ts, speaker, strings.TrimSpace(m[3]), true
}
