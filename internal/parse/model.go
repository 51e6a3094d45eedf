package parse

import "time"

// Message is one attributed utterance from a transcript.
type Message struct {
	Timestamp  time.Time
	Speaker    string
	Text       string
	LineNumber int // line number in original file
}

// Day returns the calendar day of the message as YYYY-MM-DD.
func (m Message) Day() string {
	return m.Timestamp.Format(DayLayout)
}

type Transcript struct {
	Path     string
	Mtime    time.Time
	Size     int64
	Messages []Message
	Lines    int // lines read, including blanks
	Skipped  int // non-blank lines that matched no grammar
}

type Options struct {
	// Multiline attaches lines without a header to the previous message.
	Multiline bool
}
