package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single line; longer lines are skipped.
var maxLineSize = 10 * 1024 * 1024 // 10MB

// ParseFile reads a transcript from disk. Errors opening or reading the file
// are returned; malformed lines are only counted.
func ParseFile(filePath string, opts Options) (*Transcript, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filePath)
	}

	t, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	t.Path = filePath
	t.Mtime = info.ModTime()
	t.Size = info.Size()
	return t, nil
}

func Parse(r io.Reader, opts Options) (*Transcript, error) {
	result := &Transcript{}

	br := bufio.NewReaderSize(r, 64*1024)

	lineNum := 0
	var prev *Message

	for {
		raw, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, err
		}
		lineNum++
		if tooLong {
			result.Skipped++
			continue
		}
		line := strings.TrimRight(raw, "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ts, speaker, text, ok := parseHeader(line)
		if ok {
			result.Messages = append(result.Messages, Message{
				Timestamp:  ts,
				Speaker:    speaker,
				Text:       text,
				LineNumber: lineNum,
			})
			prev = &result.Messages[len(result.Messages)-1]
			continue
		}

		if opts.Multiline && prev != nil {
			// continuation keeps the header's speaker and time but counts
			// as its own message so bigrams never span lines
			result.Messages = append(result.Messages, Message{
				Timestamp:  prev.Timestamp,
				Speaker:    prev.Speaker,
				Text:       strings.TrimSpace(line),
				LineNumber: lineNum,
			})
			prev = &result.Messages[len(result.Messages)-1]
			continue
		}

		result.Skipped++
	}
	result.Lines = lineNum

	return result, nil
}

// readLine returns the next line without its line ending. A line longer
// than maxLineSize is consumed and reported as tooLong.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
