package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chat-stats/internal/index"
)

// OpenDay opens a saved transcript in $EDITOR at the first message of day.
// An empty day opens the transcript at its first line.
func OpenDay(db *index.DB, transcript, day string) error {
	key := index.Key(transcript)
	report, err := db.GetReport(key)
	if err != nil {
		return fmt.Errorf("get report: %w", err)
	}
	if report == nil {
		return fmt.Errorf("no saved report for %s (run 'chatstats report --save' or 'chatstats index' first)", transcript)
	}

	if _, err := os.Stat(report.Transcript); err != nil {
		return fmt.Errorf("file not found: %s", report.Transcript)
	}

	lineNum := 1
	if day != "" {
		line, err := db.FirstLine(report.ReportID, day)
		if err != nil {
			return fmt.Errorf("first line: %w", err)
		}
		if line == 0 {
			return fmt.Errorf("no messages on %s (transcript covers %s..%s)", day, report.FirstDay, report.LastDay)
		}
		lineNum = line
	}

	return openInEditor(Editor(), report.Transcript, lineNum)
}

// Editor returns $EDITOR, falling back to less.
func Editor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "less"
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}

func openInEditor(editor, filePath string, lineNum int) error {
	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
