package eventlog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
)

// Render writes entries the way the log panel shows them: timestamp, level
// and message, then the detail as indented JSON.
func Render(w io.Writer, entries []Entry, color bool) error {
	for _, e := range entries {
		ts := e.Time.Format(time.RFC3339Nano)
		line := fmt.Sprintf("[%s] %s", e.Level, e.Message)
		if color {
			ts = ansiDim + ts + ansiReset
			switch e.Level {
			case LevelError:
				line = ansiRed + line + ansiReset
			case LevelSuccess:
				line = ansiGreen + line + ansiReset
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", ts, line); err != nil {
			return err
		}
		if e.Detail == nil {
			continue
		}
		detail, err := json.MarshalIndent(e.Detail, "  ", "  ")
		if err != nil {
			detail = []byte(fmt.Sprintf("%v", e.Detail))
		}
		if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(string(detail), "\n")); err != nil {
			return err
		}
	}
	return nil
}
