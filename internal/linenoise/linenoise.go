// Package linenoise wraps liner with file-backed history.
package linenoise

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/peterh/liner"
)

type LineNoise struct {
	*liner.State
}

// New puts the terminal in raw mode. Callers must Close it.
func New() *LineNoise {
	ln := &LineNoise{liner.NewLiner()}
	ln.SetCtrlCAborts(true)
	return ln
}

// HistoryLoad reads filepath into the history. A missing file is not an
// error.
func (ln *LineNoise) HistoryLoad(filepath string) error {
	content, err := os.ReadFile(filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = ln.ReadHistory(bytes.NewReader(content))
	return err
}

func (ln *LineNoise) HistorySave(filepath string) error {
	var buf bytes.Buffer
	_, err := ln.WriteHistory(&buf)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, buf.Bytes(), 0644)
}

// SetCommands completes the first word of a line from names.
func (ln *LineNoise) SetCommands(names []string) {
	ln.SetCompleter(func(line string) []string {
		if strings.ContainsRune(line, ' ') {
			return nil
		}
		var matches []string
		for _, n := range names {
			if strings.HasPrefix(n, strings.ToUpper(line)) {
				matches = append(matches, n)
			}
		}
		return matches
	})
}

func ClearScreen(w io.Writer) error {
	_, err := fmt.Fprint(w, "\x1b[H\x1b[2J")
	return err
}
