// Package console classifies fixer output lines by PHP error severity and
// decorates them for the terminal.
package console

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Severity classifies a single line of fixer output.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityNotice
	SeverityWarning
	SeverityParse
	SeverityFatal
)

// Classify returns the severity of a fixer output line based on the PHP
// error markers it contains. First match wins.
func Classify(line string) Severity {
	switch {
	case strings.Contains(line, "Notice"):
		return SeverityNotice
	case strings.Contains(line, "Warning error"):
		return SeverityWarning
	case strings.Contains(line, "Parse error"):
		return SeverityParse
	case strings.Contains(line, "Fatal error"):
		return SeverityFatal
	default:
		return SeverityNone
	}
}

// Decorator receives raw fixer output and emits decorated lines. Flush
// terminates any dangling partial line; it must be called exactly once per
// run, on every exit path.
type Decorator interface {
	io.Writer
	Flush() error
}

var styles = map[Severity]*color.Color{
	SeverityNotice:  color.New(color.FgCyan),
	SeverityWarning: color.New(color.FgYellow),
	SeverityParse:   color.New(color.FgMagenta),
	SeverityFatal:   color.New(color.FgRed, color.Bold),
}

// Writer is a Decorator that colors classified lines and passes the rest
// through unchanged. Partial lines are buffered until their newline arrives
// or Flush forces one.
type Writer struct {
	out     io.Writer
	buf     bytes.Buffer
	noColor bool
}

// NewWriter creates a Writer emitting to out. When noColor is set, lines
// pass through without styling but line buffering and Flush behave the same.
func NewWriter(out io.Writer, noColor bool) *Writer {
	return &Writer{out: out, noColor: noColor}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		idx := bytes.IndexByte(w.buf.Bytes(), '\n')
		if idx < 0 {
			return len(p), nil
		}
		line := string(w.buf.Next(idx + 1))
		if err := w.writeLine(line[:len(line)-1]); err != nil {
			return len(p), err
		}
	}
}

// Flush force-terminates a dangling partial line so the run's closing
// summary starts on a fresh one.
func (w *Writer) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	line := w.buf.String()
	w.buf.Reset()
	return w.writeLine(line)
}

func (w *Writer) writeLine(line string) error {
	sev := Classify(line)
	style, ok := styles[sev]
	if w.noColor || !ok {
		_, err := io.WriteString(w.out, line+"\n")
		return err
	}
	_, err := style.Fprintln(w.out, line)
	return err
}
