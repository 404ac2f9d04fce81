package console

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want Severity
	}{
		{"PHP Notice: undefined variable", SeverityNotice},
		{"Warning error in foo.php", SeverityWarning},
		{"Parse error: syntax error, unexpected '}'", SeverityParse},
		{"Fatal error: call to undefined function", SeverityFatal},
		{"   1) src/a.php", SeverityNone},
		{"", SeverityNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.want {
			t.Errorf("Classify(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestWriter_PassesLinesThrough(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, true)

	w.Write([]byte("line one\nline two\n"))
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if out.String() != "line one\nline two\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestWriter_BuffersPartialLines(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, true)

	w.Write([]byte("split "))
	if out.String() != "" {
		t.Errorf("partial line emitted early: %q", out.String())
	}
	w.Write([]byte("across writes\n"))
	if out.String() != "split across writes\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestWriter_FlushForcesEOL(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, true)

	w.Write([]byte("dangling"))
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "dangling\n" {
		t.Errorf("expected forced newline, got %q", out.String())
	}
}

func TestWriter_FlushOnEmptyBufferWritesNothing(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, true)

	w.Write([]byte("complete\n"))
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if out.String() != "complete\n" {
		t.Errorf("expected no extra output, got %q", out.String())
	}
}

func TestWriter_NoColorLeavesClassifiedLinesBare(t *testing.T) {
	var out strings.Builder
	w := NewWriter(&out, true)

	w.Write([]byte("Fatal error: boom\n"))
	if out.String() != "Fatal error: boom\n" {
		t.Errorf("expected bare line, got %q", out.String())
	}
}
