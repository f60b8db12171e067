package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/scpi-protocol/scpi-go/pkg/log"
)

func TestReadLine(t *testing.T) {
	r := NewLineReader(strings.NewReader("*idn?\nconf?\n"))

	line, err := r.ReadLine()
	if err != nil || line != "*idn?" {
		t.Errorf("first line = %q, %v", line, err)
	}
	line, err = r.ReadLine()
	if err != nil || line != "conf?" {
		t.Errorf("second line = %q, %v", line, err)
	}
	if _, err := r.ReadLine(); err != io.EOF {
		t.Errorf("exhausted read = %v, want EOF", err)
	}
}

func TestReadLineCRLF(t *testing.T) {
	r := NewLineReader(strings.NewReader("*idn?\r\n"))
	line, err := r.ReadLine()
	if err != nil || line != "*idn?" {
		t.Errorf("line = %q, %v", line, err)
	}
}

func TestReadLineUnterminatedTail(t *testing.T) {
	r := NewLineReader(strings.NewReader("syst:err?"))
	line, err := r.ReadLine()
	if err != nil || line != "syst:err?" {
		t.Errorf("line = %q, %v", line, err)
	}
	if _, err := r.ReadLine(); err != io.EOF {
		t.Errorf("after tail = %v, want EOF", err)
	}
}

func TestReadLineTooLong(t *testing.T) {
	long := strings.Repeat("a", 64) + "\n"
	r := NewLineReaderWithMaxLength(strings.NewReader(long), 16)

	_, err := r.ReadLine()
	if !errors.Is(err, ErrLineTooLong) {
		t.Errorf("ReadLine = %v, want %v", err, ErrLineTooLong)
	}
}

func TestReadLineAtLimit(t *testing.T) {
	line := strings.Repeat("a", 16)
	r := NewLineReaderWithMaxLength(strings.NewReader(line+"\r\n"), 16)

	got, err := r.ReadLine()
	if err != nil || got != line {
		t.Errorf("ReadLine = %q, %v", got, err)
	}
}

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewLineWriter(&buf)

	if err := w.WriteLine("1.0"); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	if err := w.WriteLine(`"VOLT:DC AUTO,1.0"`); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	want := "1.0\n\"VOLT:DC AUTO,1.0\"\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// captureLogger records events for inspection.
type captureLogger struct {
	events []log.Event
}

func (l *captureLogger) Log(event log.Event) {
	l.events = append(l.events, event)
}

func TestLineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := &captureLogger{}

	conn := NewLineConn(struct {
		io.Reader
		io.Writer
	}{strings.NewReader("conf?\n"), &buf})
	conn.SetLogger(logger, "conn-1")

	if _, err := conn.ReadLine(); err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if err := conn.WriteLine(`"VOLT:DC AUTO,1.0"`); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}

	if len(logger.events) != 2 {
		t.Fatalf("got %d events, want 2", len(logger.events))
	}
	in, out := logger.events[0], logger.events[1]
	if in.Direction != log.DirectionIn || in.Line == nil || in.Line.Text != "conf?" {
		t.Errorf("in event = %+v", in)
	}
	if out.Direction != log.DirectionOut || out.ConnectionID != "conn-1" {
		t.Errorf("out event = %+v", out)
	}
}

func TestLineLogTruncation(t *testing.T) {
	logger := &captureLogger{}
	w := NewLineWriter(io.Discard)
	w.SetLogger(logger, "")

	if err := w.WriteLine(strings.Repeat("x", MaxLogLineLength+100)); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	event := logger.events[0]
	if !event.Line.Truncated || len(event.Line.Text) != MaxLogLineLength {
		t.Errorf("event line = truncated %v, len %d", event.Line.Truncated, len(event.Line.Text))
	}
}
