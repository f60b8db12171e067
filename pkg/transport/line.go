package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/scpi-protocol/scpi-go/pkg/log"
)

// Framing constants.
const (
	// DefaultMaxLineLength is the default maximum program message
	// length in bytes, terminator excluded.
	DefaultMaxLineLength = 4096

	// MaxLogLineLength is the maximum line length included in log
	// events. Longer lines are truncated in the event only.
	MaxLogLineLength = 512

	// Terminator ends every program message and response.
	Terminator = '\n'
)

// Framing errors.
var (
	// ErrLineTooLong indicates the line exceeds the maximum length.
	ErrLineTooLong = errors.New("line too long")
)

// LineReader reads newline-terminated lines from an underlying reader.
type LineReader struct {
	r       *bufio.Reader
	maxLine int

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineReader creates a new line reader.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		r:       bufio.NewReader(r),
		maxLine: DefaultMaxLineLength,
	}
}

// NewLineReaderWithMaxLength creates a line reader with a custom limit.
func NewLineReaderWithMaxLength(r io.Reader, maxLine int) *LineReader {
	return &LineReader{
		r:       bufio.NewReader(r),
		maxLine: maxLine,
	}
}

// SetLogger configures logging for this reader.
// Pass nil to disable logging.
func (lr *LineReader) SetLogger(logger log.Logger, connID string) {
	lr.logger = logger
	lr.connID = connID
}

// ReadLine reads one line, stripping the terminator and an optional
// carriage return. Returns io.EOF once the stream ends with no partial
// line pending. Input is bounded: a peer that exceeds the line limit
// without sending a terminator gets ErrLineTooLong instead of growing
// the buffer.
func (lr *LineReader) ReadLine() (string, error) {
	var b strings.Builder
	for {
		chunk, err := lr.r.ReadSlice(Terminator)
		b.Write(chunk)
		// +2 allows for a CRLF terminator.
		if b.Len() > lr.maxLine+2 {
			return "", fmt.Errorf("%w: %d > %d", ErrLineTooLong, b.Len(), lr.maxLine)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			if err == io.EOF && b.Len() > 0 {
				// Final unterminated line still counts.
				break
			}
			return "", err
		}
		break
	}

	line := strings.TrimRight(b.String(), "\r\n")
	if lr.logger != nil {
		lr.logger.Log(makeLineEvent(lr.connID, line, log.DirectionIn))
	}
	return line, nil
}

// LineWriter writes newline-terminated lines to an underlying writer.
type LineWriter struct {
	w  io.Writer
	mu sync.Mutex

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewLineWriter creates a new line writer.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// SetLogger configures logging for this writer.
// Pass nil to disable logging.
func (lw *LineWriter) SetLogger(logger log.Logger, connID string) {
	lw.logger = logger
	lw.connID = connID
}

// WriteLine writes one response line, appending the terminator.
// Thread-safe: can be called from multiple goroutines.
func (lw *LineWriter) WriteLine(line string) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if _, err := io.WriteString(lw.w, line+string(Terminator)); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}

	if lw.logger != nil {
		lw.logger.Log(makeLineEvent(lw.connID, line, log.DirectionOut))
	}
	return nil
}

// LineConn combines line reading and writing over one channel.
type LineConn struct {
	*LineReader
	*LineWriter
}

// NewLineConn creates a line conn for bidirectional communication.
func NewLineConn(rw io.ReadWriter) *LineConn {
	return &LineConn{
		LineReader: NewLineReader(rw),
		LineWriter: NewLineWriter(rw),
	}
}

// SetLogger configures logging for both reader and writer.
// Pass nil to disable logging.
func (c *LineConn) SetLogger(logger log.Logger, connID string) {
	c.LineReader.SetLogger(logger, connID)
	c.LineWriter.SetLogger(logger, connID)
}

// makeLineEvent creates a log event for a line.
func makeLineEvent(connID, line string, direction log.Direction) log.Event {
	text := line
	truncated := false
	if len(text) > MaxLogLineLength {
		text = text[:MaxLogLineLength]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Line: &log.LineEvent{
			Text:      text,
			Truncated: truncated,
		},
	}
}
