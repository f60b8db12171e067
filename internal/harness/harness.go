// Package harness provides an in-process instrument driver for
// integration tests. It executes program messages against a simulated
// voltmeter exactly the way the stdio front end does, without spawning
// a process.
package harness

import (
	"testing"

	"github.com/scpi-protocol/scpi-go/pkg/dmm"
	"github.com/scpi-protocol/scpi-go/pkg/interp"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
)

// Instrument is a fully wired simulated voltmeter.
type Instrument struct {
	Meter *dmm.Voltmeter
	In    *interp.Interpreter
}

// New creates an instrument with the default 1.0 V input level.
func New() *Instrument {
	return NewWithLevel(dmm.DefaultSimLevel)
}

// NewWithLevel creates an instrument sensing the given level.
func NewWithLevel(level float64) *Instrument {
	meter := dmm.New(&dmm.SimSensor{Level: level})
	return &Instrument{
		Meter: meter,
		In:    interp.New(dmm.CommandTree(meter), meter),
	}
}

// Exec runs one program message and fails the test if any segment
// raised an error. Returns the response lines.
func (h *Instrument) Exec(t *testing.T, line string) []string {
	t.Helper()
	result := h.In.Run(line)
	for _, e := range result.Errors {
		t.Errorf("%q raised %s", line, e.Error())
	}
	return result.Responses
}

// Query runs a message expected to produce exactly one response line
// and returns it.
func (h *Instrument) Query(t *testing.T, line string) string {
	t.Helper()
	responses := h.Exec(t, line)
	if len(responses) != 1 {
		t.Fatalf("%q: got %d response lines %v, want 1", line, len(responses), responses)
	}
	return responses[0]
}

// Send runs a message expected to produce no response lines.
func (h *Instrument) Send(t *testing.T, line string) {
	t.Helper()
	if responses := h.Exec(t, line); len(responses) != 0 {
		t.Fatalf("%q: unexpected responses %v", line, responses)
	}
}

// SendError runs a message expected to fail with the given error code.
// The error queue is drained afterwards so subsequent assertions start
// clean.
func (h *Instrument) SendError(t *testing.T, line string, code scpierr.Code) {
	t.Helper()
	result := h.In.Run(line)
	if len(result.Errors) == 0 {
		t.Fatalf("%q: expected error %d, got none (responses %v)", line, code, result.Responses)
	}
	if got := result.Errors[0].Code; got != code {
		t.Errorf("%q: error code = %d, want %d", line, got, code)
	}
	h.Meter.Errors.Clear()
}

// NextError pops one entry from the instrument error queue via
// SYSTem:ERRor? and returns its textual form.
func (h *Instrument) NextError(t *testing.T) string {
	t.Helper()
	return h.Query(t, "syst:err?")
}
