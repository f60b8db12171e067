package commands

import (
	"encoding/json"
	"io"
	"time"

	"github.com/scpi-protocol/scpi-go/pkg/log"
)

// exportRecord is the JSONL shape of one event.
type exportRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	ConnectionID string    `json:"connection_id,omitempty"`
	Direction    string    `json:"direction"`
	Layer        string    `json:"layer"`
	Category     string    `json:"category"`
	RemoteAddr   string    `json:"remote_addr,omitempty"`

	Line        *log.LineEvent        `json:"line,omitempty"`
	Command     *log.CommandEvent     `json:"command,omitempty"`
	Response    *log.ResponseEvent    `json:"response,omitempty"`
	StateChange *log.StateChangeEvent `json:"state_change,omitempty"`
	Error       *log.ErrorEventData   `json:"error,omitempty"`
}

// RunExport writes matching events to w as JSON Lines.
func RunExport(path string, filter *log.Filter, w io.Writer) error {
	events, err := log.ReadFile(path, filter)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	for _, event := range events {
		rec := exportRecord{
			Timestamp:    event.Timestamp,
			ConnectionID: event.ConnectionID,
			Direction:    event.Direction.String(),
			Layer:        event.Layer.String(),
			Category:     event.Category.String(),
			RemoteAddr:   event.RemoteAddr,
			Line:         event.Line,
			Command:      event.Command,
			Response:     event.Response,
			StateChange:  event.StateChange,
			Error:        event.Error,
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
