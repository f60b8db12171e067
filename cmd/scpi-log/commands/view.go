// Package commands implements the scpi-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/scpi-protocol/scpi-go/pkg/log"
)

// BuildFilter assembles a log filter from the textual CLI flag values.
// Empty values match everything.
func BuildFilter(connID, direction, layer, category string) (*log.Filter, error) {
	filter := &log.Filter{ConnectionID: connID}

	switch strings.ToLower(direction) {
	case "":
	case "in":
		d := log.DirectionIn
		filter.Direction = &d
	case "out":
		d := log.DirectionOut
		filter.Direction = &d
	default:
		return nil, fmt.Errorf("unknown direction %q (want in or out)", direction)
	}

	switch strings.ToLower(layer) {
	case "":
	case "transport":
		l := log.LayerTransport
		filter.Layer = &l
	case "dispatch":
		l := log.LayerDispatch
		filter.Layer = &l
	case "device":
		l := log.LayerDevice
		filter.Layer = &l
	default:
		return nil, fmt.Errorf("unknown layer %q (want transport, dispatch or device)", layer)
	}

	switch strings.ToLower(category) {
	case "":
	case "message":
		c := log.CategoryMessage
		filter.Category = &c
	case "state":
		c := log.CategoryState
		filter.Category = &c
	case "error":
		c := log.CategoryError
		filter.Category = &c
	default:
		return nil, fmt.Errorf("unknown category %q (want message, state or error)", category)
	}

	return filter, nil
}

// RunView prints matching events in human-readable form.
func RunView(path string, filter *log.Filter, w io.Writer) error {
	events, err := log.ReadFile(path, filter)
	if err != nil {
		return err
	}
	for _, event := range events {
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)
	if connID == "" {
		connID = "stdio"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n",
		ts, connID, event.Direction, event.Layer, typeLabel(event))

	switch {
	case event.Line != nil:
		fmt.Fprintf(w, "  Text: %s", event.Line.Text)
		if event.Line.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	case event.Command != nil:
		fmt.Fprintf(w, "  Header: %s\n", event.Command.Header)
		if event.Command.Args > 0 {
			fmt.Fprintf(w, "  Args: %d\n", event.Command.Args)
		}
	case event.Response != nil:
		fmt.Fprintf(w, "  Payload: %s\n", event.Response.Payload)
	case event.StateChange != nil:
		fmt.Fprintf(w, "  %s -> %s\n", event.StateChange.From, event.StateChange.To)
	case event.Error != nil:
		fmt.Fprintf(w, "  Code: %d\n  Message: %s\n", event.Error.Code, event.Error.Message)
	}

	fmt.Fprintln(w)
}

// typeLabel names the payload carried by the event.
func typeLabel(event log.Event) string {
	switch {
	case event.Line != nil:
		return "Line"
	case event.Command != nil:
		if event.Command.Query {
			return "Query"
		}
		return "Command"
	case event.Response != nil:
		return "Response"
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
