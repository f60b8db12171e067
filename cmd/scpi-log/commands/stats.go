package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/scpi-protocol/scpi-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents int
	ByLayer     map[log.Layer]int
	ByCategory  map[log.Category]int
	ByDirection map[log.Direction]int
	Connections map[string]*ConnectionStats
	Errors      int
	TimeRange   struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Errors    int
}

// Collect aggregates statistics over the events.
func Collect(events []log.Event) *Stats {
	stats := &Stats{
		ByLayer:     make(map[log.Layer]int),
		ByCategory:  make(map[log.Category]int),
		ByDirection: make(map[log.Direction]int),
		Connections: make(map[string]*ConnectionStats),
	}

	for _, event := range events {
		stats.TotalEvents++
		stats.ByLayer[event.Layer]++
		stats.ByCategory[event.Category]++
		stats.ByDirection[event.Direction]++
		if event.Error != nil {
			stats.Errors++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		key := event.ConnectionID
		if key == "" {
			key = "stdio"
		}
		conn := stats.Connections[key]
		if conn == nil {
			conn = &ConnectionStats{FirstSeen: event.Timestamp}
			stats.Connections[key] = conn
		}
		conn.Events++
		conn.LastSeen = event.Timestamp
		if event.Timestamp.Before(conn.FirstSeen) {
			conn.FirstSeen = event.Timestamp
		}
		if event.Error != nil {
			conn.Errors++
		}
	}
	return stats
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	events, err := log.ReadFile(path, nil)
	if err != nil {
		return err
	}
	stats := Collect(events)

	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return nil
	}

	fmt.Fprintf(w, "Time range:   %s .. %s (%s)\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339),
		stats.TimeRange.End.UTC().Format(time.RFC3339),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	fmt.Fprintf(w, "Errors:       %d\n", stats.Errors)

	fmt.Fprintln(w, "\nBy layer:")
	for _, l := range []log.Layer{log.LayerTransport, log.LayerDispatch, log.LayerDevice} {
		if n := stats.ByLayer[l]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", l, n)
		}
	}
	fmt.Fprintln(w, "\nBy direction:")
	for _, d := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if n := stats.ByDirection[d]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", d, n)
		}
	}

	fmt.Fprintln(w, "\nConnections:")
	ids := make([]string, 0, len(stats.Connections))
	for id := range stats.Connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		conn := stats.Connections[id]
		fmt.Fprintf(w, "  %-12s %d events, %d errors\n", shortenConnID(id), conn.Events, conn.Errors)
	}
	return nil
}
