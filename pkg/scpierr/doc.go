// Package scpierr defines the SCPI error taxonomy and the instrument
// error queue.
//
// SCPI reports failures as negative numeric codes with a fixed
// description, e.g.:
//
//	-113,"Undefined header"
//
// Errors raised while executing a program message are pushed onto a
// bounded FIFO queue and retrieved by the controller with
// SYSTem:ERRor[:NEXT]?. A full queue replaces its newest entry with
// -350,"Queue overflow" so the overflow itself stays visible.
//
// # Code Ranges
//
//   - -100..-199: Command errors (syntax, undefined headers, bad data)
//   - -200..-299: Execution errors (out of range, stale data)
//   - -300..-399: Device-specific errors (queue overflow)
//   - -400..-499: Query errors
package scpierr
