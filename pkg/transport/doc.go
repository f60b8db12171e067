// Package transport provides the line-oriented SCPI transport layer.
//
// SCPI program messages travel as newline-terminated ASCII lines. The
// same framing serves two channels:
//
//   - the stdio pipe of a spawned instrument process, and
//   - raw TCP sockets in the LXI style, one interpreter per connection.
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│     SCPI program messages      │
//	├────────────────────────────────┤
//	│   Newline-terminated lines     │
//	├────────────────────────────────┤
//	│      stdio pipe / TCP          │
//	└────────────────────────────────┘
//
// Lines are bounded (DefaultMaxLineLength) so a peer that never sends
// a terminator cannot grow memory without limit.
package transport
