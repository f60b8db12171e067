// Package response renders SCPI response data.
//
// Each query message unit produces one response unit: comma-separated
// data items terminated by the transport's line terminator. Numeric
// data uses a canonical form that keeps a trailing ".0" on integral
// values (1.0, 5.0) and the shortest exact representation otherwise
// (0.01); string data is double-quoted with embedded quotes doubled.
package response
