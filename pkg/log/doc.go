// Package log provides structured protocol event logging for the SCPI
// instrument stack.
//
// Every layer (transport, dispatch, device) can emit Events describing
// lines, commands, responses, state changes and errors. Applications
// choose a sink: NoopLogger to disable, SlogAdapter for console
// development output, FileLogger for a compact CBOR event stream, or
// MultiLogger to fan out.
//
// The CBOR file format uses integer keys and nanosecond timestamps;
// Reader filters and replays recorded streams.
package log
