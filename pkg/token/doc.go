// Package token splits raw SCPI program messages into command segments.
//
// A program message is one terminated line holding one or more message
// units chained by ';':
//
//	SENS:FUNC "VOLT:AC";VOLTAGE:AC:RANGE 5V;RESOLUTION 0.01V
//
// Each unit has a command header and zero or more comma-separated
// arguments. The tokenizer only performs lexical splitting: quote-aware
// ';' and ',' handling, query/absolute/common header classification and
// mnemonic path splitting. Argument decoding belongs to package param
// and header resolution to package tree.
package token
