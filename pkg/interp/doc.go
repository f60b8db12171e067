// Package interp executes SCPI program messages against a command tree.
//
// The interpreter owns the per-line dispatch state the SCPI compound
// message rule requires: a relative header inherits the parent scope of
// the previous header in the same line, a leading ':' or a '*' common
// command resets resolution to the root, and scope never leaks across
// lines.
//
// Errors are local to their message unit: a failing unit pushes a SCPI
// error onto the instrument's error queue and the remaining units of
// the line still execute. Query responses are collected in input order,
// one response line per query unit.
package interp
