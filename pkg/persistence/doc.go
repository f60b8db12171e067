// Package persistence stores instrument settings across restarts.
//
// Bench instruments commonly restore their last configuration at
// power-on. The store writes a small versioned JSON file holding the
// measurement configuration and trigger settings; *RST state is never
// persisted implicitly, callers decide when to save.
package persistence
