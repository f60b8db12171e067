// Package tree implements the SCPI command tree.
//
// Commands form a hierarchy of nodes, each identified by a long-form
// mnemonic whose leading capitals are its short form: SENSe matches
// both "SENSE" and "SENS" (case-insensitively) and nothing in between.
//
// A node may carry a default child, written in SCPI syntax with square
// brackets (INITiate[:IMMediate]). Default children are optional in the
// incoming header path: resolution descends through them both when a
// path stops early and when the next mnemonic only matches below them.
//
// Nodes carry their handlers as event/query callbacks closed over the
// instrument, so resolution is a pure lookup with no dispatch state.
package tree
