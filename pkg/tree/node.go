package tree

import (
	"errors"
	"strings"

	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
)

// Resolution errors.
var (
	// ErrUndefinedHeader indicates no node matched the header path.
	ErrUndefinedHeader = errors.New("undefined header")

	// ErrHeaderIncomplete indicates the path stopped at an internal
	// node with no default child and no handler of its own.
	ErrHeaderIncomplete = errors.New("incomplete header")

	// ErrQueryNotSupported indicates a query on an event-only node.
	ErrQueryNotSupported = errors.New("query not supported")

	// ErrEventNotSupported indicates an event on a query-only node.
	ErrEventNotSupported = errors.New("command not supported")
)

// EventFunc executes a command (event) message unit.
type EventFunc func(args param.Args) error

// QueryFunc executes a query message unit, appending its result to the
// response unit.
type QueryFunc func(args param.Args, r *response.Unit) error

// Node is one mnemonic in the command tree.
type Node struct {
	// Name is the long-form mnemonic with its short form capitalized,
	// e.g. "SENSe". Common command nodes keep their '*' prefix.
	Name string

	// Default marks this node as its parent's default child.
	Default bool

	// Event handles the command form; nil if not supported.
	Event EventFunc

	// Query handles the query form; nil if not supported.
	Query QueryFunc

	Children []*Node
}

// ShortForm returns the abbreviated mnemonic: the leading run of
// capitals and digits of the long form.
func ShortForm(name string) string {
	for i, r := range name {
		if r >= 'a' && r <= 'z' {
			return name[:i]
		}
	}
	return name
}

// Match reports whether input matches the mnemonic: exactly the short
// form or exactly the long form, case-insensitively. No other partial
// forms are accepted.
func Match(name, input string) bool {
	return strings.EqualFold(input, name) || strings.EqualFold(input, ShortForm(name))
}

// child returns the child matching the mnemonic, or nil.
func (n *Node) child(mnemonic string) *Node {
	for _, c := range n.Children {
		if Match(c.Name, mnemonic) {
			return c
		}
	}
	return nil
}

// defaultChild returns the child marked Default, or nil.
func (n *Node) defaultChild() *Node {
	for _, c := range n.Children {
		if c.Default {
			return c
		}
	}
	return nil
}

// leaf returns whether the node carries a handler of its own.
func (n *Node) leaf() bool {
	return n.Event != nil || n.Query != nil
}

// Resolve walks the header path starting at n.
//
// It returns the bound node and the scope node the SCPI compound-
// message rule establishes for the next relative header: the node the
// last explicit mnemonic was matched under.
func (n *Node) Resolve(path []string) (bound, scope *Node, err error) {
	cur := n
	scope = n

	for i, mnemonic := range path {
		next := cur.child(mnemonic)
		// Default children are optional in the written path: descend
		// through them until the mnemonic matches or none are left.
		for next == nil {
			def := cur.defaultChild()
			if def == nil {
				return nil, nil, ErrUndefinedHeader
			}
			cur = def
			next = cur.child(mnemonic)
		}
		if i == len(path)-1 {
			scope = cur
		}
		cur = next
	}

	// The written path may stop above the handler; follow defaults down.
	for !cur.leaf() {
		def := cur.defaultChild()
		if def == nil {
			return nil, nil, ErrHeaderIncomplete
		}
		cur = def
	}
	return cur, scope, nil
}
