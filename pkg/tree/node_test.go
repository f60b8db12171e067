package tree

import (
	"errors"
	"testing"

	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
)

func TestShortForm(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"SENSe", "SENS"},
		{"VOLTage", "VOLT"},
		{"AC", "AC"},
		{"ERRor", "ERR"},
		{"*IDN", "*IDN"},
	}

	for _, tt := range tests {
		if got := ShortForm(tt.name); got != tt.want {
			t.Errorf("ShortForm(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"SENSe", true},
		{"SENSE", true},
		{"sense", true},
		{"SENS", true},
		{"sens", true},
		// Partials between short and long form are rejected.
		{"SEN", false},
		{"SENSe1", false},
		{"S", false},
	}

	for _, tt := range tests {
		if got := Match("SENSe", tt.input); got != tt.want {
			t.Errorf("Match(SENSe, %q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// noopEvent/noopQuery mark nodes as leaves.
func noopEvent(param.Args) error                 { return nil }
func noopQuery(param.Args, *response.Unit) error { return nil }

// testTree builds a miniature instrument tree:
//
//	SENSe
//	  FUNCtion (leaf)
//	  VOLTage
//	    [DC] (default)
//	      RANGe (leaf)
//	    AC
//	      RANGe (leaf)
//	INITiate
//	  [IMMediate] (default)
//	    [ALL] (default, leaf)
func testTree() *Node {
	return &Node{
		Children: []*Node{
			{
				Name: "SENSe",
				Children: []*Node{
					{Name: "FUNCtion", Event: noopEvent, Query: noopQuery},
					{
						Name: "VOLTage",
						Children: []*Node{
							{
								Name:    "DC",
								Default: true,
								Children: []*Node{
									{Name: "RANGe", Event: noopEvent},
								},
							},
							{
								Name: "AC",
								Children: []*Node{
									{Name: "RANGe", Event: noopEvent, Query: noopQuery},
								},
							},
						},
					},
				},
			},
			{
				Name: "INITiate",
				Children: []*Node{
					{
						Name:    "IMMediate",
						Default: true,
						Children: []*Node{
							{Name: "ALL", Default: true, Event: noopEvent},
						},
					},
				},
			},
		},
	}
}

func TestResolveExplicitPath(t *testing.T) {
	root := testTree()

	bound, _, err := root.Resolve([]string{"SENS", "VOLT", "AC", "RANG"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if bound.Name != "RANGe" {
		t.Errorf("bound = %q", bound.Name)
	}
}

func TestResolveDefaultDescent(t *testing.T) {
	root := testTree()

	// "SENS:VOLT:RANG" skips the default DC node.
	bound, _, err := root.Resolve([]string{"sens", "voltage", "rang"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if bound.Name != "RANGe" || bound.Query != nil {
		t.Errorf("bound = %q (should be the DC range leaf)", bound.Name)
	}
}

func TestResolveTrailingDefaults(t *testing.T) {
	root := testTree()

	// INITiate alone reaches INIT:IMM:ALL through two default hops.
	bound, _, err := root.Resolve([]string{"init"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if bound.Name != "ALL" {
		t.Errorf("bound = %q, want ALL", bound.Name)
	}
}

func TestResolveScope(t *testing.T) {
	root := testTree()

	// The scope is the parent the last mnemonic matched under, so a
	// following relative header starts there.
	_, scope, err := root.Resolve([]string{"sens", "volt", "ac", "rang"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if scope.Name != "AC" {
		t.Errorf("scope = %q, want AC", scope.Name)
	}

	bound, _, err := scope.Resolve([]string{"rang"})
	if err != nil {
		t.Fatalf("relative Resolve failed: %v", err)
	}
	if bound.Query == nil {
		t.Error("relative header should bind the AC range leaf")
	}
}

func TestResolveScopeThroughDefault(t *testing.T) {
	root := testTree()

	// "SENS:VOLT:RANG" matches RANG under the default DC node, which
	// becomes the scope.
	_, scope, err := root.Resolve([]string{"sens", "volt", "rang"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if scope.Name != "DC" {
		t.Errorf("scope = %q, want DC", scope.Name)
	}
}

func TestResolveErrors(t *testing.T) {
	root := testTree()

	if _, _, err := root.Resolve([]string{"bogus"}); !errors.Is(err, ErrUndefinedHeader) {
		t.Errorf("unknown mnemonic: %v", err)
	}
	if _, _, err := root.Resolve([]string{"sens", "volt", "ac", "bogus"}); !errors.Is(err, ErrUndefinedHeader) {
		t.Errorf("unknown leaf: %v", err)
	}
	// SENS:VOLT:AC has no default child and no handler.
	if _, _, err := root.Resolve([]string{"sens", "volt", "ac"}); !errors.Is(err, ErrHeaderIncomplete) {
		t.Errorf("incomplete header: %v", err)
	}
}
