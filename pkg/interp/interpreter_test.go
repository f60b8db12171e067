package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
	"github.com/scpi-protocol/scpi-go/pkg/tree"
)

// sinkQueue collects pushed errors for assertions.
type sinkQueue struct {
	errs []*scpierr.Error
}

func (s *sinkQueue) PushError(err *scpierr.Error) {
	s.errs = append(s.errs, err)
}

// testInstrument is a minimal device: a settable value under
// VALue[:UPPer], an echo query, and a common *IDN.
type testInstrument struct {
	value float64
	beeps int
}

func (d *testInstrument) buildTree() *tree.Node {
	return &tree.Node{Children: []*tree.Node{
		{
			Name: "*IDN",
			Query: func(args param.Args, r *response.Unit) error {
				r.Literal("acme,widget,0,0")
				return nil
			},
		},
		{
			Name: "SOURce",
			Children: []*tree.Node{
				{
					Name: "VALue",
					Children: []*tree.Node{{
						Name: "UPPer", Default: true,
						Event: func(args param.Args) error {
							if err := args.Expect(1, 1); err != nil {
								return err
							}
							n, err := args.Number(0)
							if err != nil {
								return err
							}
							d.value = n
							return nil
						},
						Query: func(args param.Args, r *response.Unit) error {
							r.Float(d.value)
							return nil
						},
					}},
				},
				{
					Name: "BEEP",
					Event: func(args param.Args) error {
						d.beeps++
						return nil
					},
				},
			},
		},
	}}
}

func newTestInterpreter() (*Interpreter, *testInstrument, *sinkQueue) {
	d := &testInstrument{}
	sink := &sinkQueue{}
	return New(d.buildTree(), sink), d, sink
}

func TestRunSimpleQuery(t *testing.T) {
	in, _, sink := newTestInterpreter()

	result := in.Run("*idn?")
	require.False(t, result.Failed())
	assert.Equal(t, []string{"acme,widget,0,0"}, result.Responses)
	assert.Empty(t, sink.errs)
}

func TestRunEventAndQuery(t *testing.T) {
	in, d, _ := newTestInterpreter()

	result := in.Run("sour:val 42")
	require.False(t, result.Failed())
	assert.Empty(t, result.Responses)
	assert.Equal(t, 42.0, d.value)

	result = in.Run("sour:val?")
	require.False(t, result.Failed())
	assert.Equal(t, []string{"42.0"}, result.Responses)
}

func TestRunCompoundScope(t *testing.T) {
	in, d, _ := newTestInterpreter()

	// After SOUR:VAL the scope is SOURce; "beep" resolves under it.
	result := in.Run("sour:val 7;beep;beep")
	require.False(t, result.Failed(), "errors: %v", result.Errors)
	assert.Equal(t, 7.0, d.value)
	assert.Equal(t, 2, d.beeps)
}

func TestRunCommonDoesNotShiftScope(t *testing.T) {
	in, d, _ := newTestInterpreter()

	result := in.Run("sour:val 3;*idn?;beep")
	require.False(t, result.Failed(), "errors: %v", result.Errors)
	assert.Equal(t, []string{"acme,widget,0,0"}, result.Responses)
	assert.Equal(t, 1, d.beeps)
}

func TestRunAbsoluteResetsScope(t *testing.T) {
	in, _, _ := newTestInterpreter()

	// ":sour:beep" after shifting into SOURce still resolves; a bare
	// relative "sour:beep" from inside SOURce would not.
	result := in.Run("sour:val 1;:sour:beep")
	require.False(t, result.Failed(), "errors: %v", result.Errors)

	result = in.Run("sour:val 1;sour:beep")
	require.True(t, result.Failed())
	assert.Equal(t, scpierr.CodeUndefinedHeader, result.Errors[0].Code)
}

func TestRunErrorIsolation(t *testing.T) {
	in, d, sink := newTestInterpreter()

	result := in.Run("bogus;sour:val 5;*idn?")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, scpierr.CodeUndefinedHeader, result.Errors[0].Code)
	assert.Equal(t, 5.0, d.value)
	assert.Equal(t, []string{"acme,widget,0,0"}, result.Responses)
	require.Len(t, sink.errs, 1)
	assert.Same(t, result.Errors[0], sink.errs[0])
}

func TestRunErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		line string
		code scpierr.Code
	}{
		{"undefined header", "nope?", scpierr.CodeUndefinedHeader},
		{"query on event-only node", "sour:beep?", scpierr.CodeUndefinedHeader},
		{"event on query-only node", "*idn", scpierr.CodeUndefinedHeader},
		{"unterminated string", `sour:val "x`, scpierr.CodeInvalidStringData},
		{"empty unit", "sour:val 1;;beep", scpierr.CodeSyntaxError},
		{"bad header char", "so#ur:val 1", scpierr.CodeSyntaxError},
		{"missing parameter", "sour:val", scpierr.CodeMissingParameter},
		{"surplus parameter", "sour:val 1,2", scpierr.CodeParameterNotAllowed},
		{"bad suffix", "sour:val 5X", scpierr.CodeInvalidSuffix},
		{"wrong data type", `sour:val "five"`, scpierr.CodeDataTypeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _, sink := newTestInterpreter()
			result := in.Run(tt.line)
			require.True(t, result.Failed(), "line %q should fail", tt.line)
			assert.Equal(t, tt.code, result.Errors[0].Code)
			assert.NotEmpty(t, sink.errs)
		})
	}
}

func TestRunTokenizeFailureFailsOnce(t *testing.T) {
	in, _, sink := newTestInterpreter()

	// A lexing error poisons the whole line: exactly one error.
	result := in.Run(`sour:val "a;beep`)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, sink.errs, 1)
	assert.Empty(t, result.Responses)
}

func TestRunEmptyLine(t *testing.T) {
	in, _, _ := newTestInterpreter()

	result := in.Run("")
	require.True(t, result.Failed())
	assert.Equal(t, scpierr.CodeSyntaxError, result.Errors[0].Code)
}
