package interp

import (
	"errors"
	"time"

	"github.com/scpi-protocol/scpi-go/pkg/log"
	"github.com/scpi-protocol/scpi-go/pkg/param"
	"github.com/scpi-protocol/scpi-go/pkg/response"
	"github.com/scpi-protocol/scpi-go/pkg/scpierr"
	"github.com/scpi-protocol/scpi-go/pkg/token"
	"github.com/scpi-protocol/scpi-go/pkg/tree"
)

// ErrorSink receives protocol-visible errors raised during execution.
// *dmm.Voltmeter implements it over its error queue and status
// registers.
type ErrorSink interface {
	PushError(err *scpierr.Error)
}

// Result is the outcome of running one program message.
type Result struct {
	// Responses holds one rendered payload per query unit, in input
	// order, without line terminators.
	Responses []string

	// Errors holds the errors raised by failing units, in input order.
	// They have already been pushed to the sink.
	Errors []*scpierr.Error
}

// Failed reports whether any unit of the line failed.
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// Interpreter dispatches program messages against a command tree.
// It is single-threaded: one line runs to completion before the next.
type Interpreter struct {
	root *tree.Node
	sink ErrorSink

	logger log.Logger
	connID string
}

// New creates an interpreter over the given command tree.
// sink must not be nil.
func New(root *tree.Node, sink ErrorSink) *Interpreter {
	return &Interpreter{root: root, sink: sink, logger: log.NoopLogger{}}
}

// SetLogger configures protocol event logging.
// Pass nil to disable.
func (in *Interpreter) SetLogger(logger log.Logger, connID string) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	in.logger = logger
	in.connID = connID
}

// Run executes one program message (line terminator stripped).
//
// Malformed input never panics and never aborts the process: failures
// are converted to SCPI errors, pushed to the sink and reported in the
// result.
func (in *Interpreter) Run(line string) Result {
	var res Result

	segments, err := token.Tokenize(line)
	if err != nil {
		in.fail(&res, classify(err))
		return res
	}

	// Compound-message scope, reset at every new line.
	scope := in.root

	for _, seg := range segments {
		in.logCommand(seg)

		start := scope
		if seg.Header.Common || seg.Header.Absolute {
			start = in.root
		}

		bound, nextScope, err := start.Resolve(seg.Header.Mnemonics)
		if err != nil {
			in.fail(&res, classify(err))
			continue
		}
		if !seg.Header.Common {
			scope = nextScope
		}

		if err := in.execute(&res, bound, seg); err != nil {
			in.fail(&res, classify(err))
		}
	}
	return res
}

// execute runs one resolved message unit.
func (in *Interpreter) execute(res *Result, bound *tree.Node, seg token.Segment) error {
	args, err := param.DecodeAll(seg.Args)
	if err != nil {
		return err
	}

	if seg.Header.Query {
		if bound.Query == nil {
			return tree.ErrQueryNotSupported
		}
		var unit response.Unit
		if err := bound.Query(args, &unit); err != nil {
			return err
		}
		payload := unit.Render()
		res.Responses = append(res.Responses, payload)
		in.logResponse(payload)
		return nil
	}

	if bound.Event == nil {
		return tree.ErrEventNotSupported
	}
	return bound.Event(args)
}

// fail records a unit failure in the result and the sink.
func (in *Interpreter) fail(res *Result, err *scpierr.Error) {
	res.Errors = append(res.Errors, err)
	in.sink.PushError(err)
	in.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: in.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Code:    int16(err.Code),
			Message: err.Error(),
		},
	})
}

func (in *Interpreter) logCommand(seg token.Segment) {
	in.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: in.connID,
		Direction:    log.DirectionIn,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryMessage,
		Command: &log.CommandEvent{
			Header: seg.Header.String(),
			Query:  seg.Header.Query,
			Args:   len(seg.Args),
		},
	})
}

func (in *Interpreter) logResponse(payload string) {
	in.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: in.connID,
		Direction:    log.DirectionOut,
		Layer:        log.LayerDispatch,
		Category:     log.CategoryMessage,
		Response: &log.ResponseEvent{
			Payload: payload,
		},
	})
}

// classify maps tokenizer, parser and tree failures onto SCPI codes.
func classify(err error) *scpierr.Error {
	var se *scpierr.Error
	if errors.As(err, &se) {
		return se
	}

	code := scpierr.CodeExecutionError
	switch {
	case errors.Is(err, token.ErrUnterminatedString):
		code = scpierr.CodeInvalidStringData
	case errors.Is(err, token.ErrEmptyHeader),
		errors.Is(err, token.ErrInvalidCharacter):
		code = scpierr.CodeSyntaxError
	case errors.Is(err, tree.ErrUndefinedHeader),
		errors.Is(err, tree.ErrHeaderIncomplete),
		errors.Is(err, tree.ErrQueryNotSupported),
		errors.Is(err, tree.ErrEventNotSupported):
		code = scpierr.CodeUndefinedHeader
	case errors.Is(err, param.ErrNumericParse):
		code = scpierr.CodeNumericDataError
	case errors.Is(err, param.ErrInvalidSuffix):
		code = scpierr.CodeInvalidSuffix
	case errors.Is(err, param.ErrInvalidKeyword):
		code = scpierr.CodeInvalidCharacterData
	case errors.Is(err, param.ErrInvalidString):
		code = scpierr.CodeInvalidStringData
	case errors.Is(err, param.ErrMissingParameter):
		code = scpierr.CodeMissingParameter
	case errors.Is(err, param.ErrTooManyParameters):
		code = scpierr.CodeParameterNotAllowed
	case errors.Is(err, param.ErrDataType):
		code = scpierr.CodeDataTypeError
	}
	return scpierr.Newf(code, "%s", err.Error())
}
