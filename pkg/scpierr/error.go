package scpierr

import (
	"errors"
	"fmt"
)

// Code is a numeric SCPI error code.
type Code int16

// Standard SCPI error codes used by this instrument.
const (
	CodeNoError               Code = 0
	CodeCommandError          Code = -100
	CodeSyntaxError           Code = -102
	CodeDataTypeError         Code = -104
	CodeParameterNotAllowed   Code = -108
	CodeMissingParameter      Code = -109
	CodeUndefinedHeader       Code = -113
	CodeNumericDataError      Code = -120
	CodeInvalidSuffix         Code = -131
	CodeInvalidCharacterData  Code = -141
	CodeInvalidStringData     Code = -151
	CodeExecutionError        Code = -200
	CodeSettingsConflict      Code = -221
	CodeDataOutOfRange        Code = -222
	CodeIllegalParameterValue Code = -224
	CodeDataCorruptOrStale    Code = -230
	CodeQueueOverflow         Code = -350
	CodeQueryError            Code = -400
)

// String returns the standard description for the code.
func (c Code) String() string {
	switch c {
	case CodeNoError:
		return "No error"
	case CodeCommandError:
		return "Command error"
	case CodeSyntaxError:
		return "Syntax error"
	case CodeDataTypeError:
		return "Data type error"
	case CodeParameterNotAllowed:
		return "Parameter not allowed"
	case CodeMissingParameter:
		return "Missing parameter"
	case CodeUndefinedHeader:
		return "Undefined header"
	case CodeNumericDataError:
		return "Numeric data error"
	case CodeInvalidSuffix:
		return "Invalid suffix"
	case CodeInvalidCharacterData:
		return "Invalid character data"
	case CodeInvalidStringData:
		return "Invalid string data"
	case CodeExecutionError:
		return "Execution error"
	case CodeSettingsConflict:
		return "Settings conflict"
	case CodeDataOutOfRange:
		return "Data out of range"
	case CodeIllegalParameterValue:
		return "Illegal parameter value"
	case CodeDataCorruptOrStale:
		return "Data corrupt or stale"
	case CodeQueueOverflow:
		return "Queue overflow"
	case CodeQueryError:
		return "Query error"
	default:
		return "Unknown error"
	}
}

// Error is a protocol-visible SCPI error.
type Error struct {
	// Code is the numeric SCPI error code.
	Code Code

	// Info is optional device-specific detail appended after the
	// standard description.
	Info string
}

// New creates an Error with the given code.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Newf creates an Error with device-specific detail.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Info: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
// The format matches the SYSTem:ERRor? response payload.
func (e *Error) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("%d,%q", e.Code, e.Code.String()+";"+e.Info)
	}
	return fmt.Sprintf("%d,%q", e.Code, e.Code.String())
}

// CodeOf extracts the SCPI code from err.
// Errors that are not scpierr.Error map to -200,"Execution error".
func CodeOf(err error) Code {
	if err == nil {
		return CodeNoError
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeExecutionError
}

// AsError converts err into a protocol-visible *Error, wrapping
// unclassified errors as execution errors.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Code: CodeExecutionError, Info: err.Error()}
}
