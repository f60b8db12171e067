package log

import "time"

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID); empty
	// for the stdio channel.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// RemoteAddr is the peer address for network transports.
	RemoteAddr string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Line        *LineEvent        `cbor:"7,keyasint,omitempty"`  // Transport layer
	Command     *CommandEvent     `cbor:"8,keyasint,omitempty"`  // Dispatch layer (parsed)
	Response    *ResponseEvent    `cbor:"9,keyasint,omitempty"`  // Dispatch layer (rendered)
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"` // Connection/trigger state
	Error       *ErrorEventData   `cbor:"11,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the line framing layer (raw text lines).
	LayerTransport Layer = 0
	// LayerDispatch is the tokenizer/dispatcher layer.
	LayerDispatch Layer = 1
	// LayerDevice is the instrument state layer.
	LayerDevice Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerDispatch:
		return "DISPATCH"
	case LayerDevice:
		return "DEVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message (line/command/response).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LineEvent captures one raw line at the transport layer.
type LineEvent struct {
	// Text is the line content without its terminator (may be
	// truncated for very long lines).
	Text string `cbor:"1,keyasint"`

	// Truncated indicates if Text was truncated.
	Truncated bool `cbor:"2,keyasint,omitempty"`
}

// CommandEvent captures one parsed message unit at the dispatch layer.
type CommandEvent struct {
	// Header is the command header as written.
	Header string `cbor:"1,keyasint"`

	// Query indicates the query form.
	Query bool `cbor:"2,keyasint,omitempty"`

	// Args is the argument count.
	Args int `cbor:"3,keyasint,omitempty"`
}

// ResponseEvent captures one rendered query response.
type ResponseEvent struct {
	// Payload is the response without its line terminator.
	Payload string `cbor:"1,keyasint"`
}

// StateChangeEvent captures connection or trigger state transitions.
type StateChangeEvent struct {
	// From is the previous state name.
	From string `cbor:"1,keyasint"`

	// To is the new state name.
	To string `cbor:"2,keyasint"`
}

// ErrorEventData captures error details.
type ErrorEventData struct {
	// Code is the SCPI error code, if the error is protocol-visible.
	Code int16 `cbor:"1,keyasint,omitempty"`

	// Message is the error description.
	Message string `cbor:"2,keyasint"`
}
