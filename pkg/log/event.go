package log

import (
	"time"

	"github.com/perilib/bgapi-go/pkg/schema"
)

// Event represents one captured protocol event. CBOR encoding uses integer
// keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the parse session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates byte flow relative to the host.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (exactly one is set).
	Frame  *FrameEvent  `cbor:"5,keyasint,omitempty"`
	Packet *PacketEvent `cbor:"6,keyasint,omitempty"`
	Error  *ErrorEvent  `cbor:"7,keyasint,omitempty"`
}

// Direction indicates the direction of byte flow relative to the host.
type Direction uint8

const (
	// DirectionRx indicates bytes read from the module.
	DirectionRx Direction = 0
	// DirectionTx indicates bytes written by the host.
	DirectionTx Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionRx:
		return "RX"
	case DirectionTx:
		return "TX"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates raw frame bytes.
	CategoryFrame Category = 0
	// CategoryPacket indicates a decoded or encoded packet.
	CategoryPacket Category = 1
	// CategoryError indicates a decode failure.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryPacket:
		return "PACKET"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame bytes as they cross the framing layer.
type FrameEvent struct {
	// Size is the full frame size in bytes, header included.
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes.
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Idle marks an all-zero header discarded as padding.
	Idle bool `cbor:"3,keyasint,omitempty"`
}

// PacketEvent captures a packet's resolved identity.
type PacketEvent struct {
	// Kind is the packet kind (command/response/event).
	Kind uint8 `cbor:"1,keyasint"`

	// Name is the full packet name.
	Name string `cbor:"2,keyasint"`

	// Technology, GroupID and MethodID form the numeric triple.
	Technology uint8 `cbor:"3,keyasint"`
	GroupID    uint8 `cbor:"4,keyasint"`
	MethodID   uint8 `cbor:"5,keyasint"`

	// PayloadLength is the encoded argument byte count.
	PayloadLength int `cbor:"6,keyasint"`
}

// KindString returns the packet kind name.
func (p *PacketEvent) KindString() string {
	return schema.Kind(p.Kind).String()
}

// ErrorEvent captures a decode failure together with the offending bytes.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Data is the buffer that failed to decode.
	Data []byte `cbor:"2,keyasint,omitempty"`
}
