package wire

import "fmt"

// Header constants.
const (
	// HeaderSize is the fixed frame header size in bytes.
	HeaderSize = 4

	// MaxPayloadLength is the largest payload the 11-bit length field can
	// describe.
	MaxPayloadLength = 0x07FF

	// MaxTechnology is the largest technology selector the 4-bit field can
	// carry.
	MaxTechnology = 0x0F
)

// MessageType distinguishes the two header-level frame classes. Whether a
// command/response frame is a command or a response depends on which side of
// the link produced it; the header bit alone cannot tell.
type MessageType uint8

const (
	// MessageCommandResponse marks a command (host to module) or response
	// (module to host) frame.
	MessageCommandResponse MessageType = 0

	// MessageEvent marks an asynchronous event frame from the module.
	MessageEvent MessageType = 1
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageCommandResponse:
		return "COMMAND_RESPONSE"
	case MessageEvent:
		return "EVENT"
	default:
		return "UNKNOWN"
	}
}

// Header is the decoded form of the 4-byte BGAPI frame header.
type Header struct {
	MessageType   MessageType
	Technology    uint8
	PayloadLength uint16
	GroupID       uint8
	MethodID      uint8
}

// ParseHeader decodes the first 4 bytes of buf.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, have %d", ErrHeaderTruncated, HeaderSize, len(buf))
	}
	return Header{
		MessageType:   MessageType(buf[0] >> 7),
		Technology:    (buf[0] >> 3) & 0x0F,
		PayloadLength: uint16(buf[0]&0x07)<<8 | uint16(buf[1]),
		GroupID:       buf[2],
		MethodID:      buf[3],
	}, nil
}

// Encode packs the header into its 4-byte wire form, the exact inverse of
// ParseHeader.
func (h Header) Encode() ([]byte, error) {
	if h.PayloadLength > MaxPayloadLength {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrPayloadTooLarge, h.PayloadLength, MaxPayloadLength)
	}
	if h.Technology > MaxTechnology {
		return nil, fmt.Errorf("technology %d exceeds %d", h.Technology, MaxTechnology)
	}
	return []byte{
		byte(h.MessageType)<<7 | h.Technology<<3 | byte(h.PayloadLength>>8),
		byte(h.PayloadLength),
		h.GroupID,
		h.MethodID,
	}, nil
}
