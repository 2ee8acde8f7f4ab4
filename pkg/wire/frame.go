package wire

// FrameStatus is the result of classifying an accumulating receive buffer.
type FrameStatus uint8

const (
	// FrameInProgress indicates the buffer does not yet hold a complete
	// frame. Malformed buffers also report InProgress; abandoning them is
	// the transport's job.
	FrameInProgress FrameStatus = 0

	// FrameComplete indicates the buffer holds exactly one complete frame.
	FrameComplete FrameStatus = 1

	// FrameIdle indicates an all-zero header, treated as line noise or
	// padding rather than a valid zero-length frame.
	FrameIdle FrameStatus = 2
)

// String returns the frame status name.
func (s FrameStatus) String() string {
	switch s {
	case FrameInProgress:
		return "IN_PROGRESS"
	case FrameComplete:
		return "COMPLETE"
	case FrameIdle:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Classify reports whether buf holds a complete frame. It is a pure
// predicate: it never consumes or mutates the buffer, and it is meant to be
// re-evaluated by the transport loop as each new byte arrives.
//
// A buffer is Complete when its length equals the header size plus the
// 11-bit payload length declared in the first two bytes. The single
// exception is a frame whose entire header is zero bytes: BGAPI modules can
// emit zero padding on wake-up, so an all-zero header is reported Idle and
// should be discarded, not decoded.
func Classify(buf []byte) FrameStatus {
	if len(buf) < HeaderSize {
		return FrameInProgress
	}

	payloadLength := int(buf[0]&0x07)<<8 | int(buf[1])
	if len(buf) == HeaderSize+payloadLength {
		if buf[0] == 0 && buf[1] == 0 && buf[2] == 0 && buf[3] == 0 {
			return FrameIdle
		}
		return FrameComplete
	}

	return FrameInProgress
}
