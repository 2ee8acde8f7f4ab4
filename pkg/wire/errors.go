package wire

import "errors"

// Codec errors.
var (
	// ErrUnknownType indicates an argument type tag that this package does
	// not implement. Schemas are validated at registry construction, so
	// hitting this during decode means a registry bypassed validation.
	ErrUnknownType = errors.New("unknown argument type")

	// ErrTruncatedArgument indicates the buffer ended before an argument's
	// declared width was satisfied.
	ErrTruncatedArgument = errors.New("truncated argument")

	// ErrArgumentTooLarge indicates a value that does not fit its wire
	// representation (e.g. a byte array longer than 255 bytes).
	ErrArgumentTooLarge = errors.New("argument too large")

	// ErrPayloadTooLarge indicates a payload exceeding the header's 11-bit
	// length field (2047 bytes).
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrHeaderTruncated indicates a buffer shorter than the 4-byte header.
	ErrHeaderTruncated = errors.New("truncated header")
)
