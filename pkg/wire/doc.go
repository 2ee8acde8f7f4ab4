// Package wire implements the byte-level BGAPI wire format.
//
// BGAPI frames consist of a fixed 4-byte header followed by a payload of
// 0-2047 bytes. The payload is the concatenation of the frame's argument
// values encoded in schema order.
//
// # Header Layout
//
// The 4-byte header packs five fields:
//
//	byte 0, bit 7:     message type (0 = command/response, 1 = event)
//	byte 0, bits 6..3: technology type (0-15)
//	byte 0, bits 2..0: payload length, high 3 bits
//	byte 1:            payload length, low 8 bits
//	byte 2:            group ID
//	byte 3:            method ID
//
// Historical BGAPI host implementations disagreed on the width and shift of
// the technology field. This package uses the layout above everywhere;
// Header.Encode and ParseHeader are exact inverses.
//
// # Argument Types
//
// Multi-byte integer arguments are little-endian. The header is the sole
// big-endian-flavored exception: its 11-bit length field spans byte 0 and
// byte 1 high-to-low.
package wire
