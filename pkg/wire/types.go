package wire

import "fmt"

// ArgType identifies the wire representation of a single argument.
type ArgType uint8

const (
	// TypeUint8 is an unsigned 8-bit integer.
	TypeUint8 ArgType = iota

	// TypeInt8 is a signed 8-bit integer (two's complement).
	TypeInt8

	// TypeUint16 is an unsigned 16-bit integer, little-endian.
	TypeUint16

	// TypeUint32 is an unsigned 32-bit integer, little-endian.
	TypeUint32

	// TypeMACAddress is a fixed 6-byte hardware address, wire order preserved.
	TypeMACAddress

	// TypeUint8Array is a variable-length byte array: a 1-byte length prefix
	// followed by that many data bytes.
	TypeUint8Array
)

// String returns the schema name of the argument type.
func (t ArgType) String() string {
	switch t {
	case TypeUint8:
		return "uint8"
	case TypeInt8:
		return "int8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeMACAddress:
		return "mac_address"
	case TypeUint8Array:
		return "uint8array"
	default:
		return fmt.Sprintf("ArgType(%d)", uint8(t))
	}
}

// IsValid returns true if the type tag is one this package implements.
func (t ArgType) IsValid() bool {
	return t <= TypeUint8Array
}

// Size returns the fixed encoded width in bytes, or -1 for variable-length
// types.
func (t ArgType) Size() int {
	switch t {
	case TypeUint8, TypeInt8:
		return 1
	case TypeUint16:
		return 2
	case TypeUint32:
		return 4
	case TypeMACAddress:
		return 6
	default:
		return -1
	}
}

// MACAddress is a 6-byte hardware address in wire byte order.
type MACAddress [6]byte

// String returns the canonical hex-colon form, e.g. "00:07:80:aa:bb:cc".
func (m MACAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		m[0], m[1], m[2], m[3], m[4], m[5])
}

// Bytes returns the address as a fresh 6-byte slice.
func (m MACAddress) Bytes() []byte {
	b := make([]byte, 6)
	copy(b, m[:])
	return b
}
