package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeValue decodes one argument of type t from buf starting at offset.
// It returns the decoded value and the number of bytes consumed.
//
// Decoded values use the canonical Go type for each tag: uint8, int8,
// uint16, uint32, MACAddress, and []byte for uint8array.
func DecodeValue(t ArgType, buf []byte, offset int) (any, int, error) {
	remaining := len(buf) - offset
	if remaining < 0 {
		remaining = 0
	}

	switch t {
	case TypeUint8:
		if remaining < 1 {
			return nil, 0, fmt.Errorf("%w: uint8 needs 1 byte, %d remaining", ErrTruncatedArgument, remaining)
		}
		return buf[offset], 1, nil

	case TypeInt8:
		if remaining < 1 {
			return nil, 0, fmt.Errorf("%w: int8 needs 1 byte, %d remaining", ErrTruncatedArgument, remaining)
		}
		return int8(buf[offset]), 1, nil

	case TypeUint16:
		if remaining < 2 {
			return nil, 0, fmt.Errorf("%w: uint16 needs 2 bytes, %d remaining", ErrTruncatedArgument, remaining)
		}
		return binary.LittleEndian.Uint16(buf[offset:]), 2, nil

	case TypeUint32:
		if remaining < 4 {
			return nil, 0, fmt.Errorf("%w: uint32 needs 4 bytes, %d remaining", ErrTruncatedArgument, remaining)
		}
		return binary.LittleEndian.Uint32(buf[offset:]), 4, nil

	case TypeMACAddress:
		if remaining < 6 {
			return nil, 0, fmt.Errorf("%w: mac_address needs 6 bytes, %d remaining", ErrTruncatedArgument, remaining)
		}
		var mac MACAddress
		copy(mac[:], buf[offset:offset+6])
		return mac, 6, nil

	case TypeUint8Array:
		if remaining < 1 {
			return nil, 0, fmt.Errorf("%w: uint8array needs a length prefix, 0 bytes remaining", ErrTruncatedArgument)
		}
		length := int(buf[offset])
		if remaining < 1+length {
			return nil, 0, fmt.Errorf("%w: uint8array declares %d bytes, %d remaining", ErrTruncatedArgument, length, remaining-1)
		}
		data := make([]byte, length)
		copy(data, buf[offset+1:offset+1+length])
		return data, 1 + length, nil

	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// EncodeValue encodes one argument of type t to its wire bytes.
//
// Integer arguments accept the canonical Go type plus any other integer
// type whose value fits the wire width; uint8array accepts []byte or a
// string; mac_address accepts MACAddress, [6]byte or a 6-byte slice.
func EncodeValue(t ArgType, v any) ([]byte, error) {
	switch t {
	case TypeUint8:
		u, err := coerceUint(t, v, math.MaxUint8)
		if err != nil {
			return nil, err
		}
		return []byte{byte(u)}, nil

	case TypeInt8:
		i, err := coerceInt(t, v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return nil, err
		}
		return []byte{byte(int8(i))}, nil

	case TypeUint16:
		u, err := coerceUint(t, v, math.MaxUint16)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(u))
		return b, nil

	case TypeUint32:
		u, err := coerceUint(t, v, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(u))
		return b, nil

	case TypeMACAddress:
		mac, err := coerceMAC(v)
		if err != nil {
			return nil, err
		}
		return mac.Bytes(), nil

	case TypeUint8Array:
		data, err := coerceBytes(v)
		if err != nil {
			return nil, err
		}
		if len(data) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: uint8array of %d bytes exceeds 255", ErrArgumentTooLarge, len(data))
		}
		b := make([]byte, 1+len(data))
		b[0] = byte(len(data))
		copy(b[1:], data)
		return b, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

// coerceUint converts any integer value to uint64, rejecting negatives and
// values above max.
func coerceUint(t ArgType, v any, max uint64) (uint64, error) {
	var u uint64
	switch n := v.(type) {
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	case uint:
		u = uint64(n)
	case int8:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for %s", ErrArgumentTooLarge, n, t)
		}
		u = uint64(n)
	case int16:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for %s", ErrArgumentTooLarge, n, t)
		}
		u = uint64(n)
	case int32:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for %s", ErrArgumentTooLarge, n, t)
		}
		u = uint64(n)
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for %s", ErrArgumentTooLarge, n, t)
		}
		u = uint64(n)
	case int:
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d for %s", ErrArgumentTooLarge, n, t)
		}
		u = uint64(n)
	default:
		return 0, fmt.Errorf("cannot encode %T as %s", v, t)
	}
	if u > max {
		return 0, fmt.Errorf("%w: %d exceeds %s range", ErrArgumentTooLarge, u, t)
	}
	return u, nil
}

// coerceInt converts any integer value to int64, range-checked to [min, max].
func coerceInt(t ArgType, v any, min, max int64) (int64, error) {
	var i int64
	switch n := v.(type) {
	case int8:
		i = int64(n)
	case int16:
		i = int64(n)
	case int32:
		i = int64(n)
	case int64:
		i = n
	case int:
		i = int64(n)
	case uint8:
		i = int64(n)
	case uint16:
		i = int64(n)
	case uint32:
		i = int64(n)
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d exceeds %s range", ErrArgumentTooLarge, n, t)
		}
		i = int64(n)
	case uint:
		i = int64(n)
	default:
		return 0, fmt.Errorf("cannot encode %T as %s", v, t)
	}
	if i < min || i > max {
		return 0, fmt.Errorf("%w: %d exceeds %s range", ErrArgumentTooLarge, i, t)
	}
	return i, nil
}

func coerceMAC(v any) (MACAddress, error) {
	switch m := v.(type) {
	case MACAddress:
		return m, nil
	case [6]byte:
		return MACAddress(m), nil
	case []byte:
		if len(m) != 6 {
			return MACAddress{}, fmt.Errorf("mac_address requires 6 bytes, got %d", len(m))
		}
		var mac MACAddress
		copy(mac[:], m)
		return mac, nil
	default:
		return MACAddress{}, fmt.Errorf("cannot encode %T as mac_address", v)
	}
}

func coerceBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("cannot encode %T as uint8array", v)
	}
}
