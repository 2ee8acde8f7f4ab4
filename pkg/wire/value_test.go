package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      ArgType
		buf      []byte
		offset   int
		want     any
		consumed int
	}{
		{name: "uint8", typ: TypeUint8, buf: []byte{0xA5}, want: uint8(0xA5), consumed: 1},
		{name: "int8 negative", typ: TypeInt8, buf: []byte{0xFB}, want: int8(-5), consumed: 1},
		{name: "uint16 little endian", typ: TypeUint16, buf: []byte{0x34, 0x12}, want: uint16(0x1234), consumed: 2},
		{name: "uint32 little endian", typ: TypeUint32, buf: []byte{0xEF, 0xBE, 0xAD, 0xDE}, want: uint32(0xDEADBEEF), consumed: 4},
		{
			name:     "mac address wire order preserved",
			typ:      TypeMACAddress,
			buf:      []byte{0x00, 0x07, 0x80, 0xAA, 0xBB, 0xCC},
			want:     MACAddress{0x00, 0x07, 0x80, 0xAA, 0xBB, 0xCC},
			consumed: 6,
		},
		{name: "uint8array empty", typ: TypeUint8Array, buf: []byte{0x00}, want: []byte{}, consumed: 1},
		{name: "uint8array", typ: TypeUint8Array, buf: []byte{0x03, 0x01, 0x02, 0x03}, want: []byte{0x01, 0x02, 0x03}, consumed: 4},
		{
			name:     "offset respected",
			typ:      TypeUint16,
			buf:      []byte{0xFF, 0x34, 0x12},
			offset:   1,
			want:     uint16(0x1234),
			consumed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := DecodeValue(tt.typ, tt.buf, tt.offset)
			if err != nil {
				t.Fatalf("DecodeValue failed: %v", err)
			}
			if n != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", n, tt.consumed)
			}
			if b, ok := tt.want.([]byte); ok {
				if !bytes.Equal(got.([]byte), b) {
					t.Errorf("got %v, want %v", got, b)
				}
			} else if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeValueTruncated(t *testing.T) {
	tests := []struct {
		name string
		typ  ArgType
		buf  []byte
	}{
		{name: "uint8 empty", typ: TypeUint8, buf: nil},
		{name: "uint16 one byte short", typ: TypeUint16, buf: []byte{0x34}},
		{name: "uint32 one byte short", typ: TypeUint32, buf: []byte{1, 2, 3}},
		{name: "mac one byte short", typ: TypeMACAddress, buf: []byte{1, 2, 3, 4, 5}},
		{name: "uint8array missing prefix", typ: TypeUint8Array, buf: nil},
		{name: "uint8array data short", typ: TypeUint8Array, buf: []byte{0x04, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeValue(tt.typ, tt.buf, 0)
			if !errors.Is(err, ErrTruncatedArgument) {
				t.Fatalf("got %v, want ErrTruncatedArgument", err)
			}
		})
	}
}

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name  string
		typ   ArgType
		value any
		want  []byte
	}{
		{name: "uint8", typ: TypeUint8, value: uint8(0xA5), want: []byte{0xA5}},
		{name: "uint8 from int", typ: TypeUint8, value: 7, want: []byte{0x07}},
		{name: "int8 negative", typ: TypeInt8, value: int8(-5), want: []byte{0xFB}},
		{name: "int8 from int", typ: TypeInt8, value: -1, want: []byte{0xFF}},
		{name: "uint16", typ: TypeUint16, value: uint16(0x1234), want: []byte{0x34, 0x12}},
		{name: "uint32", typ: TypeUint32, value: uint32(0xDEADBEEF), want: []byte{0xEF, 0xBE, 0xAD, 0xDE}},
		{
			name:  "mac address",
			typ:   TypeMACAddress,
			value: MACAddress{0x00, 0x07, 0x80, 0xAA, 0xBB, 0xCC},
			want:  []byte{0x00, 0x07, 0x80, 0xAA, 0xBB, 0xCC},
		},
		{
			name:  "mac address from slice",
			typ:   TypeMACAddress,
			value: []byte{1, 2, 3, 4, 5, 6},
			want:  []byte{1, 2, 3, 4, 5, 6},
		},
		{name: "uint8array", typ: TypeUint8Array, value: []byte{1, 2, 3}, want: []byte{0x03, 1, 2, 3}},
		{name: "uint8array from string", typ: TypeUint8Array, value: "hi", want: []byte{0x02, 'h', 'i'}},
		{name: "uint8array empty", typ: TypeUint8Array, value: []byte{}, want: []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeValue(tt.typ, tt.value)
			if err != nil {
				t.Fatalf("EncodeValue failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestEncodeValueRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		typ   ArgType
		value any
	}{
		{name: "uint8 overflow", typ: TypeUint8, value: 256},
		{name: "uint8 negative", typ: TypeUint8, value: -1},
		{name: "int8 overflow", typ: TypeInt8, value: 128},
		{name: "int8 underflow", typ: TypeInt8, value: -129},
		{name: "uint16 overflow", typ: TypeUint16, value: 0x10000},
		{name: "uint32 overflow", typ: TypeUint32, value: uint64(1) << 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeValue(tt.typ, tt.value)
			if !errors.Is(err, ErrArgumentTooLarge) {
				t.Fatalf("got %v, want ErrArgumentTooLarge", err)
			}
		})
	}
}

func TestEncodeUint8ArrayBoundary(t *testing.T) {
	// 255 bytes is the largest encodable array
	max := make([]byte, 255)
	encoded, err := EncodeValue(TypeUint8Array, max)
	if err != nil {
		t.Fatalf("encoding 255-byte array failed: %v", err)
	}
	if len(encoded) != 256 || encoded[0] != 255 {
		t.Errorf("got %d bytes with prefix %d, want 256 bytes with prefix 255", len(encoded), encoded[0])
	}

	// 256 bytes no longer fits the 1-byte length prefix
	_, err = EncodeValue(TypeUint8Array, make([]byte, 256))
	if !errors.Is(err, ErrArgumentTooLarge) {
		t.Fatalf("got %v, want ErrArgumentTooLarge", err)
	}
}

func TestEncodeValueTypeErrors(t *testing.T) {
	if _, err := EncodeValue(TypeUint8, "nope"); err == nil {
		t.Error("encoding string as uint8 should fail")
	}
	if _, err := EncodeValue(TypeMACAddress, []byte{1, 2, 3}); err == nil {
		t.Error("encoding 3-byte slice as mac_address should fail")
	}
	if _, err := EncodeValue(TypeUint8Array, 42); err == nil {
		t.Error("encoding int as uint8array should fail")
	}
}

func TestUnknownTypeTag(t *testing.T) {
	bogus := ArgType(0xFF)
	if bogus.IsValid() {
		t.Error("ArgType(0xFF) should not be valid")
	}
	if _, _, err := DecodeValue(bogus, []byte{1, 2, 3}, 0); !errors.Is(err, ErrUnknownType) {
		t.Errorf("decode got %v, want ErrUnknownType", err)
	}
	if _, err := EncodeValue(bogus, 1); !errors.Is(err, ErrUnknownType) {
		t.Errorf("encode got %v, want ErrUnknownType", err)
	}
}

func TestMACAddressString(t *testing.T) {
	mac := MACAddress{0x00, 0x07, 0x80, 0xAA, 0xBB, 0xCC}
	if got, want := mac.String(), "00:07:80:aa:bb:cc"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
