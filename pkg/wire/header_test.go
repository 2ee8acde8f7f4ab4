package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestHeaderEncode(t *testing.T) {
	tests := []struct {
		name   string
		header Header
		want   []byte
	}{
		{
			name:   "ble command system hello",
			header: Header{MessageType: MessageCommandResponse, Technology: 0, PayloadLength: 0, GroupID: 0, MethodID: 1},
			want:   []byte{0x00, 0x00, 0x00, 0x01},
		},
		{
			name:   "event bit",
			header: Header{MessageType: MessageEvent, Technology: 0, PayloadLength: 0, GroupID: 3, MethodID: 4},
			want:   []byte{0x80, 0x00, 0x03, 0x04},
		},
		{
			name:   "technology field bits 6..3",
			header: Header{MessageType: MessageCommandResponse, Technology: 4, PayloadLength: 0, GroupID: 1, MethodID: 2},
			want:   []byte{0x20, 0x00, 0x01, 0x02},
		},
		{
			name:   "length high bits in byte0",
			header: Header{MessageType: MessageCommandResponse, Technology: 0, PayloadLength: 0x0123, GroupID: 0, MethodID: 0},
			want:   []byte{0x01, 0x23, 0x00, 0x00},
		},
		{
			name:   "max payload length",
			header: Header{MessageType: MessageEvent, Technology: 15, PayloadLength: 2047, GroupID: 0xFF, MethodID: 0xFF},
			want:   []byte{0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.header.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	// Encoder and decoder must be exact inverses across the whole field
	// space, sampled on the boundaries.
	for _, mt := range []MessageType{MessageCommandResponse, MessageEvent} {
		for _, tech := range []uint8{0, 1, 4, 15} {
			for _, length := range []uint16{0, 1, 255, 256, 2047} {
				h := Header{
					MessageType:   mt,
					Technology:    tech,
					PayloadLength: length,
					GroupID:       0x5A,
					MethodID:      0xA5,
				}
				encoded, err := h.Encode()
				if err != nil {
					t.Fatalf("Encode(%+v) failed: %v", h, err)
				}
				decoded, err := ParseHeader(encoded)
				if err != nil {
					t.Fatalf("ParseHeader(% X) failed: %v", encoded, err)
				}
				if decoded != h {
					t.Errorf("round trip mismatch: %+v -> %+v", h, decoded)
				}
			}
		}
	}
}

func TestHeaderPayloadTooLarge(t *testing.T) {
	h := Header{PayloadLength: MaxPayloadLength + 1}
	if _, err := h.Encode(); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("got %v, want ErrPayloadTooLarge", err)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	for _, buf := range [][]byte{nil, {0x00}, {0x00, 0x00, 0x00}} {
		if _, err := ParseHeader(buf); !errors.Is(err, ErrHeaderTruncated) {
			t.Errorf("ParseHeader(% X): got %v, want ErrHeaderTruncated", buf, err)
		}
	}
}
