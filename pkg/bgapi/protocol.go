package bgapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/perilib/bgapi-go/pkg/schema"
	"github.com/perilib/bgapi-go/pkg/wire"
)

const headerSize = wire.HeaderSize

// Direction tells the decoder which side of the link produced a buffer.
// Command and response frames share the message-type bit and the same wire
// triple; only the direction disambiguates them.
type Direction bool

const (
	// DirectionTx marks buffers written by the host: message type 0 decodes
	// as a command.
	DirectionTx Direction = true

	// DirectionRx marks buffers read from the module: message type 0
	// decodes as a response.
	DirectionRx Direction = false
)

// Protocol decodes and encodes packets against one registry. The zero value
// is not usable; construct with New or Default.
type Protocol struct {
	registry *schema.Registry
}

// New creates a Protocol over the given registry.
func New(reg *schema.Registry) *Protocol {
	return &Protocol{registry: reg}
}

// Default creates a Protocol over the built-in BGAPI registry.
func Default() *Protocol {
	return New(schema.Builtin())
}

// Registry returns the protocol's registry.
func (p *Protocol) Registry() *schema.Registry {
	return p.registry
}

// DecodeBuffer parses one complete frame into a named, typed packet.
//
// The buffer must hold exactly one frame, header included; callers feeding
// from a stream should gate on wire.Classify first. On any error no packet
// is returned, never a partially filled one.
func (p *Protocol) DecodeBuffer(buf []byte, dir Direction) (*Packet, error) {
	hdr, err := wire.ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	if len(buf) != headerSize+int(hdr.PayloadLength) {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, buffer carries %d",
			wire.ErrTruncatedArgument, hdr.PayloadLength, len(buf)-headerSize)
	}

	var kind schema.Kind
	switch {
	case hdr.MessageType == wire.MessageEvent:
		kind = schema.KindEvent
	case dir == DirectionTx:
		kind = schema.KindCommand
	default:
		kind = schema.KindResponse
	}

	method, err := p.registry.ResolveTriple(kind.IsEvent(), hdr.Technology, hdr.GroupID, hdr.MethodID)
	if err != nil {
		return nil, err
	}
	name, err := p.registry.NameOf(kind, hdr.Technology, hdr.GroupID, hdr.MethodID)
	if err != nil {
		return nil, err
	}

	args := method.ArgsFor(kind)
	fields := make(Fields, len(args))
	offset := headerSize
	for _, arg := range args {
		value, n, err := wire.DecodeValue(arg.Type, buf, offset)
		if err != nil {
			return nil, fmt.Errorf("%s argument %q: %w", name, arg.Name, err)
		}
		fields[arg.Name] = value
		offset += n
	}
	if offset != len(buf) {
		return nil, fmt.Errorf("%s: %d trailing payload bytes", name, len(buf)-offset)
	}

	raw := make([]byte, len(buf))
	copy(raw, buf)

	return &Packet{
		Kind:       kind,
		Name:       name,
		Technology: hdr.Technology,
		GroupID:    hdr.GroupID,
		MethodID:   hdr.MethodID,
		Raw:        raw,
		Fields:     fields,
		args:       args,
	}, nil
}

// EncodeByName builds a wire-ready packet from a full packet name and its
// keyword arguments. The field set must match the schema's argument list
// exactly; extra or missing keys fail with ErrArgumentMismatch.
func (p *Protocol) EncodeByName(name string, fields Fields) (*Packet, error) {
	ref, err := p.registry.ResolveName(name)
	if err != nil {
		return nil, err
	}

	args := ref.Args()
	if err := checkFieldSet(name, args, fields); err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(args)*2)
	for _, arg := range args {
		encoded, err := wire.EncodeValue(arg.Type, fields[arg.Name])
		if err != nil {
			return nil, fmt.Errorf("%s argument %q: %w", name, arg.Name, err)
		}
		payload = append(payload, encoded...)
	}
	if len(payload) > wire.MaxPayloadLength {
		return nil, fmt.Errorf("%s: %w: %d bytes", name, wire.ErrPayloadTooLarge, len(payload))
	}

	messageType := wire.MessageCommandResponse
	if ref.Kind.IsEvent() {
		messageType = wire.MessageEvent
	}
	header, err := wire.Header{
		MessageType:   messageType,
		Technology:    ref.Technology,
		PayloadLength: uint16(len(payload)),
		GroupID:       ref.GroupID,
		MethodID:      ref.MethodID,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	decoded := make(Fields, len(fields))
	for k, v := range fields {
		decoded[k] = v
	}

	return &Packet{
		Kind:       ref.Kind,
		Name:       name,
		Technology: ref.Technology,
		GroupID:    ref.GroupID,
		MethodID:   ref.MethodID,
		Raw:        append(header, payload...),
		Fields:     decoded,
		args:       args,
	}, nil
}

func checkFieldSet(name string, args []schema.Arg, fields Fields) error {
	var missing []string
	declared := make(map[string]bool, len(args))
	for _, arg := range args {
		declared[arg.Name] = true
		if _, ok := fields[arg.Name]; !ok {
			missing = append(missing, arg.Name)
		}
	}
	var extra []string
	for key := range fields {
		if !declared[key] {
			extra = append(extra, key)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return &ArgumentMismatchError{Name: name, Missing: missing, Extra: extra}
}

// ArgumentMismatchError reports field keys that do not line up with the
// schema's argument list. It unwraps to ErrArgumentMismatch.
type ArgumentMismatchError struct {
	Name    string
	Missing []string
	Extra   []string
}

func (e *ArgumentMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("argument mismatch for %s: %s", e.Name, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrArgumentMismatch.
func (e *ArgumentMismatchError) Unwrap() error {
	return ErrArgumentMismatch
}
