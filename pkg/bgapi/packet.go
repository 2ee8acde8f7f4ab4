package bgapi

import (
	"fmt"
	"strings"

	"github.com/perilib/bgapi-go/pkg/schema"
)

// Fields maps argument names to values. Wire order is defined by the
// method's schema, not by the map.
type Fields map[string]any

// Packet is one decoded or encoded BGAPI frame. A Packet is created per
// decode/encode call and owned by the caller; the codec keeps no reference
// to it.
//
// The name and the (kind, technology, group, method) identity are two views
// of the same thing: each is always derivable from the other through the
// registry.
type Packet struct {
	Kind       schema.Kind
	Name       string
	Technology uint8
	GroupID    uint8
	MethodID   uint8

	// Raw is the full wire form, header included.
	Raw []byte

	// Fields holds the decoded argument values keyed by name.
	Fields Fields

	args []schema.Arg
}

// Args returns the packet's argument schema in wire order.
func (p *Packet) Args() []schema.Arg {
	return p.args
}

// Field returns the named argument value.
func (p *Packet) Field(name string) (any, bool) {
	v, ok := p.Fields[name]
	return v, ok
}

// Payload returns the wire bytes following the header.
func (p *Packet) Payload() []byte {
	return p.Raw[headerSize:]
}

// String renders the packet for diagnostics: name, argument values in
// schema order, then the raw bytes.
func (p *Packet) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteByte('(')
	for i, arg := range p.args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", arg.Name, p.Fields[arg.Name])
	}
	b.WriteByte(')')
	fmt.Fprintf(&b, " [% X]", p.Raw)
	return b.String()
}
