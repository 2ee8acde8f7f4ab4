package schema

import (
	"github.com/perilib/bgapi-go/pkg/wire"
)

// Kind distinguishes the three packet flavors sharing the triple space.
// Commands and responses live in the commands table; events in the events
// table.
type Kind uint8

const (
	// KindCommand is a host-to-module request.
	KindCommand Kind = 0

	// KindResponse is the module's reply to a command. Responses reuse the
	// command's triple; only the link direction tells them apart.
	KindResponse Kind = 1

	// KindEvent is an unsolicited module-to-host notification.
	KindEvent Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindResponse:
		return "response"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Token returns the kind token used in packet names.
func (k Kind) Token() string {
	switch k {
	case KindCommand:
		return "cmd"
	case KindResponse:
		return "rsp"
	case KindEvent:
		return "evt"
	default:
		return "???"
	}
}

// IsEvent returns true for KindEvent.
func (k Kind) IsEvent() bool {
	return k == KindEvent
}

// ParseToken maps a name token back to its Kind.
func ParseToken(token string) (Kind, bool) {
	switch token {
	case "cmd":
		return KindCommand, true
	case "rsp":
		return KindResponse, true
	case "evt":
		return KindEvent, true
	default:
		return 0, false
	}
}

// Arg describes a single argument: its keyword name and wire type. Argument
// order within a method is significant; it defines both the wire layout and
// the keyword binding order.
type Arg struct {
	Name string
	Type wire.ArgType
}

// Method describes one command/response pair or one event. Entries in the
// commands table populate CommandArgs and ResponseArgs; entries in the
// events table populate EventArgs.
type Method struct {
	Name         string
	CommandArgs  []Arg
	ResponseArgs []Arg
	EventArgs    []Arg
}

// ArgsFor returns the argument list for the given packet kind.
func (m *Method) ArgsFor(kind Kind) []Arg {
	switch kind {
	case KindCommand:
		return m.CommandArgs
	case KindResponse:
		return m.ResponseArgs
	default:
		return m.EventArgs
	}
}

// Group is a named set of methods under one technology.
type Group struct {
	Name    string
	Methods map[uint8]*Method
}

// Technology is a top-level protocol family (BLE-only, Wi-Fi, dual-mode).
type Technology struct {
	Name   string
	Groups map[uint8]*Group
}

// Ref is a fully resolved packet identity: kind, numeric triple, and the
// method definition it addresses.
type Ref struct {
	Kind       Kind
	Technology uint8
	GroupID    uint8
	MethodID   uint8
	Method     *Method
}

// Args returns the argument list selected by the ref's kind.
func (r Ref) Args() []Arg {
	return r.Method.ArgsFor(r.Kind)
}
