package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltinValidates(t *testing.T) {
	reg := Builtin()
	if reg == nil {
		t.Fatal("Builtin returned nil")
	}
	// Shared instance
	if reg != Builtin() {
		t.Error("Builtin should return the same instance")
	}
}

func TestResolveTriple(t *testing.T) {
	reg := Builtin()

	method, err := reg.ResolveTriple(false, TechnologyBLE, 0, 1)
	if err != nil {
		t.Fatalf("ResolveTriple(ble system hello) failed: %v", err)
	}
	if method.Name != "hello" {
		t.Errorf("got method %q, want %q", method.Name, "hello")
	}

	// The same triple addresses different definitions per side
	event, err := reg.ResolveTriple(true, TechnologyBLE, 0, 0)
	if err != nil {
		t.Fatalf("ResolveTriple(ble system boot event) failed: %v", err)
	}
	if event.Name != "boot" {
		t.Errorf("got event %q, want %q", event.Name, "boot")
	}
}

func TestResolveTripleUnknown(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		name    string
		isEvent bool
		triple  [3]uint8
	}{
		{name: "unknown technology", triple: [3]uint8{9, 0, 1}},
		{name: "unknown group", triple: [3]uint8{TechnologyBLE, 0x7F, 1}},
		{name: "unknown method", triple: [3]uint8{TechnologyBLE, 0, 0x7F}},
		{name: "command triple not an event", isEvent: true, triple: [3]uint8{TechnologyBLE, 0, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.ResolveTriple(tt.isEvent, tt.triple[0], tt.triple[1], tt.triple[2])
			if !errors.Is(err, ErrUnknownDefinition) {
				t.Fatalf("got %v, want ErrUnknownDefinition", err)
			}
		})
	}
}

func TestResolveName(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		name   string
		kind   Kind
		triple [3]uint8
	}{
		{name: "ble_cmd_system_hello", kind: KindCommand, triple: [3]uint8{0, 0, 1}},
		{name: "ble_rsp_system_hello", kind: KindResponse, triple: [3]uint8{0, 0, 1}},
		{name: "ble_evt_system_boot", kind: KindEvent, triple: [3]uint8{0, 0, 0}},
		// Method names containing underscores exercise the greedy group
		// prefix match
		{name: "ble_cmd_system_address_get", kind: KindCommand, triple: [3]uint8{0, 0, 2}},
		{name: "ble_cmd_gap_connect_direct", kind: KindCommand, triple: [3]uint8{0, 6, 3}},
		{name: "ble_evt_gap_scan_response", kind: KindEvent, triple: [3]uint8{0, 6, 0}},
		{name: "ble_cmd_hardware_io_port_write", kind: KindCommand, triple: [3]uint8{0, 7, 7}},
		{name: "wifi_evt_endpoint_data", kind: KindEvent, triple: [3]uint8{1, 2, 1}},
		{name: "dumo_cmd_system_hello", kind: KindCommand, triple: [3]uint8{4, 1, 1}},
		{name: "dumo_evt_system_boot", kind: KindEvent, triple: [3]uint8{4, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := reg.ResolveName(tt.name)
			if err != nil {
				t.Fatalf("ResolveName failed: %v", err)
			}
			if ref.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", ref.Kind, tt.kind)
			}
			got := [3]uint8{ref.Technology, ref.GroupID, ref.MethodID}
			if got != tt.triple {
				t.Errorf("triple = %v, want %v", got, tt.triple)
			}
		})
	}
}

func TestResolveNameUnknown(t *testing.T) {
	reg := Builtin()

	for _, name := range []string{
		"",
		"ble",
		"ble_cmd",
		"ble_cmd_system",
		"ble_xxx_system_hello",
		"ble_cmd_system_goodbye",
		"ble_cmd_nosuchgroup_hello",
		"zigbee_cmd_system_hello",
		"ble_evt_system_hello", // command name on the event side
	} {
		if _, err := reg.ResolveName(name); !errors.Is(err, ErrUnknownName) {
			t.Errorf("ResolveName(%q): got %v, want ErrUnknownName", name, err)
		}
	}
}

func TestNameBijection(t *testing.T) {
	reg := Builtin()

	count := 0
	reg.Walk(func(ref Ref) {
		count++
		name, err := reg.NameOf(ref.Kind, ref.Technology, ref.GroupID, ref.MethodID)
		if err != nil {
			t.Fatalf("NameOf(%v %d.%d.%d) failed: %v", ref.Kind, ref.Technology, ref.GroupID, ref.MethodID, err)
		}
		back, err := reg.ResolveName(name)
		if err != nil {
			t.Fatalf("ResolveName(%q) failed: %v", name, err)
		}
		if back.Kind != ref.Kind || back.Technology != ref.Technology ||
			back.GroupID != ref.GroupID || back.MethodID != ref.MethodID {
			t.Errorf("%q resolved to %v %d.%d.%d, want %v %d.%d.%d", name,
				back.Kind, back.Technology, back.GroupID, back.MethodID,
				ref.Kind, ref.Technology, ref.GroupID, ref.MethodID)
		}
	})
	if count == 0 {
		t.Fatal("Walk visited nothing")
	}
}

func TestNamesSortedAndResolvable(t *testing.T) {
	reg := Builtin()
	names := reg.Names()
	if len(names) == 0 {
		t.Fatal("Names returned nothing")
	}
	for i, name := range names {
		if i > 0 && names[i-1] > name {
			t.Fatalf("names not sorted at %d: %q > %q", i, names[i-1], name)
		}
		if _, err := reg.ResolveName(name); err != nil {
			t.Errorf("listed name %q does not resolve: %v", name, err)
		}
	}
}

func TestNewRegistryValidation(t *testing.T) {
	method := func(name string) *Method {
		return &Method{Name: name, CommandArgs: []Arg{}, ResponseArgs: []Arg{}}
	}

	tests := []struct {
		name     string
		commands map[uint8]*Technology
		wantErr  string
	}{
		{
			name: "technology name with underscore",
			commands: map[uint8]*Technology{
				0: {Name: "ble_x", Groups: map[uint8]*Group{}},
			},
			wantErr: "invalid name",
		},
		{
			name: "uppercase name",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "System", Methods: map[uint8]*Method{}},
				}},
			},
			wantErr: "invalid name",
		},
		{
			name: "ambiguous group prefix",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "gap", Methods: map[uint8]*Method{0: method("stop")}},
					1: {Name: "gap_ext", Methods: map[uint8]*Method{0: method("stop")}},
				}},
			},
			wantErr: "prefix",
		},
		{
			name: "duplicate group name",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "system", Methods: map[uint8]*Method{}},
					1: {Name: "system", Methods: map[uint8]*Method{}},
				}},
			},
			wantErr: "duplicate group name",
		},
		{
			name: "duplicate method name",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "system", Methods: map[uint8]*Method{
						0: method("hello"),
						1: method("hello"),
					}},
				}},
			},
			wantErr: "duplicate method name",
		},
		{
			name: "unknown argument type",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "system", Methods: map[uint8]*Method{
						0: {Name: "bad", CommandArgs: []Arg{{Name: "x", Type: 99}}, ResponseArgs: []Arg{}},
					}},
				}},
			},
			wantErr: "unknown type",
		},
		{
			name: "event args on command side",
			commands: map[uint8]*Technology{
				0: {Name: "ble", Groups: map[uint8]*Group{
					0: {Name: "system", Methods: map[uint8]*Method{
						0: {Name: "bad", EventArgs: []Arg{}},
					}},
				}},
			},
			wantErr: "event args",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.commands, map[uint8]*Technology{})
			if !errors.Is(err, ErrInvalidRegistry) {
				t.Fatalf("got %v, want ErrInvalidRegistry", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
