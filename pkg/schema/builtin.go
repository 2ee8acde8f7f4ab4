package schema

import (
	"fmt"
	"sync"

	"github.com/perilib/bgapi-go/pkg/wire"
)

// Builtin technology IDs. The same IDs address both the command and event
// tables.
const (
	TechnologyBLE  uint8 = 0 // BLE112/BLE113/BLE121LR (BLE-only modules)
	TechnologyWifi uint8 = 1 // WF121/WGM110 (Wi-Fi modules)
	TechnologyDumo uint8 = 4 // BT121 (dual-mode BR/EDR + LE modules)
)

// Builtin returns the built-in BGAPI registry. The registry is constructed
// and validated once; all callers share the same immutable instance.
func Builtin() *Registry {
	return builtin()
}

var builtin = sync.OnceValue(func() *Registry {
	reg, err := NewRegistry(builtinCommands(), builtinEvents())
	if err != nil {
		// The builtin tables are static data; failing validation is a bug
		// in this package, not a runtime condition.
		panic(fmt.Sprintf("schema: builtin registry invalid: %v", err))
	}
	return reg
})

// Shorthands keep the tables readable; they mirror the type names used in
// the vendor API descriptions.
const (
	u8     = wire.TypeUint8
	s8     = wire.TypeInt8
	u16    = wire.TypeUint16
	u32    = wire.TypeUint32
	bdaddr = wire.TypeMACAddress
	u8a    = wire.TypeUint8Array
)

func builtinCommands() map[uint8]*Technology {
	return map[uint8]*Technology{
		TechnologyBLE: {
			Name: "ble",
			Groups: map[uint8]*Group{
				0: {Name: "system", Methods: map[uint8]*Method{
					0: {
						Name:         "reset",
						CommandArgs:  []Arg{{"boot_in_dfu", u8}},
						ResponseArgs: []Arg{},
					},
					1: {
						Name:         "hello",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{},
					},
					2: {
						Name:         "address_get",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{{"address", bdaddr}},
					},
					8: {
						Name:        "get_info",
						CommandArgs: []Arg{},
						ResponseArgs: []Arg{
							{"major", u16}, {"minor", u16}, {"patch", u16}, {"build", u16},
							{"ll_version", u16}, {"protocol_version", u8}, {"hw", u8},
						},
					},
				}},
				2: {Name: "attributes", Methods: map[uint8]*Method{
					0: {
						Name:         "write",
						CommandArgs:  []Arg{{"handle", u16}, {"offset", u8}, {"value", u8a}},
						ResponseArgs: []Arg{{"result", u16}},
					},
					1: {
						Name:        "read",
						CommandArgs: []Arg{{"handle", u16}, {"offset", u16}},
						ResponseArgs: []Arg{
							{"handle", u16}, {"offset", u16}, {"result", u16}, {"value", u8a},
						},
					},
					2: {
						Name:         "read_type",
						CommandArgs:  []Arg{{"handle", u16}},
						ResponseArgs: []Arg{{"handle", u16}, {"result", u16}, {"value", u8a}},
					},
				}},
				3: {Name: "connection", Methods: map[uint8]*Method{
					0: {
						Name:         "disconnect",
						CommandArgs:  []Arg{{"connection", u8}},
						ResponseArgs: []Arg{{"connection", u8}, {"result", u16}},
					},
					1: {
						Name:         "get_rssi",
						CommandArgs:  []Arg{{"connection", u8}},
						ResponseArgs: []Arg{{"connection", u8}, {"rssi", s8}},
					},
					7: {
						Name:         "get_status",
						CommandArgs:  []Arg{{"connection", u8}},
						ResponseArgs: []Arg{{"connection", u8}},
					},
				}},
				4: {Name: "attclient", Methods: map[uint8]*Method{
					3: {
						Name:         "find_information",
						CommandArgs:  []Arg{{"connection", u8}, {"start", u16}, {"end", u16}},
						ResponseArgs: []Arg{{"connection", u8}, {"result", u16}},
					},
					4: {
						Name:         "read_by_handle",
						CommandArgs:  []Arg{{"connection", u8}, {"chrhandle", u16}},
						ResponseArgs: []Arg{{"connection", u8}, {"result", u16}},
					},
					5: {
						Name:         "attribute_write",
						CommandArgs:  []Arg{{"connection", u8}, {"atthandle", u16}, {"data", u8a}},
						ResponseArgs: []Arg{{"connection", u8}, {"result", u16}},
					},
				}},
				5: {Name: "sm", Methods: map[uint8]*Method{
					0: {
						Name:         "encrypt_start",
						CommandArgs:  []Arg{{"handle", u8}, {"bonding", u8}},
						ResponseArgs: []Arg{{"handle", u8}, {"result", u16}},
					},
					4: {
						Name:         "delete_bonding",
						CommandArgs:  []Arg{{"handle", u8}},
						ResponseArgs: []Arg{{"result", u16}},
					},
					5: {
						Name:         "get_bonds",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{{"bonds", u8}},
					},
				}},
				6: {Name: "gap", Methods: map[uint8]*Method{
					1: {
						Name:         "set_mode",
						CommandArgs:  []Arg{{"discover", u8}, {"connect", u8}},
						ResponseArgs: []Arg{{"result", u16}},
					},
					2: {
						Name:         "discover",
						CommandArgs:  []Arg{{"mode", u8}},
						ResponseArgs: []Arg{{"result", u16}},
					},
					3: {
						Name: "connect_direct",
						CommandArgs: []Arg{
							{"address", bdaddr}, {"addr_type", u8},
							{"conn_interval_min", u16}, {"conn_interval_max", u16},
							{"timeout", u16}, {"latency", u16},
						},
						ResponseArgs: []Arg{{"result", u16}, {"connection_handle", u8}},
					},
					4: {
						Name:         "end_procedure",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{{"result", u16}},
					},
				}},
				7: {Name: "hardware", Methods: map[uint8]*Method{
					6: {
						Name:         "io_port_read",
						CommandArgs:  []Arg{{"port", u8}, {"mask", u8}},
						ResponseArgs: []Arg{{"result", u16}, {"port", u8}, {"data", u8}},
					},
					7: {
						Name:         "io_port_write",
						CommandArgs:  []Arg{{"port", u8}, {"mask", u8}, {"data", u8}},
						ResponseArgs: []Arg{{"result", u16}},
					},
					9: {
						Name:         "adc_read",
						CommandArgs:  []Arg{{"input", u8}, {"decimation", u8}, {"reference_selection", u8}},
						ResponseArgs: []Arg{{"result", u16}},
					},
				}},
			},
		},

		TechnologyWifi: {
			Name: "wifi",
			Groups: map[uint8]*Group{
				0: {Name: "system", Methods: map[uint8]*Method{
					0: {
						Name:         "sync",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{},
					},
					1: {
						Name:         "reset",
						CommandArgs:  []Arg{{"boot_in_dfu", u8}},
						ResponseArgs: []Arg{},
					},
					2: {
						Name:         "hello",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{},
					},
				}},
				2: {Name: "endpoint", Methods: map[uint8]*Method{
					0: {
						Name:         "send",
						CommandArgs:  []Arg{{"endpoint", u8}, {"data", u8a}},
						ResponseArgs: []Arg{{"result", u16}, {"endpoint", u8}},
					},
					2: {
						Name:         "close",
						CommandArgs:  []Arg{{"endpoint", u8}},
						ResponseArgs: []Arg{{"result", u16}, {"endpoint", u8}},
					},
				}},
			},
		},

		TechnologyDumo: {
			Name: "dumo",
			Groups: map[uint8]*Group{
				1: {Name: "system", Methods: map[uint8]*Method{
					1: {
						Name:         "hello",
						CommandArgs:  []Arg{},
						ResponseArgs: []Arg{},
					},
					2: {
						Name:         "reset",
						CommandArgs:  []Arg{{"dfu", u8}},
						ResponseArgs: []Arg{},
					},
				}},
			},
		},
	}
}

func builtinEvents() map[uint8]*Technology {
	return map[uint8]*Technology{
		TechnologyBLE: {
			Name: "ble",
			Groups: map[uint8]*Group{
				0: {Name: "system", Methods: map[uint8]*Method{
					0: {
						Name: "boot",
						EventArgs: []Arg{
							{"major", u16}, {"minor", u16}, {"patch", u16}, {"build", u16},
							{"ll_version", u16}, {"protocol_version", u8}, {"hw", u8},
						},
					},
					6: {
						Name:      "no_license_key",
						EventArgs: []Arg{},
					},
				}},
				2: {Name: "attributes", Methods: map[uint8]*Method{
					0: {
						Name: "value",
						EventArgs: []Arg{
							{"connection", u8}, {"reason", u8},
							{"handle", u16}, {"offset", u16}, {"value", u8a},
						},
					},
					2: {
						Name:      "status",
						EventArgs: []Arg{{"handle", u16}, {"flags", u8}},
					},
				}},
				3: {Name: "connection", Methods: map[uint8]*Method{
					0: {
						Name: "status",
						EventArgs: []Arg{
							{"connection", u8}, {"flags", u8},
							{"address", bdaddr}, {"address_type", u8},
							{"conn_interval", u16}, {"timeout", u16},
							{"latency", u16}, {"bonding", u8},
						},
					},
					4: {
						Name:      "disconnected",
						EventArgs: []Arg{{"connection", u8}, {"reason", u16}},
					},
				}},
				4: {Name: "attclient", Methods: map[uint8]*Method{
					1: {
						Name:      "procedure_completed",
						EventArgs: []Arg{{"connection", u8}, {"result", u16}, {"chrhandle", u16}},
					},
					5: {
						Name: "attribute_value",
						EventArgs: []Arg{
							{"connection", u8}, {"atthandle", u16}, {"type", u8}, {"value", u8a},
						},
					},
				}},
				5: {Name: "sm", Methods: map[uint8]*Method{
					4: {
						Name:      "bond_status",
						EventArgs: []Arg{{"bond", u8}, {"keysize", u8}, {"mitm", u8}, {"keys", u8}},
					},
				}},
				6: {Name: "gap", Methods: map[uint8]*Method{
					0: {
						Name: "scan_response",
						EventArgs: []Arg{
							{"rssi", s8}, {"packet_type", u8},
							{"sender", bdaddr}, {"address_type", u8},
							{"bond", u8}, {"data", u8a},
						},
					},
				}},
			},
		},

		TechnologyWifi: {
			Name: "wifi",
			Groups: map[uint8]*Group{
				0: {Name: "system", Methods: map[uint8]*Method{
					0: {
						Name: "boot",
						EventArgs: []Arg{
							{"major", u16}, {"minor", u16}, {"patch", u16}, {"build", u16},
							{"bootloader_version", u16}, {"tcpip_version", u16}, {"hw", u8},
						},
					},
				}},
				2: {Name: "endpoint", Methods: map[uint8]*Method{
					1: {
						Name:      "data",
						EventArgs: []Arg{{"endpoint", u8}, {"data", u8a}},
					},
					2: {
						Name: "status",
						EventArgs: []Arg{
							{"endpoint", u8}, {"type", u32},
							{"streaming", u8}, {"destination", u8}, {"active", u8},
						},
					},
				}},
			},
		},

		// Early host stacks listed dumo events under technology 2 while dumo
		// commands used 4; modules themselves emit 4 on the wire for both.
		TechnologyDumo: {
			Name: "dumo",
			Groups: map[uint8]*Group{
				1: {Name: "system", Methods: map[uint8]*Method{
					0: {
						Name: "boot",
						EventArgs: []Arg{
							{"major", u16}, {"minor", u16}, {"patch", u16}, {"build", u16},
							{"bootloader", u32}, {"hw", u16},
						},
					},
					1: {
						Name:      "initialized",
						EventArgs: []Arg{{"address", bdaddr}},
					},
				}},
			},
		},
	}
}
