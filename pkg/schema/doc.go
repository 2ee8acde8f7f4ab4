// Package schema defines the BGAPI command and event registry.
//
// The registry is a two-sided table: commands (each carrying a paired
// response argument list) and events, both organized as
// technology -> group -> method. A method is addressed either by its
// numeric triple (technology ID, group ID, method ID) or by its full
// name, e.g. "ble_cmd_system_hello" or "wifi_evt_endpoint_data".
//
// # Name Grammar
//
// Names follow the pattern
//
//	<technology>_<kind>_<group>_<method>
//
// where kind is one of cmd, rsp or evt. Group and method names may
// themselves contain underscores, so resolution matches the registry's
// known group names greedily as a prefix of the remainder instead of
// splitting on a fixed separator count. Registry validation rejects group
// names that would make this ambiguous.
//
// A Registry is built once, validated, and never mutated; it is safe for
// concurrent use by any number of goroutines without locking.
package schema
