package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perilib/bgapi-go/pkg/wire"
)

// Overlay is a set of vendor method definitions loaded from a YAML API
// description. Applying an overlay to a registry produces a new, extended
// registry; the original is never mutated.
type Overlay struct {
	Technologies []RawTechnology `yaml:"technologies"`
}

// RawTechnology extends or introduces one technology.
type RawTechnology struct {
	ID       uint8      `yaml:"id"`
	Name     string     `yaml:"name"`
	Commands []RawGroup `yaml:"commands"`
	Events   []RawGroup `yaml:"events"`
}

// RawGroup extends or introduces one method group.
type RawGroup struct {
	ID      uint8       `yaml:"id"`
	Name    string      `yaml:"name"`
	Methods []RawMethod `yaml:"methods"`
}

// RawMethod defines one command/response pair or one event.
type RawMethod struct {
	ID           uint8    `yaml:"id"`
	Name         string   `yaml:"name"`
	CommandArgs  []RawArg `yaml:"command_args"`
	ResponseArgs []RawArg `yaml:"response_args"`
	EventArgs    []RawArg `yaml:"event_args"`
}

// RawArg is a single argument declaration.
type RawArg struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadOverlay parses an overlay from YAML.
func LoadOverlay(r io.Reader) (*Overlay, error) {
	var o Overlay
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("failed to parse overlay: %w", err)
	}
	return &o, nil
}

// LoadOverlayFile parses an overlay from a YAML file.
func LoadOverlayFile(path string) (*Overlay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	o, err := LoadOverlay(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// ParseArgType maps a schema type name to its wire type tag.
func ParseArgType(name string) (wire.ArgType, error) {
	switch name {
	case "uint8":
		return wire.TypeUint8, nil
	case "int8":
		return wire.TypeInt8, nil
	case "uint16":
		return wire.TypeUint16, nil
	case "uint32":
		return wire.TypeUint32, nil
	case "mac_address", "bd_addr":
		return wire.TypeMACAddress, nil
	case "uint8array":
		return wire.TypeUint8Array, nil
	default:
		return 0, fmt.Errorf("%w: %q", wire.ErrUnknownType, name)
	}
}

// WithOverlay returns a new registry containing every definition of r plus
// the overlay's. Overlay entries may introduce new technologies and groups
// or add methods to existing ones; redefining an existing method ID or
// renaming an existing technology/group is rejected. The combined tables go
// through the same validation pass as NewRegistry.
func (r *Registry) WithOverlay(o *Overlay) (*Registry, error) {
	commands := cloneTable(r.commands)
	events := cloneTable(r.events)

	for _, rawTech := range o.Technologies {
		if err := mergeGroups(commands, rawTech, rawTech.Commands, false); err != nil {
			return nil, err
		}
		if err := mergeGroups(events, rawTech, rawTech.Events, true); err != nil {
			return nil, err
		}
	}

	return NewRegistry(commands, events)
}

func mergeGroups(table map[uint8]*Technology, rawTech RawTechnology, groups []RawGroup, isEvent bool) error {
	if len(groups) == 0 {
		return nil
	}

	tech, ok := table[rawTech.ID]
	if !ok {
		tech = &Technology{Name: rawTech.Name, Groups: map[uint8]*Group{}}
		table[rawTech.ID] = tech
	} else if rawTech.Name != "" && rawTech.Name != tech.Name {
		return fmt.Errorf("%w: overlay renames technology %d from %q to %q",
			ErrInvalidRegistry, rawTech.ID, tech.Name, rawTech.Name)
	}

	for _, rawGroup := range groups {
		group, ok := tech.Groups[rawGroup.ID]
		if !ok {
			group = &Group{Name: rawGroup.Name, Methods: map[uint8]*Method{}}
			tech.Groups[rawGroup.ID] = group
		} else if rawGroup.Name != "" && rawGroup.Name != group.Name {
			return fmt.Errorf("%w: overlay renames group %d from %q to %q in technology %q",
				ErrInvalidRegistry, rawGroup.ID, group.Name, rawGroup.Name, tech.Name)
		}

		for _, rawMethod := range rawGroup.Methods {
			if _, exists := group.Methods[rawMethod.ID]; exists {
				return fmt.Errorf("%w: overlay redefines method %d in %s_%s",
					ErrInvalidRegistry, rawMethod.ID, tech.Name, group.Name)
			}
			method, err := rawMethod.build(isEvent)
			if err != nil {
				return err
			}
			group.Methods[rawMethod.ID] = method
		}
	}
	return nil
}

func (m RawMethod) build(isEvent bool) (*Method, error) {
	method := &Method{Name: m.Name}

	convert := func(raw []RawArg) ([]Arg, error) {
		args := make([]Arg, 0, len(raw))
		for _, a := range raw {
			t, err := ParseArgType(a.Type)
			if err != nil {
				return nil, fmt.Errorf("method %q argument %q: %w", m.Name, a.Name, err)
			}
			args = append(args, Arg{Name: a.Name, Type: t})
		}
		return args, nil
	}

	var err error
	if isEvent {
		if method.EventArgs, err = convert(m.EventArgs); err != nil {
			return nil, err
		}
		return method, nil
	}
	if method.CommandArgs, err = convert(m.CommandArgs); err != nil {
		return nil, err
	}
	if method.ResponseArgs, err = convert(m.ResponseArgs); err != nil {
		return nil, err
	}
	return method, nil
}

// cloneTable deep-copies a technology table so the merged registry shares
// nothing mutable with its source.
func cloneTable(src map[uint8]*Technology) map[uint8]*Technology {
	dst := make(map[uint8]*Technology, len(src))
	for techID, tech := range src {
		groups := make(map[uint8]*Group, len(tech.Groups))
		for groupID, group := range tech.Groups {
			methods := make(map[uint8]*Method, len(group.Methods))
			for methodID, method := range group.Methods {
				m := *method
				methods[methodID] = &m
			}
			groups[groupID] = &Group{Name: group.Name, Methods: methods}
		}
		dst[techID] = &Technology{Name: tech.Name, Groups: groups}
	}
	return dst
}
