package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Registry errors.
var (
	// ErrUnknownDefinition indicates a numeric triple with no entry in the
	// selected table, typically a frame from an unsupported or newer
	// protocol revision.
	ErrUnknownDefinition = errors.New("unknown packet definition")

	// ErrUnknownName indicates a packet name that does not resolve. This is
	// a programmer error and should surface in testing, not in the field.
	ErrUnknownName = errors.New("unknown packet name")

	// ErrInvalidRegistry indicates schema tables that failed validation.
	ErrInvalidRegistry = errors.New("invalid registry")
)

// Registry holds the command and event tables. It is immutable after
// NewRegistry returns and may be shared freely across goroutines.
type Registry struct {
	commands map[uint8]*Technology
	events   map[uint8]*Technology
}

// NewRegistry validates the given tables and wraps them in a Registry.
// The caller must not mutate the tables afterwards.
//
// Validation rejects, per table:
//   - empty or malformed names (lowercase [a-z0-9_], technologies without
//     underscores so the name grammar can split them off)
//   - unknown argument type tags (fatal here rather than at decode time)
//   - duplicate technology/group/method names at the same level
//   - a group name that is a prefix of a sibling group name followed by an
//     underscore, which would make greedy name resolution ambiguous
func NewRegistry(commands, events map[uint8]*Technology) (*Registry, error) {
	if err := validateTable("commands", commands, false); err != nil {
		return nil, err
	}
	if err := validateTable("events", events, true); err != nil {
		return nil, err
	}
	return &Registry{commands: commands, events: events}, nil
}

func validateTable(table string, techs map[uint8]*Technology, isEvent bool) error {
	techNames := map[string]bool{}
	for techID, tech := range techs {
		if tech == nil {
			return fmt.Errorf("%w: %s technology %d is nil", ErrInvalidRegistry, table, techID)
		}
		if !validName(tech.Name) || strings.Contains(tech.Name, "_") {
			return fmt.Errorf("%w: %s technology %d has invalid name %q", ErrInvalidRegistry, table, techID, tech.Name)
		}
		if techNames[tech.Name] {
			return fmt.Errorf("%w: duplicate %s technology name %q", ErrInvalidRegistry, table, tech.Name)
		}
		techNames[tech.Name] = true

		if err := validateGroups(table, tech, isEvent); err != nil {
			return err
		}
	}
	return nil
}

func validateGroups(table string, tech *Technology, isEvent bool) error {
	groupNames := map[string]bool{}
	for groupID, group := range tech.Groups {
		if group == nil {
			return fmt.Errorf("%w: %s %s group %d is nil", ErrInvalidRegistry, table, tech.Name, groupID)
		}
		if !validName(group.Name) {
			return fmt.Errorf("%w: %s %s group %d has invalid name %q", ErrInvalidRegistry, table, tech.Name, groupID, group.Name)
		}
		if groupNames[group.Name] {
			return fmt.Errorf("%w: duplicate group name %q in %s %s", ErrInvalidRegistry, group.Name, table, tech.Name)
		}
		groupNames[group.Name] = true

		methodNames := map[string]bool{}
		for methodID, method := range group.Methods {
			if method == nil {
				return fmt.Errorf("%w: %s %s_%s method %d is nil", ErrInvalidRegistry, table, tech.Name, group.Name, methodID)
			}
			if !validName(method.Name) {
				return fmt.Errorf("%w: %s %s_%s method %d has invalid name %q", ErrInvalidRegistry, table, tech.Name, group.Name, methodID, method.Name)
			}
			if methodNames[method.Name] {
				return fmt.Errorf("%w: duplicate method name %q in %s %s_%s", ErrInvalidRegistry, method.Name, table, tech.Name, group.Name)
			}
			methodNames[method.Name] = true

			if err := validateArgs(table, tech.Name, group.Name, method, isEvent); err != nil {
				return err
			}
		}
	}

	// Reject prefix-ambiguous sibling group names: if "gap" and "gap_ext"
	// coexisted, "gap_ext_stop" could resolve through either.
	for a := range groupNames {
		for b := range groupNames {
			if a != b && strings.HasPrefix(b, a+"_") {
				return fmt.Errorf("%w: group name %q is a prefix of %q in %s %s", ErrInvalidRegistry, a, b, table, tech.Name)
			}
		}
	}
	return nil
}

func validateArgs(table, techName, groupName string, method *Method, isEvent bool) error {
	lists := [][]Arg{method.CommandArgs, method.ResponseArgs}
	if isEvent {
		lists = [][]Arg{method.EventArgs}
		if method.CommandArgs != nil || method.ResponseArgs != nil {
			return fmt.Errorf("%w: event %s_%s_%s carries command/response args", ErrInvalidRegistry, techName, groupName, method.Name)
		}
	} else if method.EventArgs != nil {
		return fmt.Errorf("%w: command %s_%s_%s carries event args", ErrInvalidRegistry, techName, groupName, method.Name)
	}

	for _, args := range lists {
		seen := map[string]bool{}
		for _, arg := range args {
			if !validName(arg.Name) {
				return fmt.Errorf("%w: %s %s_%s_%s has invalid argument name %q", ErrInvalidRegistry, table, techName, groupName, method.Name, arg.Name)
			}
			if seen[arg.Name] {
				return fmt.Errorf("%w: %s %s_%s_%s has duplicate argument %q", ErrInvalidRegistry, table, techName, groupName, method.Name, arg.Name)
			}
			seen[arg.Name] = true
			if !arg.Type.IsValid() {
				return fmt.Errorf("%w: %s %s_%s_%s argument %q has unknown type %d", ErrInvalidRegistry, table, techName, groupName, method.Name, arg.Name, uint8(arg.Type))
			}
		}
	}
	return nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return name[0] != '_' && name[len(name)-1] != '_'
}

// table selects the command or event side.
func (r *Registry) table(isEvent bool) map[uint8]*Technology {
	if isEvent {
		return r.events
	}
	return r.commands
}

// ResolveTriple looks up the method definition addressed by a numeric
// triple in the side selected by isEvent. Every missing level reports
// ErrUnknownDefinition with the full triple.
func (r *Registry) ResolveTriple(isEvent bool, techID, groupID, methodID uint8) (*Method, error) {
	tech, ok := r.table(isEvent)[techID]
	if ok {
		if group, ok := tech.Groups[groupID]; ok {
			if method, ok := group.Methods[methodID]; ok {
				return method, nil
			}
		}
	}
	side := "command"
	if isEvent {
		side = "event"
	}
	return nil, fmt.Errorf("%w: no %s for technology %d, group %d, method %d",
		ErrUnknownDefinition, side, techID, groupID, methodID)
}

// ResolveName resolves a packet name such as "ble_cmd_system_hello"
// to its kind, numeric triple and method definition.
func (r *Registry) ResolveName(name string) (Ref, error) {
	techName, rest, ok := strings.Cut(name, "_")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	token, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	kind, ok := ParseToken(token)
	if !ok {
		return Ref{}, fmt.Errorf("%w: %q has unknown kind token %q", ErrUnknownName, name, token)
	}

	for techID, tech := range r.table(kind.IsEvent()) {
		if tech.Name != techName {
			continue
		}
		// Group and method names may contain underscores, so match each
		// known group name greedily as a prefix of the remainder. Prefix
		// ambiguity between sibling groups is rejected at load time.
		for groupID, group := range tech.Groups {
			methodName, found := strings.CutPrefix(rest, group.Name+"_")
			if !found {
				continue
			}
			for methodID, method := range group.Methods {
				if method.Name == methodName {
					return Ref{
						Kind:       kind,
						Technology: techID,
						GroupID:    groupID,
						MethodID:   methodID,
						Method:     method,
					}, nil
				}
			}
		}
	}
	return Ref{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// NameOf derives the packet name for a kind and numeric triple, the inverse
// of ResolveName.
func (r *Registry) NameOf(kind Kind, techID, groupID, methodID uint8) (string, error) {
	tech, ok := r.table(kind.IsEvent())[techID]
	if !ok {
		return "", fmt.Errorf("%w: no %s for technology %d, group %d, method %d", ErrUnknownDefinition, kind, techID, groupID, methodID)
	}
	group, ok := tech.Groups[groupID]
	if !ok {
		return "", fmt.Errorf("%w: no %s for technology %d, group %d, method %d", ErrUnknownDefinition, kind, techID, groupID, methodID)
	}
	method, ok := group.Methods[methodID]
	if !ok {
		return "", fmt.Errorf("%w: no %s for technology %d, group %d, method %d", ErrUnknownDefinition, kind, techID, groupID, methodID)
	}
	return tech.Name + "_" + kind.Token() + "_" + group.Name + "_" + method.Name, nil
}

// Walk visits every definition in the registry: commands and responses from
// the command table, events from the event table. Visit order is undefined.
func (r *Registry) Walk(visit func(ref Ref)) {
	for _, kind := range []Kind{KindCommand, KindResponse, KindEvent} {
		for techID, tech := range r.table(kind.IsEvent()) {
			for groupID, group := range tech.Groups {
				for methodID, method := range group.Methods {
					visit(Ref{
						Kind:       kind,
						Technology: techID,
						GroupID:    groupID,
						MethodID:   methodID,
						Method:     method,
					})
				}
			}
		}
	}
}

// Names returns every resolvable packet name, sorted. Intended for tooling
// and diagnostics, not hot paths.
func (r *Registry) Names() []string {
	var names []string
	r.Walk(func(ref Ref) {
		name, err := r.NameOf(ref.Kind, ref.Technology, ref.GroupID, ref.MethodID)
		if err == nil {
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

// Technologies returns the ID-to-name mapping of every technology on the
// selected side.
func (r *Registry) Technologies(isEvent bool) map[uint8]string {
	out := make(map[uint8]string, len(r.table(isEvent)))
	for id, tech := range r.table(isEvent) {
		out[id] = tech.Name
	}
	return out
}
