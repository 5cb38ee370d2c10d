package command

import (
	"fmt"
	"slices"
	"strings"
)

// Registry indexes commands by name and alias
type Registry struct {
	commands []*Command
	index    map[string]*Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Command)}
}

// Register adds commands. Names and aliases are case-insensitive and must be unique.
func (r *Registry) Register(cmds ...*Command) error {
	for _, cmd := range cmds {
		if cmd.Name == "" || cmd.Run == nil {
			return fmt.Errorf("command %q is missing a name or body", cmd.Name)
		}
		keys := append([]string{cmd.Name}, cmd.Aliases...)
		for _, key := range keys {
			if existing, ok := r.index[strings.ToLower(key)]; ok {
				return fmt.Errorf("command key %q already registered by %s", key, existing.Name)
			}
		}
		for _, key := range keys {
			r.index[strings.ToLower(key)] = cmd
		}
		r.commands = append(r.commands, cmd)
	}
	return nil
}

// MustRegister is Register that panics on conflicts, for static command tables
func (r *Registry) MustRegister(cmds ...*Command) {
	if err := r.Register(cmds...); err != nil {
		panic(err)
	}
}

// Lookup finds a command by name or alias
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.index[strings.ToLower(name)]
	return cmd, ok
}

// Visible returns all non-hidden commands sorted by name
func (r *Registry) Visible() []*Command {
	visible := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		if !cmd.Requirement.Hidden {
			visible = append(visible, cmd)
		}
	}
	slices.SortFunc(visible, func(a, b *Command) int {
		return strings.Compare(a.Name, b.Name)
	})
	return visible
}
