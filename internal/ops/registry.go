/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup is the section a command is listed under in grouped help
type CommandGroup string

const (
	GroupCheck   CommandGroup = "check"   // mapping, sync, duplicates
	GroupTheme   CommandGroup = "theme"   // search, generate
	GroupSupport CommandGroup = "support" // version
)

// Groups lists every group in help order.
var Groups = []CommandGroup{GroupCheck, GroupTheme, GroupSupport}

// Title is the help heading of the group.
func (g CommandGroup) Title() string {
	switch g {
	case GroupCheck:
		return "Icon Checks"
	case GroupTheme:
		return "Theme Commands"
	case GroupSupport:
		return "Support Commands"
	default:
		return string(g)
	}
}

// CommandRegistration is a command together with its group
type CommandRegistration struct {
	Name        string
	Group       CommandGroup
	Command     *cobra.Command
	Description string
}

// Registry indexes commands by name and by group
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

var globalRegistry = NewRegistry()

// GetRegistry returns the process-wide registry used by the iconeat binary
func GetRegistry() *Registry {
	return globalRegistry
}

// Register adds a command. Names must be unique.
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}
	if description == "" && cmd != nil {
		description = cmd.Short
	}

	registration := &CommandRegistration{
		Name:        name,
		Group:       group,
		Command:     cmd,
		Description: description,
	}
	r.commands[name] = registration
	r.groupIndex[group] = append(r.groupIndex[group], registration)
	return nil
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns the commands of a group in registration order
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*CommandRegistration(nil), r.groupIndex[group]...)
}

// GetAllCommands returns a copy of the name index
func (r *Registry) GetAllCommands() map[string]*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*CommandRegistration, len(r.commands))
	for k, v := range r.commands {
		result[k] = v
	}
	return result
}

// ListGroups returns the number of commands per group
func (r *Registry) ListGroups() map[CommandGroup]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[CommandGroup]int)
	for group, commands := range r.groupIndex {
		result[group] = len(commands)
	}
	return result
}
