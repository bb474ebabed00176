/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sort"
	"strings"
)

// CoreCommands are the top-level commands every iconeat build registers,
// with the group each belongs to.
var CoreCommands = map[string]CommandGroup{
	"mapping":    GroupCheck,
	"sync":       GroupCheck,
	"duplicates": GroupCheck,
	"search":     GroupTheme,
	"generate":   GroupTheme,
	"version":    GroupSupport,
}

// ValidationError describes a registry entry that is missing or misplaced
type ValidationError struct {
	Command string
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// Validate checks that every core command is registered in its group and
// that no command uses an unknown group. Errors are sorted by command.
func Validate(registry *Registry) []ValidationError {
	var errs []ValidationError

	for name, group := range CoreCommands {
		cmd, ok := registry.GetCommand(name)
		if !ok {
			errs = append(errs, ValidationError{Command: name, Message: "core command is not registered"})
			continue
		}
		if cmd.Group != group {
			errs = append(errs, ValidationError{
				Command: name,
				Message: fmt.Sprintf("incorrect group: expected %s, got %s", group, cmd.Group),
			})
		}
	}

	for name, cmd := range registry.GetAllCommands() {
		if !knownGroup(cmd.Group) {
			errs = append(errs, ValidationError{Command: name, Message: fmt.Sprintf("uses invalid group: %s", cmd.Group)})
		}
	}

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Command != errs[j].Command {
			return errs[i].Command < errs[j].Command
		}
		return errs[i].Message < errs[j].Message
	})
	return errs
}

func knownGroup(group CommandGroup) bool {
	for _, g := range Groups {
		if g == group {
			return true
		}
	}
	return false
}

// FormatErrors renders validation errors as a numbered list
func FormatErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return "No validation errors found"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Found %d validation errors:\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, err.Error())
	}
	return builder.String()
}
