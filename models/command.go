package models

import "strings"

// CustomCommand is an admin-defined text command with an optional reply
// keyboard, keyed by name in the commands collection.
type CustomCommand struct {
	Command  string   `json:"command"`
	Response string   `json:"response"`
	Buttons  []string `json:"buttons"`
}

// ValidateCommandName rejects names that would be ambiguous in chat: empty,
// containing spaces, or containing the slash used by built-in commands.
func ValidateCommandName(name string) error {
	if name == "" {
		return NewValidationError("command name is empty")
	}
	if strings.ContainsAny(name, " /") {
		return NewValidationError("command name %q must not contain spaces or '/'", name)
	}
	return nil
}
