package engine

import (
	"fmt"
	"strings"
)

// Command is a single instruction a rover understands
type Command int

const (
	MoveForward Command = iota
	TurnLeft
	TurnRight
)

// String returns the command letter (M, L or R)
func (c Command) String() string {
	switch c {
	case MoveForward:
		return "M"
	case TurnLeft:
		return "L"
	case TurnRight:
		return "R"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand converts one command letter, case-insensitive
func ParseCommand(r rune) (Command, error) {
	switch r {
	case 'M', 'm':
		return MoveForward, nil
	case 'L', 'l':
		return TurnLeft, nil
	case 'R', 'r':
		return TurnRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCommand, r)
}

// ParseCommands converts a command string such as "LMLMLMLMM".
// An empty string yields no commands.
func ParseCommands(s string) ([]Command, error) {
	commands := make([]Command, 0, len(s))
	for i, r := range s {
		cmd, err := ParseCommand(r)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// MarshalText encodes the command as its letter
func (c Command) MarshalText() ([]byte, error) {
	switch c {
	case MoveForward, TurnLeft, TurnRight:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidCommand, int(c))
}

// FormatCommands is the inverse of ParseCommands
func FormatCommands(commands []Command) string {
	var b strings.Builder
	for _, c := range commands {
		b.WriteString(c.String())
	}
	return b.String()
}
