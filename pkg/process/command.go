// Package process runs external commands on behalf of alert.
package process

import (
	"errors"
	"strings"

	"github.com/alessio/shellescape"
)

// ErrNoCommandSpecified is returned when a command is built from an empty argument list.
var ErrNoCommandSpecified = errors.New("no command specified")

// Command is a program name and its arguments
type Command struct {
	Program string
	Args    []string
}

// NewCommand builds a Command from an argv-style slice
func NewCommand(argv []string) (Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Command{}, ErrNoCommandSpecified
	}

	args := make([]string, len(argv)-1)
	copy(args, argv[1:])

	return Command{
		Program: argv[0],
		Args:    args,
	}, nil
}

// String renders the command so it can be shown to the user and pasted back into a shell.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Program)
	for _, arg := range c.Args {
		b.WriteByte(' ')
		b.WriteString(shellescape.Quote(arg))
	}
	return b.String()
}
