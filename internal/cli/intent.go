package cli

import (
	"fmt"

	offerrors "github.com/naoray/offshoot/internal/errors"
	"github.com/naoray/offshoot/internal/files"
)

// Command is the operation an invocation asks for.
type Command int

const (
	CommandHelp Command = iota
	CommandCreate
	CommandCleanup
	CommandList
	CommandShare
	CommandClone
)

func (c Command) String() string {
	switch c {
	case CommandCreate:
		return "create"
	case CommandCleanup:
		return "cleanup"
	case CommandList:
		return "list"
	case CommandShare:
		return "share"
	case CommandClone:
		return "clone"
	default:
		return "help"
	}
}

// Intent is a parsed invocation. It is built once by the command layer and
// not modified afterwards.
type Intent struct {
	Command Command
	Branch  string
	Files   []string
	Mode    files.Mode
	NoShell bool
}

// createIntent builds the intent for `offshoot <branch>`. share and clone
// are the raw flag values; set reports whether each flag was given.
func createIntent(branch, share, clone string, shareSet, cloneSet, noShell bool) (Intent, error) {
	if shareSet && cloneSet {
		return Intent{}, offerrors.ErrConflictingModes
	}

	intent := Intent{Command: CommandCreate, Branch: branch, NoShell: noShell}
	switch {
	case shareSet:
		intent.Mode = files.ModeShare
		intent.Files = files.ParseList(share)
	case cloneSet:
		intent.Mode = files.ModeClone
		intent.Files = files.ParseList(clone)
	}
	return intent, nil
}

// linkIntent builds the intent for the standalone share and clone commands.
func linkIntent(mode files.Mode, list string) (Intent, error) {
	command := CommandShare
	if mode == files.ModeClone {
		command = CommandClone
	}

	parsed := files.ParseList(list)
	if len(parsed) == 0 {
		return Intent{}, fmt.Errorf("%w: %s needs at least one file", offerrors.ErrUsage, command)
	}
	return Intent{Command: command, Files: parsed, Mode: mode}, nil
}
