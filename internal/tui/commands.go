package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mapping-keeper/models"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrNothingToCopy  = errors.New("nothing shown yet, use /show first")
)

type commandKind int

const (
	cmdChat commandKind = iota
	cmdRename
	cmdUnname
	cmdDoc
	cmdAccess
	cmdShow
	cmdStatus
	cmdCopy
	cmdHelp
	cmdQuit
)

type command struct {
	kind   commandKind
	entry  models.Entry
	change models.EntryChange
	text   string
}

var usages = map[string]string{
	"/rename": "/rename <entry> <name>",
	"/unname": "/unname <entry>",
	"/doc":    "/doc <entry> [text]",
	"/access": "/access <entry> public|protected|private|unchanged",
	"/show":   "/show <entry>",
}

const helpText = "commands: /rename <entry> <name>, /unname <entry>, /doc <entry> [text], " +
	"/access <entry> <modifier>, /show <entry>, /status, /copy, /quit. " +
	"entries look like a/b, a/b.f:I, a/b.m(I)V, a/b.m(I)V#1"

// parseCommand turns an input line into a command. Lines not starting with
// a slash are chat. A doubled slash escapes a chat line that starts with one.
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return command{kind: cmdChat, text: line}, nil
	}
	if strings.HasPrefix(line, "//") {
		return command{kind: cmdChat, text: line[1:]}, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "/status":
		return command{kind: cmdStatus}, nil
	case "/copy":
		return command{kind: cmdCopy}, nil
	case "/help":
		return command{kind: cmdHelp}, nil
	case "/quit", "/exit":
		return command{kind: cmdQuit}, nil
	case "/rename", "/unname", "/doc", "/access", "/show":
	default:
		return command{}, fmt.Errorf("%w %s, try /help", ErrUnknownCommand, name)
	}

	target, arg, _ := strings.Cut(rest, " ")
	arg = strings.TrimSpace(arg)
	if target == "" {
		return command{}, fmt.Errorf("%w: %s", ErrUsage, usages[name])
	}
	entry, err := models.ParseEntry(target)
	if err != nil {
		return command{}, err
	}

	change := models.Modify(entry)
	switch name {
	case "/show":
		return command{kind: cmdShow, entry: entry}, nil
	case "/rename":
		if arg == "" || strings.ContainsAny(arg, " \t") {
			return command{}, fmt.Errorf("%w: %s", ErrUsage, usages[name])
		}
		return command{kind: cmdRename, entry: entry, change: change.WithName(arg)}, nil
	case "/unname":
		return command{kind: cmdUnname, entry: entry, change: change.ClearName()}, nil
	case "/doc":
		if arg == "" {
			return command{kind: cmdDoc, entry: entry, change: change.ClearDoc()}, nil
		}
		return command{kind: cmdDoc, entry: entry, change: change.WithDoc(arg)}, nil
	default:
		access, ok := models.ParseAccessModifier(arg)
		if !ok {
			return command{}, fmt.Errorf("%w: %s", ErrUsage, usages[name])
		}
		if access == models.AccessUnchanged {
			return command{kind: cmdAccess, entry: entry, change: change.ClearAccess()}, nil
		}
		return command{kind: cmdAccess, entry: entry, change: change.WithAccess(access)}, nil
	}
}
