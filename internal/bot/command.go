// Package bot interprets inbound chat messages: it parses the command
// surface, dispatches to the ledger services and renders the fixed-template
// replies. It knows nothing about the transport that carried the message.
package bot

import "strings"

// Inbound is what the transport hands over for one message.
type Inbound struct {
	ChatID int64
	Sender string
	Text   string
}

// Command is the leading token of a message plus its arguments.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a raw message into the command token and its
// whitespace-separated arguments. The token is case-sensitive; a "@botname"
// suffix is stripped so group-chat mentions dispatch normally. Empty or
// whitespace-only text reports ok=false: a no-op, no reply is due.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, false
	}
	name := fields[0]
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return Command{Name: name, Args: fields[1:]}, true
}
