// Package conversation provides the line-mode command parser and the
// terminal notifier.
package conversation

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// CommandType classifies what the user wants the brewer to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandStart
	CommandStop
	CommandToggle
	CommandReset
	CommandLoad
	CommandNext
	CommandPrev
	CommandList
	CommandStatus
	CommandSteps
	CommandParams
	CommandSet
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandToggle:
		return "toggle"
	case CommandReset:
		return "reset"
	case CommandLoad:
		return "load"
	case CommandNext:
		return "next"
	case CommandPrev:
		return "prev"
	case CommandList:
		return "list"
	case CommandStatus:
		return "status"
	case CommandSteps:
		return "steps"
	case CommandParams:
		return "params"
	case CommandSet:
		return "set"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed user action.
type Command struct {
	Type    CommandType
	Payload string // recipe id/brew id for load, "field value" for set
}

// KeywordParser matches user input to commands using keywords.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command CommandType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(start|go|begin|resume|brew)$`), CommandStart},
		{regexp.MustCompile(`(?i)^(stop|pause|hold|p)$`), CommandStop},
		{regexp.MustCompile(`(?i)^(toggle|t|space)$`), CommandToggle},
		{regexp.MustCompile(`(?i)^(reset|restart|again|r)$`), CommandReset},
		{regexp.MustCompile(`(?i)^(next|n)$`), CommandNext},
		{regexp.MustCompile(`(?i)^(prev|previous|back|b)$`), CommandPrev},
		{regexp.MustCompile(`(?i)^(list|recipes|ls|browse)$`), CommandList},
		{regexp.MustCompile(`(?i)^(status|where|time|s)$`), CommandStatus},
		{regexp.MustCompile(`(?i)^(steps|timeline)$`), CommandSteps},
		{regexp.MustCompile(`(?i)^(params|settings|recipe)$`), CommandParams},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), CommandHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), CommandQuit},
	}
	return p
}

// Parse converts user input into a command.
func (p *KeywordParser) Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{Type: CommandUnknown}
	}

	p.log.Debug("parsing input: %q", trimmed)

	// "load aeropress", "use 2", "pick v60".
	if verb, rest, ok := strings.Cut(trimmed, " "); ok {
		switch strings.ToLower(verb) {
		case "load", "use", "pick", "select":
			return Command{Type: CommandLoad, Payload: strings.TrimSpace(rest)}
		case "set":
			return Command{Type: CommandSet, Payload: strings.TrimSpace(rest)}
		}
	}

	// A bare number selects a recipe by id.
	if len(trimmed) <= 3 && isDigits(trimmed) {
		return Command{Type: CommandLoad, Payload: trimmed}
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched command: %s", rule.command)
			return Command{Type: rule.command}
		}
	}

	p.log.Debug("no match, returning unknown command")
	return Command{Type: CommandUnknown, Payload: trimmed}
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
