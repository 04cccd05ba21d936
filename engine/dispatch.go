package engine

import (
	"github.com/ledgerwatch/bandindex/argdecode"
)

// Command names recognized by Dispatch.
const (
	CommandRecord   = "RECORD"
	CommandClassify = "CLASSIFY"
	CommandCompare  = "COMPARE"
	CommandMerge    = "MERGE"
	CommandDelete   = "DELETE"
)

// Dispatch parses the full wire-in argument vector (spec.md §6): the five
// Configuration tokens, a command token, then command-specific arguments,
// and routes to the matching orchestration. The return value's dynamic
// type depends on the command: nil for RECORD/MERGE/DELETE, []ClassifyResult
// for CLASSIFY, float64 for COMPARE.
func (e *Engine) Dispatch(argv []string) (interface{}, error) {
	c := argdecode.NewCursor(argv)
	cfg, err := decodeConfiguration(c)
	if err != nil {
		return nil, err
	}
	command, err := argdecode.String(c, "command")
	if err != nil {
		return nil, err
	}
	rest := c.Argv[c.Pos:]

	switch command {
	case CommandRecord:
		return nil, e.Record(cfg, rest)
	case CommandClassify:
		return e.Classify(cfg, rest)
	case CommandCompare:
		return e.Compare(cfg, rest)
	case CommandMerge:
		return nil, e.Merge(cfg, rest)
	case CommandDelete:
		return nil, e.Delete(cfg, rest)
	default:
		return nil, wrapf("%w: %q at argument %d", ErrUnknownCommand, command, c.Pos-1)
	}
}
