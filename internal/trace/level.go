package trace

import (
	"fmt"
	"strings"
)

// Level controls how much is traced.
type Level uint8

const (
	LevelOff   Level = iota
	LevelFile        // driver + per-file spans
	LevelPass        // + compiler passes
	LevelDebug       // everything
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelFile:
		return "file"
	case LevelPass:
		return "pass"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a flag value into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "file":
		return LevelFile, nil
	case "pass":
		return LevelPass, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|file|pass|debug)", s)
	}
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelFile:
		return scope <= ScopeFile
	case LevelPass:
		return scope <= ScopePass
	case LevelDebug:
		return true
	default:
		return false
	}
}
