package xmldoc

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic attached to a document at open time.
type Severity int

// Severity levels, ordered from least to most severe.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// String returns the canonical severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity resolves a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, bool) {
	switch strings.ToLower(name) {
	case "info":
		return SeverityInfo, true
	case "warning":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	case "fatal":
		return SeverityFatal, true
	default:
		return 0, false
	}
}

// Diagnostic is one message the engine attached to a document while opening
// it. Line is zero when no position is known.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ParseError reports that a document failed to open, or opened with
// diagnostics at a watched severity.
type ParseError struct {
	// Diagnostics holds only the messages that matched the watched set.
	Diagnostics []Diagnostic
}

func (e *ParseError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "document failed to open"
	}
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("document failed to open: %s", e.Diagnostics[0])
	}
	return fmt.Sprintf("document failed to open: %s (and %d more)",
		e.Diagnostics[0], len(e.Diagnostics)-1)
}
