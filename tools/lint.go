package tools

import (
	"fmt"
	"sort"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// LintLevel represents the severity of a lint issue
type LintLevel int

const (
	LintError   LintLevel = iota // Structural damage: dropped commands, arguments or comments
	LintWarning                  // Recovered problems: garbage, orphan words, duplicates
	LintInfo                     // Notes: block-deleted lines, style observations
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue represents a single lint finding
type LintIssue struct {
	Level   LintLevel
	Span    parser.Span
	Message string
	Code    string // Issue code like "UNKNOWN_CONTENT", "LINE_NUM_ORDER"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Span.Line, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior
type LintOptions struct {
	Strict          bool // Treat warnings as errors
	CheckLineOrder  bool // Check that N line numbers increase
	CheckDuplicates bool // Check for duplicate N line numbers
	CheckDeleted    bool // Note block-deleted lines
}

// DefaultLintOptions returns default linter options
func DefaultLintOptions() *LintOptions {
	return &LintOptions{
		Strict:          false,
		CheckLineOrder:  true,
		CheckDuplicates: true,
		CheckDeleted:    true,
	}
}

// Linter analyzes G-code for structural issues
type Linter struct {
	options *LintOptions
	issues  []*LintIssue
	lines   []parser.Line
}

// NewLinter creates a new linter
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{
		options: options,
		issues:  make([]*LintIssue, 0),
	}
}

// Lint analyzes the given G-code source
func (l *Linter) Lint(input string) []*LintIssue {
	lines, diags := parser.ParseString(input)
	l.lines = lines

	// Every parse diagnostic becomes an issue
	for _, d := range diags.Diagnostics {
		l.issues = append(l.issues, &LintIssue{
			Level:   levelForDiagnostic(d.Kind),
			Span:    d.Span,
			Message: d.Message,
			Code:    codeForDiagnostic(d.Kind),
		})
	}

	// Run analysis passes
	if l.options.CheckLineOrder || l.options.CheckDuplicates {
		l.checkLineNumbers()
	}

	if l.options.CheckDeleted {
		l.checkDeletedLines()
	}

	// Sort issues by position
	sort.Slice(l.issues, func(i, j int) bool {
		if l.issues[i].Span.Start == l.issues[j].Span.Start {
			return l.issues[i].Span.End < l.issues[j].Span.End
		}
		return l.issues[i].Span.Start < l.issues[j].Span.Start
	})

	return l.issues
}

// HasErrors returns true if any issue is at error level, or at warning level
// when the linter is strict
func (l *Linter) HasErrors() bool {
	for _, issue := range l.issues {
		if issue.Level == LintError {
			return true
		}
		if l.options.Strict && issue.Level == LintWarning {
			return true
		}
	}
	return false
}

// checkLineNumbers checks explicit N line numbers for ordering and duplicates
func (l *Linter) checkLineNumbers() {
	seen := make(map[uint32]int) // line number -> logical line of first use
	last := int64(-1)

	for i := range l.lines {
		line := &l.lines[i]
		n, ok := line.LineNumber()
		if !ok {
			continue
		}

		if l.options.CheckDuplicates {
			if firstLine, exists := seen[n]; exists {
				l.issues = append(l.issues, &LintIssue{
					Level:   LintWarning,
					Span:    line.Span(),
					Message: fmt.Sprintf("line number N%d already used on logical line %d", n, firstLine),
					Code:    "DUP_LINE_NUMBER",
				})
			} else {
				seen[n] = line.Span().Line
			}
		}

		if l.options.CheckLineOrder && int64(n) <= last {
			l.issues = append(l.issues, &LintIssue{
				Level:   LintWarning,
				Span:    line.Span(),
				Message: fmt.Sprintf("line number N%d does not increase (highest so far was N%d)", n, last),
				Code:    "LINE_NUM_ORDER",
			})
		}
		if int64(n) > last {
			last = int64(n)
		}
	}
}

// checkDeletedLines notes lines marked with the block-delete /
func (l *Linter) checkDeletedLines() {
	for i := range l.lines {
		line := &l.lines[i]
		if !line.Deleted() {
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level:   LintInfo,
			Span:    line.Span(),
			Message: "line is marked for block delete and may be skipped by the controller",
			Code:    "BLOCK_DELETE",
		})
	}
}

// levelForDiagnostic maps parse diagnostics to lint severities. Overflows
// are errors because content was dropped; everything else was recovered.
func levelForDiagnostic(kind parser.DiagnosticKind) LintLevel {
	switch kind {
	case parser.DiagGcodeOverflow, parser.DiagArgumentOverflow, parser.DiagCommentOverflow:
		return LintError
	default:
		return LintWarning
	}
}

// codeForDiagnostic maps parse diagnostics to stable issue codes
func codeForDiagnostic(kind parser.DiagnosticKind) string {
	switch kind {
	case parser.DiagUnknownContent:
		return "UNKNOWN_CONTENT"
	case parser.DiagGcodeOverflow:
		return "GCODE_OVERFLOW"
	case parser.DiagArgumentOverflow:
		return "ARGUMENT_OVERFLOW"
	case parser.DiagCommentOverflow:
		return "COMMENT_OVERFLOW"
	case parser.DiagUnexpectedLineNumber:
		return "UNEXPECTED_LINE_NUMBER"
	case parser.DiagArgumentWithoutCommand:
		return "ORPHAN_ARGUMENT"
	case parser.DiagNumberWithoutLetter:
		return "BARE_NUMBER"
	case parser.DiagLetterWithoutNumber:
		return "LONE_LETTER"
	case parser.DiagDuplicateArgument:
		return "DUPLICATE_ARGUMENT"
	default:
		return "PARSE_DIAGNOSTIC"
	}
}

// LintString is a convenience function to lint a string with default options
func LintString(input string) []*LintIssue {
	return NewLinter(DefaultLintOptions()).Lint(input)
}
