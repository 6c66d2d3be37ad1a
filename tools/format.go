package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// FormatStyle defines formatting options
type FormatStyle int

const (
	FormatDefault  FormatStyle = iota // Standard formatting
	FormatCompact                     // Minimal whitespace
	FormatExpanded                    // Extra whitespace for readability
)

// FormatOptions controls formatter behavior
type FormatOptions struct {
	Style         FormatStyle
	CommandColumn int  // Column for the first command when a line number or delete mark is present
	CommentColumn int  // Column for trailing comments
	AlignComments bool // Align trailing comments in a column
}

// DefaultFormatOptions returns default formatter options
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		Style:         FormatDefault,
		CommandColumn: 8,
		CommentColumn: 40,
		AlignComments: true,
	}
}

// CompactFormatOptions returns options for compact formatting
func CompactFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatCompact
	opts.CommandColumn = 0
	opts.CommentColumn = 0
	opts.AlignComments = false
	return opts
}

// ExpandedFormatOptions returns options for expanded formatting
func ExpandedFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatExpanded
	opts.CommandColumn = 12
	opts.CommentColumn = 50
	return opts
}

// Formatter reprints G-code source in a canonical layout. Formatting never
// fails: malformed fragments are dropped by the parser and the formatter
// reprints whatever was recovered.
type Formatter struct {
	options *FormatOptions
	output  strings.Builder
}

// NewFormatter creates a new formatter
func NewFormatter(options *FormatOptions) *Formatter {
	if options == nil {
		options = DefaultFormatOptions()
	}
	return &Formatter{
		options: options,
	}
}

// Format formats the given G-code source
func (f *Formatter) Format(input string) string {
	lines, _ := parser.ParseString(input)

	f.output.Reset()
	for i := range lines {
		f.formatLine(&lines[i])
	}
	return f.output.String()
}

// formatLine formats a single logical line
func (f *Formatter) formatLine(line *parser.Line) {
	sb := strings.Builder{}

	if line.Deleted() {
		sb.WriteString("/")
	}
	if n, ok := line.LineNumber(); ok {
		fmt.Fprintf(&sb, "N%d", n)
	}

	gcodes := line.Gcodes()
	if len(gcodes) > 0 && sb.Len() > 0 {
		if f.options.Style == FormatCompact {
			sb.WriteString(" ")
		} else {
			f.padToColumn(&sb, f.options.CommandColumn)
		}
	}

	for i := range gcodes {
		if i > 0 {
			if f.options.Style == FormatExpanded {
				sb.WriteString("  ")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(f.formatGcode(&gcodes[i]))
	}

	for _, comment := range line.Comments() {
		if sb.Len() == 0 {
			// Comment-only line
		} else if f.options.AlignComments && f.options.Style != FormatCompact {
			f.padToColumn(&sb, f.options.CommentColumn)
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(formatComment(comment))
	}

	f.output.WriteString(sb.String())
	f.output.WriteString("\n")
}

// formatGcode formats one command with its arguments
func (f *Formatter) formatGcode(g *parser.GCode) string {
	sb := strings.Builder{}

	sb.WriteString(g.Mnemonic().String())
	if g.Minor() != 0 {
		fmt.Fprintf(&sb, "%d.%d", g.Major(), g.Minor())
	} else {
		fmt.Fprintf(&sb, "%d", g.Major())
	}

	for _, arg := range g.Arguments() {
		sb.WriteString(" ")
		sb.WriteByte(arg.Letter)
		sb.WriteString(formatValue(arg.Value))
	}

	return sb.String()
}

// formatComment reprints a comment. Parenthesised form is canonical; text
// that itself contains parentheses falls back to the semicolon form.
func formatComment(c parser.Comment) string {
	if strings.ContainsAny(c.Text, "()") {
		return ";" + c.Text
	}
	return "(" + c.Text + ")"
}

// formatValue renders a float with the shortest decimal that round-trips
func formatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// padToColumn pads the string builder to the specified column
func (f *Formatter) padToColumn(sb *strings.Builder, column int) {
	current := sb.Len()
	switch {
	case current < column:
		sb.WriteString(strings.Repeat(" ", column-current))
	case current == column:
		// Already at column
	default:
		// Already past column, add one space
		sb.WriteString(" ")
	}
}

// FormatString is a convenience function to format a string with default options
func FormatString(input string) string {
	formatter := NewFormatter(DefaultFormatOptions())
	return formatter.Format(input)
}

// FormatStringWithStyle formats a string with the specified style
func FormatStringWithStyle(input string, style FormatStyle) string {
	var options *FormatOptions
	switch style {
	case FormatCompact:
		options = CompactFormatOptions()
	case FormatExpanded:
		options = ExpandedFormatOptions()
	default:
		options = DefaultFormatOptions()
	}
	formatter := NewFormatter(options)
	return formatter.Format(input)
}
