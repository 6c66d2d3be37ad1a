package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// Reference records a single occurrence of a command or argument letter
type Reference struct {
	Line int         `json:"line"` // 0-based logical line
	Span parser.Span `json:"span"`
}

// CommandUsage aggregates every occurrence of one command (mnemonic plus
// major and minor number) across the program
type CommandUsage struct {
	Name       string       `json:"name"` // e.g. "G1", "G38.2", "M6"
	Count      int          `json:"count"`
	References []*Reference `json:"references"`
}

// LetterUsage aggregates every occurrence of one argument letter
type LetterUsage struct {
	Letter     string       `json:"letter"`
	Count      int          `json:"count"`
	References []*Reference `json:"references"`
}

// XRefGenerator builds cross-reference information over parsed G-code
type XRefGenerator struct {
	commands map[string]*CommandUsage
	letters  map[string]*LetterUsage

	lineCount    int
	commandCount int
	commentCount int
	deletedCount int
}

// NewXRefGenerator creates a new cross-reference generator
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{
		commands: make(map[string]*CommandUsage),
		letters:  make(map[string]*LetterUsage),
	}
}

// Generate builds cross-reference information from source code
func (x *XRefGenerator) Generate(input string) *XRefReport {
	lines, _ := parser.ParseString(input)

	for i := range lines {
		line := &lines[i]
		x.lineCount++
		if line.Deleted() {
			x.deletedCount++
		}
		x.commentCount += len(line.Comments())

		for _, gcode := range line.Gcodes() {
			x.commandCount++
			x.addCommand(&gcode)
			for _, arg := range gcode.Arguments() {
				x.addLetter(arg)
			}
		}
	}

	return x.report()
}

// addCommand records one command occurrence
func (x *XRefGenerator) addCommand(g *parser.GCode) {
	name := commandName(g)
	usage, exists := x.commands[name]
	if !exists {
		usage = &CommandUsage{Name: name}
		x.commands[name] = usage
	}
	usage.Count++
	usage.References = append(usage.References, &Reference{
		Line: g.Span().Line,
		Span: g.Span(),
	})
}

// addLetter records one argument letter occurrence
func (x *XRefGenerator) addLetter(w parser.Word) {
	letter := string(rune(w.Letter))
	usage, exists := x.letters[letter]
	if !exists {
		usage = &LetterUsage{Letter: letter}
		x.letters[letter] = usage
	}
	usage.Count++
	usage.References = append(usage.References, &Reference{
		Line: w.Span.Line,
		Span: w.Span,
	})
}

// commandName renders the canonical command name, minor number included
func commandName(g *parser.GCode) string {
	if g.Minor() != 0 {
		return fmt.Sprintf("%s%d.%d", g.Mnemonic(), g.Major(), g.Minor())
	}
	return fmt.Sprintf("%s%d", g.Mnemonic(), g.Major())
}

// report assembles the sorted report
func (x *XRefGenerator) report() *XRefReport {
	report := &XRefReport{
		Lines:        x.lineCount,
		Commands:     x.commandCount,
		Comments:     x.commentCount,
		DeletedLines: x.deletedCount,
	}

	for _, usage := range x.commands {
		report.CommandUsage = append(report.CommandUsage, usage)
	}
	sort.Slice(report.CommandUsage, func(i, j int) bool {
		if report.CommandUsage[i].Count == report.CommandUsage[j].Count {
			return report.CommandUsage[i].Name < report.CommandUsage[j].Name
		}
		return report.CommandUsage[i].Count > report.CommandUsage[j].Count
	})

	for _, usage := range x.letters {
		report.LetterUsage = append(report.LetterUsage, usage)
	}
	sort.Slice(report.LetterUsage, func(i, j int) bool {
		return report.LetterUsage[i].Letter < report.LetterUsage[j].Letter
	})

	return report
}

// XRefReport is the cross-reference summary of one program
type XRefReport struct {
	Lines        int             `json:"lines"`
	Commands     int             `json:"commands"`
	Comments     int             `json:"comments"`
	DeletedLines int             `json:"deletedLines"`
	CommandUsage []*CommandUsage `json:"commandUsage"`
	LetterUsage  []*LetterUsage  `json:"letterUsage"`
}

// String generates a text report
func (r *XRefReport) String() string {
	var sb strings.Builder

	sb.WriteString("Command Cross-Reference\n")
	sb.WriteString("=======================\n\n")

	for _, usage := range r.CommandUsage {
		sb.WriteString(fmt.Sprintf("%-10s %4d time(s)", usage.Name, usage.Count))
		lines := make([]string, 0, len(usage.References))
		for _, ref := range usage.References {
			lines = append(lines, fmt.Sprintf("%d", ref.Line))
		}
		sb.WriteString(fmt.Sprintf("  line(s) %s\n", strings.Join(lines, ", ")))
	}

	if len(r.LetterUsage) > 0 {
		sb.WriteString("\nArgument Letters\n")
		sb.WriteString("================\n\n")
		for _, usage := range r.LetterUsage {
			sb.WriteString(fmt.Sprintf("%-10s %4d time(s)\n", usage.Letter, usage.Count))
		}
	}

	sb.WriteString("\nSummary\n")
	sb.WriteString("=======\n")
	sb.WriteString(fmt.Sprintf("Lines:             %d\n", r.Lines))
	sb.WriteString(fmt.Sprintf("Commands:          %d\n", r.Commands))
	sb.WriteString(fmt.Sprintf("Comments:          %d\n", r.Comments))
	sb.WriteString(fmt.Sprintf("Block-deleted:     %d\n", r.DeletedLines))

	return sb.String()
}

// JSON generates a JSON report
func (r *XRefReport) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}

// GenerateXRef is a convenience function to generate a text cross-reference
// report
func GenerateXRef(input string) string {
	return NewXRefGenerator().Generate(input).String()
}
