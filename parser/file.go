package parser

import (
	"os"
)

// ParseString runs the pull parser to completion over source and returns the
// parsed lines together with every diagnostic that fired. This is the
// convenience entry point for the hosted tools; freestanding callers should
// drive NextLine themselves.
func ParseString(source string) ([]Line, *DiagnosticList) {
	diags := &DiagnosticList{}
	p := New(source, diags)

	var lines []Line
	for {
		line, ok := p.NextLine()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	return lines, diags
}

// ParseFile reads and parses a G-code file.
//
// Returns the parsed lines, the diagnostics, and an error for I/O failures
// only; malformed G-code never fails the parse.
func ParseFile(filePath string) ([]Line, *DiagnosticList, error) {
	content, err := os.ReadFile(filePath) // #nosec G304 -- user-provided G-code file path
	if err != nil {
		return nil, nil, err
	}

	lines, diags := ParseString(string(content))
	return lines, diags, nil
}
