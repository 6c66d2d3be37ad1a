package parser_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/gcode-parser/parser"
)

func TestDiagnosticList_RecordsEveryEvent(t *testing.T) {
	input := "99 G1 X1 X2 N5 Q @@"
	diags := &parser.DiagnosticList{}
	p := parser.New(input, diags)

	for {
		if _, ok := p.NextLine(); !ok {
			break
		}
	}

	expected := map[parser.DiagnosticKind]int{
		parser.DiagNumberWithoutLetter:  1, // 99
		parser.DiagDuplicateArgument:    1, // X2
		parser.DiagUnexpectedLineNumber: 1, // N5
		parser.DiagLetterWithoutNumber:  1, // Q
		parser.DiagUnknownContent:       1, // @@
	}
	for kind, count := range expected {
		if got := diags.CountKind(kind); got != count {
			t.Errorf("%v: expected %d, got %d", kind, count, got)
		}
	}
	if diags.Len() != 5 {
		t.Errorf("expected 5 diagnostics, got %d:\n%s", diags.Len(), diags)
	}
}

func TestDiagnosticList_SpansInsideInput(t *testing.T) {
	input := "@@ G1 X Y1 Y2 99"
	diags := &parser.DiagnosticList{}
	p := parser.New(input, diags)
	for {
		if _, ok := p.NextLine(); !ok {
			break
		}
	}

	if !diags.HasDiagnostics() {
		t.Fatal("expected diagnostics")
	}
	for _, d := range diags.Diagnostics {
		if d.Span.Start < 0 || d.Span.End > len(input) {
			t.Errorf("diagnostic span %v outside input: %s", d.Span, d)
		}
	}
}

func TestDiagnosticList_String(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("&", diags)
	for {
		if _, ok := p.NextLine(); !ok {
			break
		}
	}

	out := diags.String()
	if !strings.Contains(out, "unrecognized content") {
		t.Errorf("unexpected rendering: %q", out)
	}
}
