package parser_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// mustNextLine fails the test if the parser has no more lines
func mustNextLine(t *testing.T, p *parser.Parser) parser.Line {
	t.Helper()
	line, ok := p.NextLine()
	if !ok {
		t.Fatal("expected another line")
	}
	return line
}

func TestParser_SingleCommand(t *testing.T) {
	p := parser.New("G90", nil)

	line := mustNextLine(t, p)
	gcodes := line.Gcodes()
	if len(gcodes) != 1 {
		t.Fatalf("expected 1 command, got %d", len(gcodes))
	}

	g := gcodes[0]
	if g.Mnemonic() != parser.MnemonicGeneral {
		t.Errorf("expected G, got %v", g.Mnemonic())
	}
	if g.Major() != 90 || g.Minor() != 0 {
		t.Errorf("expected major 90 minor 0, got %d.%d", g.Major(), g.Minor())
	}
	if len(g.Arguments()) != 0 {
		t.Errorf("expected no arguments, got %v", g.Arguments())
	}
	if g.Span() != (parser.Span{Start: 0, End: 3, Line: 0}) {
		t.Errorf("unexpected span %v", g.Span())
	}
	if _, has := line.LineNumber(); has {
		t.Error("expected no line number")
	}
	if line.Deleted() {
		t.Error("expected line not deleted")
	}

	if _, ok := p.NextLine(); ok {
		t.Error("expected end of input")
	}
}

func TestParser_MultipleCommandsAndLines(t *testing.T) {
	p := parser.New("G01 X123 Y-20.5 G04 P500\nN20 G1", nil)

	first := mustNextLine(t, p)
	gcodes := first.Gcodes()
	if len(gcodes) != 2 {
		t.Fatalf("line 0: expected 2 commands, got %d", len(gcodes))
	}

	move := gcodes[0]
	if move.Major() != 1 {
		t.Errorf("expected G1, got G%d", move.Major())
	}
	if x, ok := move.Value('X'); !ok || x != 123 {
		t.Errorf("expected X=123, got %g (%v)", x, ok)
	}
	if y, ok := move.Value('Y'); !ok || y != -20.5 {
		t.Errorf("expected Y=-20.5, got %g (%v)", y, ok)
	}

	dwell := gcodes[1]
	if dwell.Major() != 4 {
		t.Errorf("expected G4, got G%d", dwell.Major())
	}
	if pause, ok := dwell.Value('P'); !ok || pause != 500 {
		t.Errorf("expected P=500, got %g (%v)", pause, ok)
	}

	second := mustNextLine(t, p)
	if n, ok := second.LineNumber(); !ok || n != 20 {
		t.Errorf("expected line number 20, got %d (%v)", n, ok)
	}
	if len(second.Gcodes()) != 1 || second.Gcodes()[0].Major() != 1 {
		t.Errorf("line 1: expected a single G1, got %v", second.Gcodes())
	}
	if second.Span().Line != 1 {
		t.Errorf("expected logical line 1, got %d", second.Span().Line)
	}

	if _, ok := p.NextLine(); ok {
		t.Error("expected end of input")
	}
}

func TestParser_CommentsInsideWords(t *testing.T) {
	input := "G01 (the x-coordinate) X50 Y (comment between Y and number) -10.0"
	p := parser.New(input, nil)

	line := mustNextLine(t, p)
	gcodes := line.Gcodes()
	if len(gcodes) != 1 {
		t.Fatalf("expected 1 command, got %d", len(gcodes))
	}

	g := gcodes[0]
	if x, ok := g.Value('X'); !ok || x != 50 {
		t.Errorf("expected X=50, got %g (%v)", x, ok)
	}
	if y, ok := g.Value('Y'); !ok || y != -10.0 {
		t.Errorf("expected Y=-10.0, got %g (%v)", y, ok)
	}

	comments := line.Comments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Text != "the x-coordinate" {
		t.Errorf("unexpected first comment %q", comments[0].Text)
	}

	// The command span covers the whole input
	if g.Span().Start != 0 || g.Span().End != len(input) {
		t.Errorf("expected command span to cover the input, got %v", g.Span())
	}
	if !line.Span().Contains(g.Span()) {
		t.Errorf("line span %v does not enclose command span %v", line.Span(), g.Span())
	}
}

func TestParser_BlockDeleteAndLineNumber(t *testing.T) {
	p := parser.New("/N5 M6", nil)

	line := mustNextLine(t, p)
	if !line.Deleted() {
		t.Error("expected line deleted")
	}
	if n, ok := line.LineNumber(); !ok || n != 5 {
		t.Errorf("expected line number 5, got %d (%v)", n, ok)
	}

	gcodes := line.Gcodes()
	if len(gcodes) != 1 {
		t.Fatalf("expected 1 command, got %d", len(gcodes))
	}
	if gcodes[0].Mnemonic() != parser.MnemonicMiscellaneous || gcodes[0].Major() != 6 {
		t.Errorf("expected M6, got %v", &gcodes[0])
	}
}

func TestParser_MinorNumbers(t *testing.T) {
	tests := []struct {
		input  string
		major  uint32
		minor  uint32
		number float32
	}{
		{"G38.2 X1", 38, 2, 38.2},
		{"G1.10", 1, 10, 1.10},
		{"G38.02", 38, 2, 38.02},
		{"G17", 17, 0, 17},
	}

	for _, tt := range tests {
		p := parser.New(tt.input, nil)
		line := mustNextLine(t, p)
		gcodes := line.Gcodes()
		if len(gcodes) != 1 {
			t.Fatalf("input %q: expected 1 command, got %d", tt.input, len(gcodes))
		}
		g := gcodes[0]
		if g.Major() != tt.major || g.Minor() != tt.minor {
			t.Errorf("input %q: expected %d.%d, got %d.%d", tt.input, tt.major, tt.minor, g.Major(), g.Minor())
		}
		if g.Number() != tt.number {
			t.Errorf("input %q: expected number %g, got %g", tt.input, tt.number, g.Number())
		}
	}
}

func TestParser_NumberWithoutALetter(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("99 G1", diags)

	line := mustNextLine(t, p)
	gcodes := line.Gcodes()
	if len(gcodes) != 1 || gcodes[0].Major() != 1 {
		t.Fatalf("expected a single G1, got %v", gcodes)
	}
	if diags.CountKind(parser.DiagNumberWithoutLetter) != 1 {
		t.Errorf("expected a number-without-a-letter diagnostic, got %v", diags)
	}
}

func TestParser_LetterWithoutANumber(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("G1 X\nM2", diags)

	line := mustNextLine(t, p)
	if len(line.Gcodes()) != 1 {
		t.Fatalf("expected 1 command, got %v", line.Gcodes())
	}
	if len(line.Gcodes()[0].Arguments()) != 0 {
		t.Errorf("expected the dangling X to be dropped, got %v", line.Gcodes()[0].Arguments())
	}
	if diags.CountKind(parser.DiagLetterWithoutNumber) != 1 {
		t.Errorf("expected a letter-without-a-number diagnostic, got %v", diags)
	}

	line = mustNextLine(t, p)
	if len(line.Gcodes()) != 1 || line.Gcodes()[0].Major() != 2 {
		t.Errorf("expected M2 on the next line, got %v", line.Gcodes())
	}
}

func TestParser_ArgumentWithoutACommand(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("X14 G90", diags)

	line := mustNextLine(t, p)
	gcodes := line.Gcodes()
	if len(gcodes) != 1 || gcodes[0].Major() != 90 {
		t.Fatalf("expected a single G90, got %v", gcodes)
	}
	if len(gcodes[0].Arguments()) != 0 {
		t.Errorf("orphan argument must not attach to a later command: %v", gcodes[0].Arguments())
	}
	if diags.CountKind(parser.DiagArgumentWithoutCommand) != 1 {
		t.Errorf("expected an orphan-argument diagnostic, got %v", diags)
	}
}

func TestParser_UnexpectedLineNumberMidLine(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("G1 N42 X5", diags)

	line := mustNextLine(t, p)
	if _, has := line.LineNumber(); has {
		t.Error("mid-line N must not become the line number")
	}
	g := line.Gcodes()[0]
	if _, ok := g.Value('N'); ok {
		t.Error("mid-line N must not become an argument")
	}
	if x, ok := g.Value('X'); !ok || x != 5 {
		t.Errorf("expected X=5 after the discarded N, got %g (%v)", x, ok)
	}
	if diags.CountKind(parser.DiagUnexpectedLineNumber) != 1 {
		t.Errorf("expected an unexpected-line-number diagnostic, got %v", diags)
	}
}

func TestParser_DuplicateArgumentReplaces(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("G1 X5 X7", diags)

	line := mustNextLine(t, p)
	g := line.Gcodes()[0]
	if len(g.Arguments()) != 1 {
		t.Fatalf("expected 1 argument, got %v", g.Arguments())
	}
	if x, _ := g.Value('X'); x != 7 {
		t.Errorf("expected the replacement X=7 to win, got %g", x)
	}
	if diags.CountKind(parser.DiagDuplicateArgument) != 1 {
		t.Errorf("expected a duplicate-argument diagnostic, got %v", diags)
	}
}

func TestParser_CommandBufferOverflow(t *testing.T) {
	var parts []string
	for i := 0; i < parser.MaxGcodesPerLine+2; i++ {
		parts = append(parts, "G1")
	}

	diags := &parser.DiagnosticList{}
	p := parser.New(strings.Join(parts, " "), diags)

	line := mustNextLine(t, p)
	if len(line.Gcodes()) != parser.MaxGcodesPerLine {
		t.Errorf("expected %d commands, got %d", parser.MaxGcodesPerLine, len(line.Gcodes()))
	}
	if diags.CountKind(parser.DiagGcodeOverflow) != 2 {
		t.Errorf("expected 2 overflow diagnostics, got %v", diags)
	}
}

func TestParser_ArgumentBufferOverflow(t *testing.T) {
	letters := "ABCDEFHIJKLPQRS" // no mnemonics, no N
	var sb strings.Builder
	sb.WriteString("G1")
	for i := 0; i < parser.MaxArgsPerGcode+1; i++ {
		sb.WriteString(" ")
		sb.WriteByte(letters[i])
		sb.WriteString("1")
	}

	diags := &parser.DiagnosticList{}
	p := parser.New(sb.String(), diags)

	line := mustNextLine(t, p)
	g := line.Gcodes()[0]
	if len(g.Arguments()) != parser.MaxArgsPerGcode {
		t.Errorf("expected %d arguments, got %d", parser.MaxArgsPerGcode, len(g.Arguments()))
	}
	if diags.CountKind(parser.DiagArgumentOverflow) != 1 {
		t.Errorf("expected 1 overflow diagnostic, got %v", diags)
	}
}

func TestParser_CommentBufferOverflow(t *testing.T) {
	input := "G1 (a) (b) (c) (d)"
	diags := &parser.DiagnosticList{}
	p := parser.New(input, diags)

	line := mustNextLine(t, p)
	if len(line.Comments()) != parser.MaxCommentsPerLine {
		t.Errorf("expected %d comments, got %d", parser.MaxCommentsPerLine, len(line.Comments()))
	}
	if diags.CountKind(parser.DiagCommentOverflow) != 1 {
		t.Errorf("expected 1 overflow diagnostic, got %v", diags)
	}
}

func TestParser_PercentSeparatesCommands(t *testing.T) {
	p := parser.New("%\nG1 X1 % G2\n%", nil)

	first := mustNextLine(t, p)
	if len(first.Gcodes()) != 1 || first.Gcodes()[0].Major() != 1 {
		t.Fatalf("expected G1, got %v", first.Gcodes())
	}

	second := mustNextLine(t, p)
	if len(second.Gcodes()) != 1 || second.Gcodes()[0].Major() != 2 {
		t.Fatalf("expected G2, got %v", second.Gcodes())
	}

	if _, ok := p.NextLine(); ok {
		t.Error("a lone % must not produce a line")
	}
}

func TestParser_BlankLinesProduceNothing(t *testing.T) {
	p := parser.New("\n\nG1\n\n\nM2\n\n", nil)

	first := mustNextLine(t, p)
	if first.Gcodes()[0].Major() != 1 {
		t.Errorf("expected G1, got %v", first.Gcodes())
	}
	if first.Span().Line != 2 {
		t.Errorf("expected logical line 2, got %d", first.Span().Line)
	}

	second := mustNextLine(t, p)
	if second.Gcodes()[0].Mnemonic() != parser.MnemonicMiscellaneous {
		t.Errorf("expected M, got %v", second.Gcodes())
	}
	if second.Span().Line != 5 {
		t.Errorf("expected logical line 5, got %d", second.Span().Line)
	}

	if _, ok := p.NextLine(); ok {
		t.Error("expected end of input")
	}
}

func TestParser_CommentOnlyLine(t *testing.T) {
	p := parser.New("(setup)\nG1", nil)

	line := mustNextLine(t, p)
	if len(line.Gcodes()) != 0 {
		t.Errorf("expected no commands, got %v", line.Gcodes())
	}
	if len(line.Comments()) != 1 || line.Comments()[0].Text != "setup" {
		t.Errorf("expected the setup comment, got %v", line.Comments())
	}
}

func TestParser_LineSpansDoNotOverlap(t *testing.T) {
	input := "N10 G1 X4 (move)\n/G0 X0 Y0\nM30"
	p := parser.New(input, nil)

	prevEnd := 0
	for {
		line, ok := p.NextLine()
		if !ok {
			break
		}
		span := line.Span()
		if span.Start < prevEnd {
			t.Errorf("line span %v starts before previous line end %d", span, prevEnd)
		}
		if span.End > len(input) {
			t.Errorf("line span %v extends past the input", span)
		}
		for _, g := range line.Gcodes() {
			if !span.Contains(g.Span()) {
				t.Errorf("line span %v does not contain command span %v", span, g.Span())
			}
			for _, arg := range g.Arguments() {
				if !g.Span().Contains(arg.Span) {
					t.Errorf("command span %v does not contain argument span %v", g.Span(), arg.Span)
				}
			}
		}
		for _, c := range line.Comments() {
			if !span.Contains(c.Span) {
				t.Errorf("line span %v does not contain comment span %v", span, c.Span)
			}
		}
		prevEnd = span.End
	}
}

func TestParser_LineCountMatchesNewlines(t *testing.T) {
	input := "G1\nG2\n\nG3\nG4"
	p := parser.New(input, nil)

	for {
		line, ok := p.NextLine()
		if !ok {
			break
		}
		span := line.Span()
		newlines := strings.Count(input[:span.Start], "\n")
		if span.Line != newlines {
			t.Errorf("line span %v: expected logical line %d", span, newlines)
		}
	}
}

func TestParser_NegativeLineNumberTruncated(t *testing.T) {
	diags := &parser.DiagnosticList{}
	p := parser.New("N-5 G1", diags)

	line := mustNextLine(t, p)
	if n, ok := line.LineNumber(); !ok || n != 5 {
		t.Errorf("expected truncated line number 5, got %d (%v)", n, ok)
	}
	if diags.CountKind(parser.DiagUnknownContent) != 1 {
		t.Errorf("expected a diagnostic for the negative literal, got %v", diags)
	}
}

func TestParser_TrailingContentWithoutNewline(t *testing.T) {
	p := parser.New("G1 X1\nG2 X2", nil)

	count := 0
	p.EachCommand(func(g parser.GCode) {
		count++
	})
	if count != 2 {
		t.Errorf("expected 2 commands, got %d", count)
	}
}

func TestParser_CaseInsensitiveMnemonics(t *testing.T) {
	p := parser.New("g90 x1.5 m3 s1000", nil)

	line := mustNextLine(t, p)
	gcodes := line.Gcodes()
	if len(gcodes) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(gcodes))
	}
	if gcodes[0].Mnemonic() != parser.MnemonicGeneral {
		t.Errorf("expected G, got %v", gcodes[0].Mnemonic())
	}
	if gcodes[1].Mnemonic() != parser.MnemonicMiscellaneous {
		t.Errorf("expected M, got %v", gcodes[1].Mnemonic())
	}
	for _, g := range gcodes {
		for _, arg := range g.Arguments() {
			if arg.Letter < 'A' || arg.Letter > 'Z' {
				t.Errorf("argument letter %c not uppercased", arg.Letter)
			}
		}
	}
}

func TestParser_SnapshotSurvivesNextCall(t *testing.T) {
	p := parser.New("G1 X1\nG2 X2", nil)

	first := mustNextLine(t, p)
	_ = mustNextLine(t, p)

	if first.Gcodes()[0].Major() != 1 {
		t.Error("earlier snapshot was clobbered by a later NextLine call")
	}
	if x, _ := first.Gcodes()[0].Value('X'); x != 1 {
		t.Error("earlier snapshot arguments were clobbered")
	}
}

func TestParseString(t *testing.T) {
	lines, diags := parser.ParseString("N10 G1 X1\n@@\nM30")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !diags.HasDiagnostics() {
		t.Error("expected a diagnostic for the garbage line")
	}
}
