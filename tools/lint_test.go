package tools

import (
	"testing"
)

// issueCodes collects the codes of a lint result
func issueCodes(issues []*LintIssue) map[string]int {
	codes := make(map[string]int)
	for _, issue := range issues {
		codes[issue.Code]++
	}
	return codes
}

func TestLint_CleanInput(t *testing.T) {
	issues := LintString("N10 G1 X1\nN20 G1 X2\nN30 M30")
	for _, issue := range issues {
		if issue.Level != LintInfo {
			t.Errorf("unexpected issue on clean input: %s", issue)
		}
	}
}

func TestLint_ParseDiagnosticsBecomeIssues(t *testing.T) {
	issues := LintString("@@ G1 X1 X2 99")

	codes := issueCodes(issues)
	if codes["UNKNOWN_CONTENT"] != 1 {
		t.Errorf("expected UNKNOWN_CONTENT, got %v", codes)
	}
	if codes["DUPLICATE_ARGUMENT"] != 1 {
		t.Errorf("expected DUPLICATE_ARGUMENT, got %v", codes)
	}
	if codes["BARE_NUMBER"] != 1 {
		t.Errorf("expected BARE_NUMBER, got %v", codes)
	}
}

func TestLint_OverflowIsError(t *testing.T) {
	linter := NewLinter(nil)
	issues := linter.Lint("G1 G2 G3 G4 G5 G6 G7 G8")

	found := false
	for _, issue := range issues {
		if issue.Code == "GCODE_OVERFLOW" {
			found = true
			if issue.Level != LintError {
				t.Errorf("overflow should be an error, got %v", issue.Level)
			}
		}
	}
	if !found {
		t.Error("expected GCODE_OVERFLOW issues")
	}
	if !linter.HasErrors() {
		t.Error("expected HasErrors to report the overflow")
	}
}

func TestLint_LineNumberOrder(t *testing.T) {
	issues := LintString("N20 G1\nN10 G2")

	codes := issueCodes(issues)
	if codes["LINE_NUM_ORDER"] != 1 {
		t.Errorf("expected LINE_NUM_ORDER, got %v", codes)
	}
}

func TestLint_DuplicateLineNumbers(t *testing.T) {
	issues := LintString("N10 G1\nN10 G2")

	codes := issueCodes(issues)
	if codes["DUP_LINE_NUMBER"] != 1 {
		t.Errorf("expected DUP_LINE_NUMBER, got %v", codes)
	}
}

func TestLint_BlockDeleteNote(t *testing.T) {
	issues := LintString("/G1 X1")

	codes := issueCodes(issues)
	if codes["BLOCK_DELETE"] != 1 {
		t.Errorf("expected BLOCK_DELETE note, got %v", codes)
	}

	// Disabled when the check is off
	opts := DefaultLintOptions()
	opts.CheckDeleted = false
	issues = NewLinter(opts).Lint("/G1 X1")
	if codes := issueCodes(issues); codes["BLOCK_DELETE"] != 0 {
		t.Errorf("expected no BLOCK_DELETE with check disabled, got %v", codes)
	}
}

func TestLint_StrictPromotesWarnings(t *testing.T) {
	opts := DefaultLintOptions()
	opts.Strict = true
	linter := NewLinter(opts)
	linter.Lint("@@ G1")

	if !linter.HasErrors() {
		t.Error("strict mode should treat warnings as errors")
	}
}

func TestLint_IssuesSortedByPosition(t *testing.T) {
	issues := LintString("99 G1 X1 X2\n@@")

	for i := 1; i < len(issues); i++ {
		if issues[i].Span.Start < issues[i-1].Span.Start {
			t.Errorf("issues out of order: %s before %s", issues[i-1], issues[i])
		}
	}
}
