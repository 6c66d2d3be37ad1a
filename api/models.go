package api

import (
	"github.com/lookbusy1344/gcode-parser/parser"
)

// ParseRequest represents a request to parse G-code source
type ParseRequest struct {
	Source string `json:"source"` // G-code source text
}

// ParseResponse represents the result of parsing a program
type ParseResponse struct {
	Lines       []LineInfo       `json:"lines"`
	Diagnostics []DiagnosticInfo `json:"diagnostics"`
}

// SpanInfo identifies a source region: half-open byte offsets plus the
// 0-based logical line the region starts on
type SpanInfo struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Line  int `json:"line"`
}

// LineInfo represents one logical line
type LineInfo struct {
	LineNumber *uint32       `json:"lineNumber,omitempty"` // Explicit N line number
	Deleted    bool          `json:"deleted"`              // Leading block-delete /
	Gcodes     []GcodeInfo   `json:"gcodes"`
	Comments   []CommentInfo `json:"comments"`
	Span       SpanInfo      `json:"span"`
}

// GcodeInfo represents one command
type GcodeInfo struct {
	Mnemonic  string             `json:"mnemonic"` // "G", "M", "T" or "O"
	Number    float32            `json:"number"`   // As written without sign, e.g. 38.2
	Major     uint32             `json:"major"`
	Minor     uint32             `json:"minor"`
	Arguments map[string]float32 `json:"arguments"`
	Span      SpanInfo           `json:"span"`
}

// CommentInfo represents one comment
type CommentInfo struct {
	Text string   `json:"text"`
	Span SpanInfo `json:"span"`
}

// DiagnosticInfo represents one parse diagnostic
type DiagnosticInfo struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Span    SpanInfo `json:"span"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Event represents a WebSocket parse event
type Event struct {
	Type        string          `json:"type"` // "line", "diagnostic", "done" or "error"
	Line        *LineInfo       `json:"line,omitempty"`
	Diagnostic  *DiagnosticInfo `json:"diagnostic,omitempty"`
	Lines       int             `json:"lines,omitempty"`
	Diagnostics int             `json:"diagnostics,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// ToSpanInfo converts a parser span to the wire shape
func ToSpanInfo(span parser.Span) SpanInfo {
	return SpanInfo{
		Start: span.Start,
		End:   span.End,
		Line:  span.Line,
	}
}

// ToGcodeInfo converts a parsed command to the wire shape
func ToGcodeInfo(g *parser.GCode) GcodeInfo {
	args := make(map[string]float32, len(g.Arguments()))
	for _, arg := range g.Arguments() {
		args[string(rune(arg.Letter))] = arg.Value
	}
	return GcodeInfo{
		Mnemonic:  g.Mnemonic().String(),
		Number:    g.Number(),
		Major:     g.Major(),
		Minor:     g.Minor(),
		Arguments: args,
		Span:      ToSpanInfo(g.Span()),
	}
}

// ToLineInfo converts a parsed line to the wire shape
func ToLineInfo(line *parser.Line) LineInfo {
	info := LineInfo{
		Deleted:  line.Deleted(),
		Gcodes:   make([]GcodeInfo, 0, len(line.Gcodes())),
		Comments: make([]CommentInfo, 0, len(line.Comments())),
		Span:     ToSpanInfo(line.Span()),
	}

	if n, ok := line.LineNumber(); ok {
		info.LineNumber = &n
	}

	gcodes := line.Gcodes()
	for i := range gcodes {
		info.Gcodes = append(info.Gcodes, ToGcodeInfo(&gcodes[i]))
	}
	for _, comment := range line.Comments() {
		info.Comments = append(info.Comments, CommentInfo{
			Text: comment.Text,
			Span: ToSpanInfo(comment.Span),
		})
	}
	return info
}

// ToDiagnosticInfo converts a recorded diagnostic to the wire shape
func ToDiagnosticInfo(d *parser.Diagnostic) DiagnosticInfo {
	return DiagnosticInfo{
		Kind:    d.Kind.String(),
		Message: d.Message,
		Span:    ToSpanInfo(d.Span),
	}
}

// ToParseResponse converts a full parse result to the wire shape
func ToParseResponse(lines []parser.Line, diags *parser.DiagnosticList) *ParseResponse {
	resp := &ParseResponse{
		Lines:       make([]LineInfo, 0, len(lines)),
		Diagnostics: make([]DiagnosticInfo, 0, diags.Len()),
	}
	for i := range lines {
		resp.Lines = append(resp.Lines, ToLineInfo(&lines[i]))
	}
	for _, d := range diags.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, ToDiagnosticInfo(d))
	}
	return resp
}
