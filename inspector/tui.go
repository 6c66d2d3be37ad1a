package inspector

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// TUI represents the interactive text user interface of the inspector
type TUI struct {
	// Core components
	App   *tview.Application
	Pages *tview.Pages

	// Layout containers
	MainLayout *tview.Flex
	LeftPanel  *tview.Flex
	RightPanel *tview.Flex

	// View panels
	SourceView      *tview.TextView
	LinesView       *tview.TextView
	DiagnosticsView *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField

	// State
	FileName    string
	Source      string
	Lines       []parser.Line
	Diagnostics *parser.DiagnosticList
}

// NewTUI creates a new inspector interface
func NewTUI() *TUI {
	tui := &TUI{
		App: tview.NewApplication(),
	}

	tui.initializeViews()
	tui.buildLayout()
	tui.setupKeyBindings()

	return tui
}

// initializeViews creates all the view panels
func (t *TUI) initializeViews() {
	// Source View
	t.SourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.SourceView.SetBorder(true).SetTitle(" Source ")

	// Parsed Lines View
	t.LinesView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.LinesView.SetBorder(true).SetTitle(" Parsed Lines ")

	// Diagnostics View
	t.DiagnosticsView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	t.DiagnosticsView.SetBorder(true).SetTitle(" Diagnostics ")

	// Output View
	t.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	// Command Input
	t.CommandInput = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

// buildLayout constructs the TUI layout
func (t *TUI) buildLayout() {
	// Left panel: raw source
	t.LeftPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.SourceView, 0, 1, false)

	// Right panel: parsed lines over diagnostics
	t.RightPanel = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(t.LinesView, 0, 2, false).
		AddItem(t.DiagnosticsView, 0, 1, false)

	// Main content: left and right panels
	mainContent := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.LeftPanel, 0, 1, false).
		AddItem(t.RightPanel, 0, 1, false)

	// Main layout: content + output + command
	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 4, false).
		AddItem(t.OutputView, 6, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	// Create pages for potential dialogs/modals
	t.Pages = tview.NewPages().
		AddPage("main", t.MainLayout, true, true)
}

// setupKeyBindings sets up keyboard shortcuts
func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyF5:
			t.executeCommand("reload")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

// handleCommand processes command input
func (t *TUI) handleCommand(key tcell.Key) {
	if key == tcell.KeyEnter {
		cmd := t.CommandInput.GetText()
		if cmd != "" {
			t.executeCommand(cmd)
			t.CommandInput.SetText("")
		}
	}
}

// executeCommand executes an inspector command
func (t *TUI) executeCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "open", "o":
		if len(fields) < 2 {
			t.WriteOutput("[red]Usage:[white] open <file>\n")
			return
		}
		if err := t.LoadFile(fields[1]); err != nil {
			t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
			return
		}
		t.WriteOutput(fmt.Sprintf("Loaded %s: %d lines, %d diagnostics\n",
			t.FileName, len(t.Lines), t.Diagnostics.Len()))

	case "reload", "r":
		if t.FileName == "" {
			t.WriteOutput("[red]Error:[white] no file loaded\n")
			return
		}
		if err := t.LoadFile(t.FileName); err != nil {
			t.WriteOutput(fmt.Sprintf("[red]Error:[white] %v\n", err))
			return
		}
		t.WriteOutput("Reloaded\n")

	case "goto", "g":
		if len(fields) < 2 {
			t.WriteOutput("[red]Usage:[white] goto <line>\n")
			return
		}
		var lineNum int
		if _, err := fmt.Sscanf(fields[1], "%d", &lineNum); err != nil {
			t.WriteOutput(fmt.Sprintf("[red]Error:[white] invalid line number %q\n", fields[1]))
			return
		}
		t.SourceView.ScrollTo(lineNum, 0)
		t.LinesView.ScrollTo(lineNum, 0)

	case "help", "h", "?":
		t.WriteOutput(helpText)

	case "quit", "q", "exit":
		t.App.Stop()

	default:
		t.WriteOutput(fmt.Sprintf("[red]Unknown command:[white] %s (try help)\n", fields[0]))
	}
}

const helpText = `Commands:
  open <file>   load and parse a G-code file
  reload        re-parse the current file
  goto <line>   scroll the source and line views
  help          show this help
  quit          exit the inspector
Keys: F1 help, F5 reload, Ctrl-L refresh, Ctrl-C quit
`

// LoadFile loads and parses a G-code file
func (t *TUI) LoadFile(path string) error {
	lines, diags, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	content, err := readSource(path)
	if err != nil {
		return err
	}

	t.FileName = path
	t.Source = content
	t.Lines = lines
	t.Diagnostics = diags
	t.RefreshAll()
	return nil
}

// LoadSource parses in-memory source text
func (t *TUI) LoadSource(name, source string) {
	lines, diags := parser.ParseString(source)

	t.FileName = name
	t.Source = source
	t.Lines = lines
	t.Diagnostics = diags
	t.RefreshAll()
}

// RefreshAll redraws every panel
func (t *TUI) RefreshAll() {
	t.refreshSource()
	t.refreshLines()
	t.refreshDiagnostics()
}

// refreshSource redraws the raw source panel, highlighting lines that carry
// diagnostics
func (t *TUI) refreshSource() {
	flagged := make(map[int]bool)
	if t.Diagnostics != nil {
		for _, d := range t.Diagnostics.Diagnostics {
			flagged[d.Span.Line] = true
		}
	}

	var sb strings.Builder
	for i, line := range strings.Split(t.Source, "\n") {
		color := "[white]"
		if flagged[i] {
			color = "[red]"
		}
		sb.WriteString(fmt.Sprintf("%s%4d: %s[-]\n", color, i, tview.Escape(line)))
	}
	t.SourceView.SetText(sb.String())
}

// refreshLines redraws the parsed-line panel
func (t *TUI) refreshLines() {
	var sb strings.Builder
	for i := range t.Lines {
		line := &t.Lines[i]
		color := "[green]"
		if line.Deleted() {
			color = "[yellow]"
		}
		sb.WriteString(fmt.Sprintf("%s%4d: %s[-]\n", color, line.Span().Line, tview.Escape(line.String())))
		for _, g := range line.Gcodes() {
			sb.WriteString(fmt.Sprintf("        [blue]%s[-]  (%s)\n", tview.Escape(g.String()), g.Span()))
		}
	}
	t.LinesView.SetText(sb.String())
}

// refreshDiagnostics redraws the diagnostics panel
func (t *TUI) refreshDiagnostics() {
	if t.Diagnostics == nil || !t.Diagnostics.HasDiagnostics() {
		t.DiagnosticsView.SetText("[green]No diagnostics[-]")
		return
	}

	var sb strings.Builder
	for _, d := range t.Diagnostics.Diagnostics {
		sb.WriteString(fmt.Sprintf("[red]%s[-]: %s\n", d.Kind, tview.Escape(d.Message)))
		sb.WriteString(fmt.Sprintf("        at %s\n", d.Span))
	}
	t.DiagnosticsView.SetText(sb.String())
}

// WriteOutput appends text to the output panel
func (t *TUI) WriteOutput(text string) {
	fmt.Fprint(t.OutputView, text)
}

// Run starts the interface and blocks until it exits
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Pages, true).EnableMouse(true).Run()
}
