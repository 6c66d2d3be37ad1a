package inspector

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/lookbusy1344/gcode-parser/parser"
)

// GUI represents the graphical inspector window
type GUI struct {
	// Core components
	App    fyne.App
	Window fyne.Window

	// View panels
	SourceView      *widget.TextGrid
	LinesView       *widget.TextGrid
	DiagnosticsList *widget.List
	StatusLabel     *widget.Label

	// Controls
	Toolbar *widget.Toolbar

	// State
	FileName    string
	Source      string
	Lines       []parser.Line
	Diagnostics *parser.DiagnosticList

	// Diagnostics data for the list widget
	diagnosticRows []string
}

// RunGUI opens the graphical inspector, optionally preloading a file
func RunGUI(path string) error {
	gui := newGUI()
	if path != "" {
		if err := gui.LoadFile(path); err != nil {
			return err
		}
	}
	gui.Window.ShowAndRun()
	return nil
}

// newGUI creates a new graphical inspector
func newGUI() *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("G-code Inspector")

	gui := &GUI{
		App:            myApp,
		Window:         myWindow,
		diagnosticRows: []string{},
	}

	gui.initializeViews()
	gui.setupToolbar()
	gui.buildLayout()

	// Set window size
	myWindow.Resize(fyne.NewSize(1200, 800))

	return gui
}

// initializeViews creates all the view panels
func (g *GUI) initializeViews() {
	// Source view
	g.SourceView = widget.NewTextGrid()
	g.SourceView.SetText("No file loaded")

	// Parsed lines view
	g.LinesView = widget.NewTextGrid()
	g.LinesView.SetText("")

	// Diagnostics list
	g.DiagnosticsList = widget.NewList(
		func() int {
			return len(g.diagnosticRows)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.diagnosticRows[id])
		},
	)

	// Status label
	g.StatusLabel = widget.NewLabel("Ready")
}

// setupToolbar creates the inspector toolbar
func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			g.openFileDialog()
		}),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			g.reload()
		}),
	)
}

// buildLayout creates the main layout
func (g *GUI) buildLayout() {
	sourcePanel := container.NewBorder(
		widget.NewLabel("Source"),
		nil, nil, nil,
		container.NewScroll(g.SourceView),
	)

	linesPanel := container.NewBorder(
		widget.NewLabel("Parsed Lines"),
		nil, nil, nil,
		container.NewScroll(g.LinesView),
	)

	diagnosticsPanel := container.NewBorder(
		widget.NewLabel("Diagnostics"),
		nil, nil, nil,
		container.NewScroll(g.DiagnosticsList),
	)

	// Right side: parsed lines over diagnostics
	rightPanel := container.NewVSplit(linesPanel, diagnosticsPanel)
	rightPanel.SetOffset(0.65)

	// Main split: source on the left, parse results on the right
	mainSplit := container.NewHSplit(sourcePanel, rightPanel)
	mainSplit.SetOffset(0.5)

	// Add status bar at bottom
	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)

	content := container.NewBorder(
		g.Toolbar, // top
		statusBar, // bottom
		nil,       // left
		nil,       // right
		mainSplit, // center
	)

	g.Window.SetContent(content)
}

// openFileDialog shows the file picker and loads the chosen file
func (g *GUI) openFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if err := g.LoadFile(reader.URI().Path()); err != nil {
			dialog.ShowError(err, g.Window)
		}
	}, g.Window)
}

// reload re-parses the current file
func (g *GUI) reload() {
	if g.FileName == "" {
		g.StatusLabel.SetText("No file loaded")
		return
	}
	if err := g.LoadFile(g.FileName); err != nil {
		dialog.ShowError(err, g.Window)
	}
}

// LoadFile loads and parses a G-code file
func (g *GUI) LoadFile(path string) error {
	lines, diags, err := parser.ParseFile(path)
	if err != nil {
		return err
	}

	content, err := readSource(path)
	if err != nil {
		return err
	}

	g.FileName = path
	g.Source = content
	g.Lines = lines
	g.Diagnostics = diags
	g.updateViews()
	return nil
}

// updateViews refreshes all view panels
func (g *GUI) updateViews() {
	g.updateSource()
	g.updateLines()
	g.updateDiagnostics()
	g.updateStatus()
}

// updateSource updates the source code view
func (g *GUI) updateSource() {
	var sb strings.Builder
	for i, line := range strings.Split(g.Source, "\n") {
		sb.WriteString(fmt.Sprintf("%4d: %s\n", i, line))
	}
	g.SourceView.SetText(sb.String())
}

// updateLines updates the parsed-line view
func (g *GUI) updateLines() {
	var sb strings.Builder
	for i := range g.Lines {
		line := &g.Lines[i]
		marker := "  "
		if line.Deleted() {
			marker = "/ "
		}
		sb.WriteString(fmt.Sprintf("%s%4d: %s\n", marker, line.Span().Line, line))
	}
	g.LinesView.SetText(sb.String())
}

// updateDiagnostics updates the diagnostics list
func (g *GUI) updateDiagnostics() {
	g.diagnosticRows = g.diagnosticRows[:0]
	if g.Diagnostics != nil {
		for _, d := range g.Diagnostics.Diagnostics {
			g.diagnosticRows = append(g.diagnosticRows, d.String())
		}
	}
	g.DiagnosticsList.Refresh()
}

// updateStatus updates the status bar
func (g *GUI) updateStatus() {
	diagCount := 0
	if g.Diagnostics != nil {
		diagCount = g.Diagnostics.Len()
	}
	g.StatusLabel.SetText(fmt.Sprintf("%s: %d lines, %d diagnostics",
		g.FileName, len(g.Lines), diagCount))
}
