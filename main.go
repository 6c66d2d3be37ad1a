package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lookbusy1344/gcode-parser/api"
	"github.com/lookbusy1344/gcode-parser/config"
	"github.com/lookbusy1344/gcode-parser/inspector"
	"github.com/lookbusy1344/gcode-parser/parser"
	"github.com/lookbusy1344/gcode-parser/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"     // Version number (set by git tag at build time)
	Commit  = "unknown" // Git commit hash
	Date    = "unknown" // Build date
)

func main() {
	// Command-line flags
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
		configFile  = flag.String("config", "", "Config file path (default: platform config dir)")

		// Server mode
		apiServer = flag.Bool("api-server", false, "Start HTTP API server mode")
		apiPort   = flag.Int("port", 0, "API server port (default: from config)")

		// Interactive modes
		tuiMode = flag.Bool("tui", false, "Open the interactive TUI inspector")
		guiMode = flag.Bool("gui", false, "Open the graphical inspector")

		// Tool modes
		formatMode = flag.Bool("format", false, "Reformat the file and print the result")
		styleName  = flag.String("style", "", "Format style: default, compact, expanded")
		lintMode   = flag.Bool("lint", false, "Lint the file and report issues")
		strictMode = flag.Bool("strict", false, "Treat warnings as errors")
		xrefMode   = flag.Bool("xref", false, "Print a command cross-reference report")
		jsonOutput = flag.Bool("json", false, "Emit JSON output")
		outputFile = flag.String("output", "", "Write output to a file instead of stdout")
	)

	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("G-code parser %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	// Show help
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *strictMode {
		cfg.Lint.Strict = true
	}

	// Start API server mode if requested
	if *apiServer {
		port := cfg.API.Port
		if *apiPort != 0 {
			port = *apiPort
		}
		runAPIServer(port, cfg.API.MaxSourceSize)
		return
	}

	// Open the graphical inspector (file argument optional)
	if *guiMode {
		if err := inspector.RunGUI(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Inspector error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Open the TUI inspector (file argument optional)
	if *tuiMode {
		tui := inspector.NewTUI()
		if flag.NArg() > 0 {
			if err := tui.LoadFile(flag.Arg(0)); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
				os.Exit(1)
			}
		}
		if err := tui.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Inspector error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Everything else needs a G-code file
	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	gcodeFile := flag.Arg(0)
	content, err := os.ReadFile(gcodeFile) // #nosec G304 -- user-provided G-code file path
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	source := string(content)

	if *verboseMode {
		fmt.Printf("Parsing %s (%d bytes)\n", gcodeFile, len(source))
	}

	switch {
	case *formatMode:
		style := formatStyle(*styleName, cfg.Format.Style)
		output := tools.FormatStringWithStyle(source, style)
		writeOutput(*outputFile, output)

	case *lintMode:
		opts := &tools.LintOptions{
			Strict:          cfg.Lint.Strict,
			CheckLineOrder:  cfg.Lint.CheckLineOrder,
			CheckDuplicates: cfg.Lint.CheckDuplicates,
			CheckDeleted:    cfg.Lint.CheckDeleted,
		}
		linter := tools.NewLinter(opts)
		issues := linter.Lint(source)
		for _, issue := range issues {
			fmt.Println(issue)
		}
		if *verboseMode || len(issues) == 0 {
			fmt.Printf("%d issue(s) found\n", len(issues))
		}
		if linter.HasErrors() {
			os.Exit(1)
		}

	case *xrefMode:
		report := tools.NewXRefGenerator().Generate(source)
		if *jsonOutput {
			out, err := report.JSON()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			writeOutput(*outputFile, out+"\n")
		} else {
			writeOutput(*outputFile, report.String())
		}

	case *jsonOutput:
		lines, diags := parser.ParseString(source)
		data, err := json.MarshalIndent(api.ToParseResponse(lines, diags), "", cfg.Display.JSONIndent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		writeOutput(*outputFile, string(data)+"\n")

	default:
		exitCode := printSummary(source, cfg.Lint.Strict, *verboseMode)
		os.Exit(exitCode)
	}
}

// loadConfig loads the tool configuration
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runAPIServer starts the HTTP parse service and blocks until a shutdown
// signal arrives
func runAPIServer(port int, maxSourceSize int64) {
	server := api.NewServerWithVersion(port, Version)
	server.SetMaxSourceSize(maxSourceSize)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Shutdown runs once, on the first shutdown signal; a server error exits
	// the process directly
	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down API server...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("API server stopped")
			os.Exit(0)
		})
	}

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal (Ctrl+C or SIGTERM)
	<-sigChan
	performShutdown()
}

// printSummary parses the source and prints a per-line summary plus any
// diagnostics. Returns the process exit code.
func printSummary(source string, strict, verbose bool) int {
	lines, diags := parser.ParseString(source)

	for i := range lines {
		line := &lines[i]

		marker := " "
		if line.Deleted() {
			marker = "/"
		}
		fmt.Printf("%s%4d: %s\n", marker, line.Span().Line, line)

		if verbose {
			for _, gcode := range line.Gcodes() {
				fmt.Printf("        %-12s %s\n", gcode.String(), gcode.Span())
			}
		}
	}

	if diags.HasDiagnostics() {
		fmt.Fprintf(os.Stderr, "\n%d diagnostic(s):\n%s", diags.Len(), diags)
		if strict {
			return 1
		}
	}

	if verbose {
		fmt.Printf("\n%d line(s), %d diagnostic(s)\n", len(lines), diags.Len())
	}
	return 0
}

// formatStyle resolves the format style from the flag or config value
func formatStyle(flagValue, configValue string) tools.FormatStyle {
	name := flagValue
	if name == "" {
		name = configValue
	}
	switch name {
	case "compact":
		return tools.FormatCompact
	case "expanded":
		return tools.FormatExpanded
	default:
		return tools.FormatDefault
	}
}

// writeOutput writes tool output to a file or stdout
func writeOutput(path, content string) {
	if path == "" {
		fmt.Print(content)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`G-code parser - streaming parser and tooling for RS-274 G-code

Usage:
  gcode-parser [options] <file.gcode>

Modes:
  (default)          Parse the file and print a per-line summary
  -format            Reformat the file (-style default|compact|expanded)
  -lint              Report structural issues (-strict exits non-zero on warnings)
  -xref              Print a command cross-reference report (-json for JSON)
  -json              Dump the parse result as JSON
  -tui               Open the interactive terminal inspector
  -gui               Open the graphical inspector
  -api-server        Start the HTTP/WebSocket parse service (-port)

Options:
  -output <file>     Write tool output to a file instead of stdout
  -config <file>     Use a specific config file
  -verbose           Verbose output
  -version           Show version information
  -help              Show this help`)
}
