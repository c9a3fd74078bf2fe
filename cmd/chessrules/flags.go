// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Position
	startFEN = flag.String("fen", "", "Starting position as FEN (default: standard setup)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	notation   = flag.String("notation", "san", "Move notation: san or uci")
	jsonOutput = flag.Bool("J", false, "Output in JSON format")
	jsonLines  = flag.Bool("jsonl", false, "analyze: write one JSON line per game (implies -J)")
	showBoard  = flag.Bool("board", false, "Print a board diagram")
	noFEN      = flag.Bool("nofen", false, "Don't print FEN strings in reports")

	// Analysis
	workers     = flag.Int("workers", 0, "Worker goroutines for analyze (0 = one per CPU)")
	bufferSize  = flag.Int("buffer", 64, "Channel buffer size for analyze")
	stopOnError = flag.Bool("stoponerror", false, "Stop analyze at the first illegal line")

	// Perft
	perftDepth = flag.Int("depth", 3, "Perft depth")
	divide     = flag.Bool("divide", false, "Print perft counts per root move")

	// Interactive play
	historyFile = flag.String("history", "", "REPL history file")
	prompt      = flag.String("prompt", "chess> ", "REPL prompt")
	touchMove   = flag.Bool("touchmove", false, "Enforce the touch-move rule in play")
	noColour    = flag.Bool("nocolour", false, "Disable coloured board output")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	quiet     = flag.Bool("s", false, "Silent mode: no diagnostics")
	verbosity = flag.Int("verbose", 1, "Diagnostic level 0-2")

	// Help and version
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies flag values into cfg and validates the result.
func applyFlags(cfg *config.Config) error {
	n, err := config.ParseNotation(*notation)
	if err != nil {
		return err
	}

	cfg.StartFEN = *startFEN
	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}

	cfg.Output.Notation = n
	cfg.Output.JSONFormat = *jsonOutput || *jsonLines
	cfg.Output.JSONLines = *jsonLines
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowFEN = !*noFEN

	cfg.Analysis.Workers = *workers
	cfg.Analysis.BufferSize = *bufferSize
	cfg.Analysis.StopOnError = *stopOnError
	cfg.Analysis.PerftDepth = *perftDepth
	cfg.Analysis.Divide = *divide

	cfg.Play.HistoryFile = *historyFile
	cfg.Play.Prompt = *prompt
	cfg.Play.TouchMove = *touchMove
	cfg.Play.Colour = !*noColour

	return cfg.Validate()
}
