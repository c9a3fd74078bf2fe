// chessrules validates, plays and analyzes chess games under the FIDE Laws.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	closeLog := setupLogFile(cfg)
	defer closeLog()
	closeOutput := setupOutputFile(cfg)
	defer closeOutput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := dispatch(ctx, cfg, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeOutput()
		closeLog()
		os.Exit(1)
	}
}

// dispatch runs one subcommand.
func dispatch(ctx context.Context, cfg *config.Config, command string, args []string) error {
	switch command {
	case "legal":
		return runLegal(cfg, args)
	case "perft":
		return runPerft(cfg)
	case "analyze":
		return runAnalyzeFiles(ctx, cfg, args)
	case "play":
		return runPlay(cfg)
	default:
		return fmt.Errorf("unknown command %q (want legal, perft, analyze or play)", command)
	}
}

// setupLogFile points cfg.LogFile at the -l file and returns its closer.
func setupLogFile(cfg *config.Config) func() {
	if *logFile == "" {
		return func() {}
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
	return closer(file)
}

// setupOutputFile points cfg.OutputFile at the -o file and returns its closer.
func setupOutputFile(cfg *config.Config) func() {
	if *outputFile == "" {
		return func() {}
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	return closer(file)
}

// closer returns a function that closes c at most once.
func closer(c io.Closer) func() {
	closed := false
	return func() {
		if !closed {
			closed = true
			c.Close() //nolint:errcheck // best effort on exit
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `chessrules %s - chess rules engine

Usage: chessrules [options] <command> [args]

Commands:
  legal [square]      List legal moves of the -fen position, or of one piece
  perft               Count move-tree leaves to -depth (with -divide per move)
  analyze [files...]  Replay game lines ("[fen |] moves...") from files or stdin
  play                Interactive session

Options:
`, programVersion)
	flag.PrintDefaults()
}
