package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// startPosition returns the -fen position or the standard setup.
func startPosition(cfg *config.Config) (chess.Position, engine.GameState, error) {
	if cfg.StartFEN == "" {
		return engine.InitialPosition(), engine.InitialGameState(), nil
	}
	return engine.ParseFEN(cfg.StartFEN)
}

// moveTexts renders moves in the configured notation.
func moveTexts(cfg *config.Config, pos chess.Position, state engine.GameState, moves []chess.Move) []string {
	texts := make([]string, len(moves))
	for i, m := range moves {
		if cfg.Output.Notation == config.UCI {
			texts[i] = m.String()
		} else {
			texts[i] = engine.MoveNotation(pos, state, m)
		}
	}
	return texts
}

// legalReport is the JSON form of the legal command.
type legalReport struct {
	FEN      string   `json:"fen"`
	Square   string   `json:"square,omitempty"`
	MustMove *bool    `json:"mustMove,omitempty"`
	Moves    []string `json:"moves"`
	InCheck  bool     `json:"inCheck"`
	CheckBy  []string `json:"checkedBy,omitempty"`
	Result   string   `json:"result"`
}

// runLegal lists the legal moves of the side to move, or of the piece on
// the square given as the only argument.
func runLegal(cfg *config.Config, args []string) error {
	pos, state, err := startPosition(cfg)
	if err != nil {
		return err
	}

	report := legalReport{
		FEN:     engine.ToFEN(pos, state),
		InCheck: engine.IsInCheck(pos, state.ToMove),
		Result:  engine.GetGameResult(pos, state.ToMove, state).String(),
	}

	if report.InCheck {
		king := pos.FindKing(state.ToMove)
		for _, sq := range engine.Attackers(pos, king, state.ToMove.Opposite()) {
			report.CheckBy = append(report.CheckBy, sq.String())
		}
	}

	var moves []chess.Move
	switch len(args) {
	case 0:
		moves = engine.LegalMoves(pos, state.ToMove, state)
	case 1:
		sq, err := chess.ParseSquare(args[0])
		if err != nil {
			return err
		}
		tm := engine.ValidateTouchMove(pos, state, sq, chess.NoSquare)
		moves = tm.LegalMoves
		report.Square = sq.String()
		report.MustMove = &tm.MustMove
	default:
		return fmt.Errorf("legal takes at most one square, got %d arguments", len(args))
	}
	report.Moves = moveTexts(cfg, pos, state, moves)

	w := cfg.OutputFile
	if cfg.Output.JSONFormat {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if cfg.Output.ShowBoard {
		output.WriteBoard(w, pos)
	}
	if cfg.Output.ShowFEN {
		fmt.Fprintf(w, "FEN: %s\n", report.FEN)
	}
	if report.Square != "" {
		fmt.Fprintf(w, "%s: %d legal moves (must move: %t)\n", report.Square, len(moves), *report.MustMove)
	} else {
		fmt.Fprintf(w, "%s to move: %d legal moves\n", state.ToMove, len(moves))
	}
	lw := output.NewLineWriter(w, output.DefaultLineLength)
	for _, text := range report.Moves {
		lw.Write(text)
	}
	lw.NewLine()
	if report.InCheck {
		fmt.Fprintf(w, "In check from %s\n", strings.Join(report.CheckBy, ", "))
	}
	if report.Result != engine.Ongoing.String() {
		fmt.Fprintf(w, "Game over: %s\n", report.Result)
	}
	return nil
}

// perftReport is the JSON form of the perft command.
type perftReport struct {
	FEN    string            `json:"fen"`
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide,omitempty"`
}

// runPerft counts the leaves of the move tree to cfg.Analysis.PerftDepth.
func runPerft(cfg *config.Config) error {
	pos, state, err := startPosition(cfg)
	if err != nil {
		return err
	}
	depth := cfg.Analysis.PerftDepth
	report := perftReport{FEN: engine.ToFEN(pos, state), Depth: depth}

	start := time.Now()
	if cfg.Analysis.Divide && depth > 0 {
		report.Divide = engine.PerftDivide(pos, state, depth)
		for _, n := range report.Divide {
			report.Nodes += n
		}
	} else {
		report.Nodes = engine.Perft(pos, state, depth)
	}
	cfg.Logf(1, "perft(%d) took %v", depth, time.Since(start).Round(time.Millisecond))

	w := cfg.OutputFile
	if cfg.Output.JSONFormat {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	keys := make([]string, 0, len(report.Divide))
	for k := range report.Divide {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %d\n", k, report.Divide[k])
	}
	fmt.Fprintf(w, "Nodes: %d\n", report.Nodes)
	return nil
}

// runAnalyzeFiles reads game lines from the named files, or stdin when
// none are given, and analyzes them.
func runAnalyzeFiles(ctx context.Context, cfg *config.Config, paths []string) error {
	if len(paths) == 0 {
		lines, err := readLines(os.Stdin, cfg.StartFEN)
		if err != nil {
			return err
		}
		return runAnalyze(ctx, cfg, lines)
	}

	var lines []string
	for _, path := range paths {
		file, err := os.Open(path) //nolint:gosec // G304: user-supplied input file
		if err != nil {
			return err
		}
		more, err := readLines(file, cfg.StartFEN)
		file.Close() //nolint:errcheck // read-only
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		cfg.Logf(2, "%s: %d games", path, len(more))
		lines = append(lines, more...)
	}
	return runAnalyze(ctx, cfg, lines)
}

// readLines returns the non-blank, non-comment lines of r. Lines without
// their own FEN start from defaultFEN when it is set.
func readLines(r io.Reader, defaultFEN string) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if defaultFEN != "" && !strings.Contains(line, "|") {
			line = defaultFEN + " | " + line
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// runAnalyze replays lines on the worker pool and writes the reports in
// input order.
func runAnalyze(ctx context.Context, cfg *config.Config, lines []string) error {
	n := cfg.Analysis.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	results := worker.Run(ctx, lines, cfg.Analysis.StopOnError,
		worker.WithWorkers(n),
		worker.WithBufferSize(cfg.Analysis.BufferSize),
	)

	gw := output.NewGameWriter(cfg.OutputFile, cfg)
	valid, rejected, skipped := 0, 0, 0
	for _, r := range results {
		if r.Skipped {
			skipped++
			continue
		}
		if r.Analysis.Valid() {
			valid++
		} else {
			rejected++
			cfg.Logf(1, "game %d: %v", r.Index+1, r.Analysis.Err)
		}
		if err := gw.WriteGame(r.Index, r.Analysis); err != nil {
			return err
		}
	}
	if err := gw.Close(); err != nil {
		return err
	}

	cfg.Logf(1, "%d games: %d valid, %d rejected, %d skipped", len(lines), valid, rejected, skipped)
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
