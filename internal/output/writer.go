package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/processing"
)

// GameWriter writes analyzed games.
type GameWriter interface {
	// WriteGame writes one analysis; index is its position in the input.
	WriteGame(index int, ga *processing.GameAnalysis) error

	// Flush writes any buffered output.
	Flush() error

	// Close flushes and releases the writer.
	Close() error
}

// NewGameWriter returns the writer selected by cfg.Output.
func NewGameWriter(w io.Writer, cfg *config.Config) GameWriter {
	if cfg.Output.JSONLines {
		return NewJSONWriterSingle(w, cfg)
	}
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes a header line, the movetext and optionally the final
// FEN and board for each game.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteGame writes one game immediately.
func (tw *TextWriter) WriteGame(index int, ga *processing.GameAnalysis) error {
	fmt.Fprintf(tw.w, "Game %d: %s\n", index+1, ga.Summary())

	if ga.StartFEN != engine.InitialFEN {
		fmt.Fprintf(tw.w, "Start: %s\n", ga.StartFEN)
	}
	if len(ga.Moves) > 0 || ga.Err == nil {
		WriteMovetext(NewLineWriter(tw.w, DefaultLineLength), ga.Moves, tw.cfg.Output.Notation, ga.Outcome.Score())
	}
	if tw.cfg.Verbosity >= 2 {
		tw.writeStats(ga)
	}
	if tw.cfg.Output.ShowFEN && ga.FinalFEN != "" {
		fmt.Fprintf(tw.w, "FEN: %s\n", ga.FinalFEN)
	}
	if tw.cfg.Output.ShowBoard && ga.FinalFEN != "" {
		if pos, _, err := engine.ParseFEN(ga.FinalFEN); err == nil {
			WriteBoard(tw.w, pos)
		}
	}
	_, err := fmt.Fprintln(tw.w)
	return err
}

func (tw *TextWriter) writeStats(ga *processing.GameAnalysis) {
	captured := make(map[chess.Kind]int)
	for _, rec := range ga.Moves {
		if !rec.Captured.IsEmpty() {
			captured[rec.Captured.Kind]++
		}
	}
	fmt.Fprintf(tw.w, "Checks: %d  Captures: %d  Max repetitions: %d\n", ga.Checks, ga.Captures, ga.MaxRepetitions)
	for _, kind := range []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.Pawn} {
		if n := captured[kind]; n > 0 {
			fmt.Fprintf(tw.w, "  %s captured: %d\n", pieceName(chess.Piece{Kind: kind}), n)
		}
	}
	if ga.HasUnderpromotion {
		fmt.Fprintln(tw.w, "Underpromotion played")
	}
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error { return nil }

// Close closes the text writer.
func (tw *TextWriter) Close() error { return nil }

// JSONWriter writes games in JSON format. By default it buffers them and
// writes a single {"games": [...]} document on Flush or Close.
type JSONWriter struct {
	w      io.Writer
	cfg    *config.Config
	games  []*JSONGame
	single bool // write each game as its own document
}

// NewJSONWriter creates a batching JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately
// as one compact line.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg, single: true}
}

// WriteGame buffers a game, or writes it in single mode.
func (jw *JSONWriter) WriteGame(index int, ga *processing.GameAnalysis) error {
	jg := GameToJSON(index, ga, jw.cfg)
	if jw.single {
		return json.NewEncoder(jw.w).Encode(jg)
	}
	jw.games = append(jw.games, jg)
	return nil
}

// Flush writes all buffered games as one JSON document.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := encodeJSON(jw.w, &JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
