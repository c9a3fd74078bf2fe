package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/processing"
)

// JSONGame is the JSON form of an analyzed line.
type JSONGame struct {
	Index     int        `json:"index"`
	StartFEN  string     `json:"startFEN"`
	FinalFEN  string     `json:"finalFEN,omitempty"`
	Moves     []JSONMove `json:"moves"`
	PlyCount  int        `json:"plyCount"`
	Result    string     `json:"result"`
	Cause     string     `json:"cause,omitempty"`
	Checks    int        `json:"checks"`
	Captures  int        `json:"captures"`
	MaxRepeat int        `json:"maxRepetitions"`
	Error     string     `json:"error,omitempty"`
	ErrorPly  int        `json:"errorPly,omitempty"`
}

// JSONMove is the JSON form of one move.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"`
	Move       string `json:"move"`
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	Captured   string `json:"captured,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts an analysis. Move is the move in the configured
// notation; per-move FENs are included when cfg.Output.ShowFEN is set.
func GameToJSON(index int, ga *processing.GameAnalysis, cfg *config.Config) *JSONGame {
	jg := &JSONGame{
		Index:     index,
		StartFEN:  ga.StartFEN,
		FinalFEN:  ga.FinalFEN,
		Moves:     make([]JSONMove, 0, len(ga.Moves)),
		PlyCount:  ga.Plies(),
		Result:    ga.Outcome.Score(),
		Checks:    ga.Checks,
		Captures:  ga.Captures,
		MaxRepeat: ga.MaxRepetitions,
	}
	if ga.Outcome.Over {
		jg.Cause = ga.Outcome.Cause.String()
	}
	if ga.Err != nil {
		jg.Error = ga.Err.Error()
		jg.ErrorPly = ga.ErrorPly
	}

	for _, rec := range ga.Moves {
		jm := JSONMove{
			MoveNumber: rec.MoveNumber,
			Color:      strings.ToLower(rec.Colour.String()),
			Move:       MoveText(rec, cfg.Output.Notation),
			SAN:        rec.SAN,
			UCI:        rec.UCI,
		}
		if !rec.Captured.IsEmpty() {
			jm.Captured = pieceName(rec.Captured)
		}
		if cfg.Output.ShowFEN {
			jm.FEN = rec.FEN
		}
		jg.Moves = append(jg.Moves, jm)
	}
	return jg
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// pieceName returns e.g. "pawn", or "" for no piece.
func pieceName(p chess.Piece) string {
	if p.IsEmpty() {
		return ""
	}
	return strings.ToLower(p.Kind.String())
}
