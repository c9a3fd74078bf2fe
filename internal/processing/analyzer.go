// Package processing replays move lists and analyzes the resulting games.
package processing

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
)

// Line is one game to analyze: an optional starting FEN and a move list.
type Line struct {
	FEN   string
	Moves []string
}

// MoveRecord describes one applied move.
type MoveRecord struct {
	Ply        int
	MoveNumber int
	Colour     chess.Colour
	SAN        string
	UCI        string
	Captured   chess.Piece
	FEN        string // position after the move
}

// GameAnalysis holds the results of replaying a line.
type GameAnalysis struct {
	StartFEN string
	FinalFEN string
	Moves    []MoveRecord
	Outcome  engine.Outcome

	Checks            int
	Captures          int
	HasUnderpromotion bool
	MaxRepetitions    int

	// Err is set when the line could not be replayed to the end; ErrorPly is
	// the 1-based ply of the rejected move (0 for a bad FEN).
	Err      error
	ErrorPly int
}

// Plies returns the number of moves replayed.
func (ga *GameAnalysis) Plies() int {
	return len(ga.Moves)
}

// Valid returns true if every move of the line was legal.
func (ga *GameAnalysis) Valid() bool {
	return ga.Err == nil
}

// ParseLine splits "[fen |] move move ..." into its parts. Move numbers
// ("12." or "12...") and result tokens are dropped, so PGN-like movetext
// works too.
func ParseLine(text string) Line {
	var line Line
	if i := strings.IndexByte(text, '|'); i >= 0 {
		line.FEN = strings.TrimSpace(text[:i])
		text = text[i+1:]
	}
	for _, tok := range strings.Fields(text) {
		tok = stripMoveNumber(tok)
		if tok == "" || isResult(tok) {
			continue
		}
		line.Moves = append(line.Moves, tok)
	}
	return line
}

// stripMoveNumber removes a leading "12." or "12..." from a token.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i == len(tok) || tok[i] != '.' {
		return tok
	}
	return strings.TrimLeft(tok[i:], ".")
}

func isResult(tok string) bool {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}

// AnalyzeLine replays a line and analyzes it. It stops at the first
// rejected move and reports the position reached so far.
func AnalyzeLine(line Line) *GameAnalysis {
	analysis := &GameAnalysis{StartFEN: line.FEN}

	tracker := game.NewTracker()
	if line.FEN != "" {
		var err error
		if tracker, err = game.NewTrackerFromFEN(line.FEN); err != nil {
			analysis.Err = err
			return analysis
		}
	}
	if analysis.StartFEN == "" {
		analysis.StartFEN = engine.InitialFEN
	}

	for _, text := range line.Moves {
		state := tracker.State()
		tr, san, err := tracker.Play(text)
		if err != nil {
			analysis.Err = errors.Wrapf(err, "move %d", state.Ply()+1)
			analysis.ErrorPly = state.Ply() + 1
			break
		}

		m := tr.Move
		analysis.Moves = append(analysis.Moves, MoveRecord{
			Ply:        tr.State.Ply(),
			MoveNumber: state.FullmoveNumber,
			Colour:     m.Piece.Colour,
			SAN:        san,
			UCI:        m.String(),
			Captured:   tr.Captured,
			FEN:        engine.ToFEN(tr.Position, tr.State),
		})
		if m.IsCapture() {
			analysis.Captures++
		}
		if engine.IsInCheck(tr.Position, tr.State.ToMove) {
			analysis.Checks++
		}
		if m.IsPromotion() && m.Promotion != chess.Queen {
			analysis.HasUnderpromotion = true
		}
		if n := tracker.RepetitionCount(); n > analysis.MaxRepetitions {
			analysis.MaxRepetitions = n
		}
	}

	if analysis.MaxRepetitions == 0 {
		analysis.MaxRepetitions = tracker.RepetitionCount()
	}
	analysis.FinalFEN = tracker.FEN()
	analysis.Outcome = tracker.Result()
	return analysis
}

// AnalyzeText is ParseLine followed by AnalyzeLine.
func AnalyzeText(text string) *GameAnalysis {
	return AnalyzeLine(ParseLine(text))
}

// Summary returns a one-line description of the analysis.
func (ga *GameAnalysis) Summary() string {
	if ga.Err != nil {
		return fmt.Sprintf("error after %d plies: %v", ga.Plies(), ga.Err)
	}
	return fmt.Sprintf("%d plies, %s", ga.Plies(), ga.Outcome)
}
