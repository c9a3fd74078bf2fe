package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Cause is the reason a game ended.
type Cause int

const (
	NoCause Cause = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	InsufficientMaterial
	ThreefoldRepetition
)

// String returns the string representation of a cause.
func (c Cause) String() string {
	switch c {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty-move"
	case InsufficientMaterial:
		return "insufficient-material"
	case ThreefoldRepetition:
		return "threefold-repetition"
	default:
		return "none"
	}
}

// Outcome is the state of a game: ongoing, or over with a cause.
// Winner is set only for checkmate.
type Outcome struct {
	Over   bool
	Cause  Cause
	Winner *chess.Colour
}

// Ongoing is the outcome of a game still in progress.
var Ongoing = Outcome{}

// IsDraw returns true for a finished game without a winner.
func (o Outcome) IsDraw() bool {
	return o.Over && o.Winner == nil
}

// Score renders the PGN result: "1-0", "0-1", "1/2-1/2" or "*".
func (o Outcome) Score() string {
	switch {
	case !o.Over:
		return "*"
	case o.Winner == nil:
		return "1/2-1/2"
	case *o.Winner == chess.White:
		return "1-0"
	default:
		return "0-1"
	}
}

// String returns e.g. "1-0 (checkmate)" or "ongoing".
func (o Outcome) String() string {
	if !o.Over {
		return "ongoing"
	}
	return o.Score() + " (" + o.Cause.String() + ")"
}

func won(colour chess.Colour) Outcome {
	return Outcome{Over: true, Cause: Checkmate, Winner: &colour}
}

func drawn(cause Cause) Outcome {
	return Outcome{Over: true, Cause: cause}
}

// GetGameResult reports whether the game is over with colour to move.
// Checkmate and stalemate take precedence over insufficient material, which
// takes precedence over the fifty-move rule and then threefold repetition.
func GetGameResult(pos chess.Position, colour chess.Colour, state GameState) Outcome {
	if o := boardResult(pos, colour, state); o.Over {
		return o
	}
	if IsFiftyMoveDraw(state) {
		return drawn(FiftyMoveRule)
	}
	if IsThreefoldRepetition(state) {
		return drawn(ThreefoldRepetition)
	}
	return Ongoing
}

// ResultWithRepetitions is GetGameResult for callers that track repetition
// counts themselves; occurrences is the highest count of any position.
func ResultWithRepetitions(pos chess.Position, colour chess.Colour, state GameState, occurrences int) Outcome {
	if o := boardResult(pos, colour, state); o.Over {
		return o
	}
	if IsFiftyMoveDraw(state) {
		return drawn(FiftyMoveRule)
	}
	if occurrences >= RepetitionLimit {
		return drawn(ThreefoldRepetition)
	}
	return Ongoing
}

// boardResult checks the conditions decided by the board alone.
func boardResult(pos chess.Position, colour chess.Colour, state GameState) Outcome {
	if !HasLegalMoves(pos, colour, state) {
		if IsInCheck(pos, colour) {
			return won(colour.Opposite())
		}
		return drawn(Stalemate)
	}
	if HasInsufficientMaterial(pos) {
		return drawn(InsufficientMaterial)
	}
	return Ongoing
}
