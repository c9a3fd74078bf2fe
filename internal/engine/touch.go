package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// TouchMove answers a touch-move query for a selected piece and target.
type TouchMove struct {
	Valid      bool         // the target is a legal destination of the piece
	MustMove   bool         // the piece has at least one legal move
	LegalMoves []chess.Move // every legal move of the piece
}

// ValidateTouchMove reports whether the piece on from may move to to and
// whether touching it obliges the player to move it. Touching an empty
// square or a piece of the side not to move carries no obligation.
func ValidateTouchMove(pos chess.Position, state GameState, from, to chess.Square) TouchMove {
	if !pos.OccupiedBy(from, state.ToMove) {
		return TouchMove{}
	}
	moves := LegalMovesFrom(pos, from, state)
	tm := TouchMove{MustMove: len(moves) > 0, LegalMoves: moves}
	for _, m := range moves {
		if m.To == to {
			tm.Valid = true
			break
		}
	}
	return tm
}

// CheckTouchMove rejects m if the player touched a different piece that
// has a legal move. touched is NoSquare when nothing was touched.
func CheckTouchMove(pos chess.Position, state GameState, touched chess.Square, m chess.Move) error {
	if touched == chess.NoSquare || touched == m.From {
		return nil
	}
	if !ValidateTouchMove(pos, state, touched, chess.NoSquare).MustMove {
		return nil
	}
	err := errors.Illegal(m.From, m.To, fmt.Errorf("touched piece on %s must be moved", touched))
	err.Ply = state.Ply() + 1
	return err
}
