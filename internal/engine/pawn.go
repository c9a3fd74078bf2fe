package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMoves generates pushes, double pushes, captures, en passant and promotions.
func pawnMoves(pos chess.Position, from chess.Square, colour chess.Colour, state GameState) []chess.Move {
	var moves []chess.Move
	pawn := chess.Piece{Colour: colour, Kind: chess.Pawn}
	dir := chess.ColourOffset(colour)

	// Forward move
	one := from.Offset(0, dir)
	if one.Valid() && !pos.Occupied(one) {
		moves = appendPawnMove(moves, pos, from, one, pawn, chess.PawnMove)

		// Double push from starting rank
		if from.Rank() == chess.PawnStartRank(colour) {
			two := from.Offset(0, 2*dir)
			if two.Valid() && !pos.Occupied(two) {
				moves = append(moves, newMove(pos, from, two, pawn, chess.PawnDoublePush))
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		to := from.Offset(df, dir)
		if !to.Valid() {
			continue
		}
		switch {
		case pos.OccupiedBy(to, colour.Opposite()):
			moves = appendPawnMove(moves, pos, from, to, pawn, chess.PawnMove)
		case canCaptureEnPassant(pos, to, colour, state):
			m := newMove(pos, from, to, pawn, chess.EnPassantPawnMove)
			m.Captured = pos.At(enPassantVictim(to, colour))
			moves = append(moves, m)
		}
	}

	return moves
}

// appendPawnMove appends a pawn move, expanding it into one move per
// promotion kind when it reaches the last rank.
func appendPawnMove(moves []chess.Move, pos chess.Position, from, to chess.Square, pawn chess.Piece, class chess.MoveClass) []chess.Move {
	if to.Rank() != chess.PromotionRank(pawn.Colour) {
		return append(moves, newMove(pos, from, to, pawn, class))
	}
	for _, kind := range chess.PromotionKinds {
		m := newMove(pos, from, to, pawn, chess.PawnMoveWithPromotion)
		m.Promotion = kind
		moves = append(moves, m)
	}
	return moves
}

// canCaptureEnPassant reports whether a pawn of colour may capture onto the
// empty square to en passant. The target only belongs to the side to move,
// must lie on the square a double push passes over, and the pawn that made
// that push must still be there.
func canCaptureEnPassant(pos chess.Position, to chess.Square, colour chess.Colour, state GameState) bool {
	if state.EnPassant != to || state.ToMove != colour || pos.Occupied(to) {
		return false
	}
	enemy := colour.Opposite()
	if to.Rank() != chess.PawnStartRank(enemy)+chess.ColourOffset(enemy) {
		return false
	}
	return pos.At(enPassantVictim(to, colour)) == chess.Piece{Colour: enemy, Kind: chess.Pawn}
}

// enPassantVictim returns the square of the pawn captured en passant by a
// pawn of colour landing on target.
func enPassantVictim(target chess.Square, colour chess.Colour) chess.Square {
	return target.Offset(0, -chess.ColourOffset(colour))
}

// enPassantSquare returns the square passed over by a double push, or NoSquare.
func enPassantSquare(m chess.Move) chess.Square {
	if m.Class != chess.PawnDoublePush {
		return chess.NoSquare
	}
	return m.From.Offset(0, chess.ColourOffset(m.Piece.Colour))
}
