// Package engine provides chess move generation, validation and game-end
// detection over immutable Position and GameState values.
package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// PseudoLegalMoves returns the moves the piece on from can make according to
// its movement pattern and the occupancy rules, without checking whether the
// mover's king is left attacked. Castling preconditions are fully checked here.
func PseudoLegalMoves(pos chess.Position, from chess.Square, state GameState) []chess.Move {
	piece := pos.At(from)
	if piece.IsEmpty() {
		return nil
	}

	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(pos, from, piece.Colour, state)
	case chess.King:
		moves := pieceMoves(pos, from, piece)
		return append(moves, castlingMoves(pos, from, piece.Colour, state)...)
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		return pieceMoves(pos, from, piece)
	default:
		return nil
	}
}

// PseudoLegalDestinations returns the distinct destination squares of
// PseudoLegalMoves, in generation order.
func PseudoLegalDestinations(pos chess.Position, from chess.Square, state GameState) []chess.Square {
	return destinations(PseudoLegalMoves(pos, from, state))
}

// pieceMoves generates knight, bishop, rook, queen and plain king moves.
func pieceMoves(pos chess.Position, from chess.Square, piece chess.Piece) []chess.Move {
	switch piece.Kind {
	case chess.Knight:
		return stepMoves(pos, from, piece, knightOffsets[:])
	case chess.King:
		return stepMoves(pos, from, piece, kingOffsets[:])
	case chess.Bishop:
		return slideMoves(pos, from, piece, diagonalDirs[:])
	case chess.Rook:
		return slideMoves(pos, from, piece, straightDirs[:])
	case chess.Queen:
		moves := slideMoves(pos, from, piece, diagonalDirs[:])
		return append(moves, slideMoves(pos, from, piece, straightDirs[:])...)
	default:
		return nil
	}
}

// stepMoves generates single-step moves to each offset not holding a friendly piece.
func stepMoves(pos chess.Position, from chess.Square, piece chess.Piece, offsets [][2]int) []chess.Move {
	var moves []chess.Move
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if !to.Valid() || pos.OccupiedBy(to, piece.Colour) {
			continue
		}
		moves = append(moves, newMove(pos, from, to, piece, chess.PieceMove))
	}
	return moves
}

// slideMoves casts a ray in each direction until the edge, stopping before a
// friendly piece and on an enemy piece.
func slideMoves(pos chess.Position, from chess.Square, piece chess.Piece, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to.Valid(); to = to.Offset(dir[0], dir[1]) {
			target := pos.At(to)
			if !target.IsEmpty() && target.Colour == piece.Colour {
				break
			}
			moves = append(moves, newMove(pos, from, to, piece, chess.PieceMove))
			if !target.IsEmpty() {
				break
			}
		}
	}
	return moves
}

// newMove builds a move, recording whatever stands on the destination as captured.
func newMove(pos chess.Position, from, to chess.Square, piece chess.Piece, class chess.MoveClass) chess.Move {
	return chess.Move{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: pos.At(to),
		Class:    class,
	}
}

// destinations collapses moves to their distinct target squares.
func destinations(moves []chess.Move) []chess.Square {
	var squares []chess.Square
	seen := make(map[chess.Square]bool, len(moves))
	for _, m := range moves {
		if !seen[m.To] {
			seen[m.To] = true
			squares = append(squares, m.To)
		}
	}
	return squares
}
