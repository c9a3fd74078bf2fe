package engine

import (
	"cmp"
	"slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// LegalMoves returns every legal move for colour, ordered by source square,
// then destination, then promotion choice (Q, R, B, N).
func LegalMoves(pos chess.Position, colour chess.Colour, state GameState) []chess.Move {
	var legal []chess.Move
	for _, from := range pos.PiecesOf(colour) {
		legal = append(legal, LegalMovesFrom(pos, from, state)...)
	}
	slices.SortStableFunc(legal, compareMoves)
	return legal
}

// LegalMovesFrom returns the legal moves of the piece on from.
func LegalMovesFrom(pos chess.Position, from chess.Square, state GameState) []chess.Move {
	var legal []chess.Move
	for _, m := range PseudoLegalMoves(pos, from, state) {
		if leavesKingSafe(pos, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// LegalDestinations returns the distinct squares the piece on from may move to.
func LegalDestinations(pos chess.Position, from chess.Square, state GameState) []chess.Square {
	return destinations(LegalMovesFrom(pos, from, state))
}

// IsLegalMove returns true if colour may move the piece on from to to.
func IsLegalMove(pos chess.Position, colour chess.Colour, state GameState, from, to chess.Square) bool {
	if !pos.OccupiedBy(from, colour) {
		return false
	}
	for _, m := range LegalMovesFrom(pos, from, state) {
		if m.To == to {
			return true
		}
	}
	return false
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(pos chess.Position, colour chess.Colour, state GameState) bool {
	for _, from := range pos.PiecesOf(colour) {
		for _, m := range PseudoLegalMoves(pos, from, state) {
			if leavesKingSafe(pos, m) {
				return true
			}
		}
	}
	return false
}

// leavesKingSafe simulates m on a copy of pos and checks that the mover's
// king is not attacked afterwards. A move capturing a king is never legal.
func leavesKingSafe(pos chess.Position, m chess.Move) bool {
	if m.Captured.Kind == chess.King {
		return false
	}
	after := applyToPosition(pos, m)
	king := after.FindKing(m.Piece.Colour)
	if king == chess.NoSquare {
		return true
	}
	return !IsSquareAttacked(after, king, m.Piece.Colour.Opposite())
}

// applyToPosition returns pos with m played on the board: the rook follows a
// castling king, and an en passant capture removes the pawn from the passed
// square rather than the destination.
func applyToPosition(pos chess.Position, m chess.Move) chess.Position {
	next := pos
	next.Remove(m.From)

	if m.IsEnPassant() {
		next.Remove(enPassantVictim(m.To, m.Piece.Colour))
	}

	placed := m.Piece
	if m.IsPromotion() {
		placed = chess.Piece{Colour: m.Piece.Colour, Kind: m.Promotion}
	}
	next.Put(m.To, placed)

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		next.Put(rookTo, next.Remove(rookFrom))
	}
	return next
}

// compareMoves orders moves by from, to and promotion choice.
func compareMoves(a, b chess.Move) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	if c := cmp.Compare(a.To, b.To); c != 0 {
		return c
	}
	return cmp.Compare(promotionOrder(a.Promotion), promotionOrder(b.Promotion))
}

func promotionOrder(k chess.Kind) int {
	for i, kind := range chess.PromotionKinds {
		if kind == k {
			return i
		}
	}
	return -1
}
