package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// FiftyMoveLimit is the halfmove clock value at which the fifty-move rule applies.
const FiftyMoveLimit = 100

// IsCheckmate returns true if colour is in check and has no legal move.
func IsCheckmate(pos chess.Position, colour chess.Colour, state GameState) bool {
	return IsInCheck(pos, colour) && !HasLegalMoves(pos, colour, state)
}

// IsStalemate returns true if colour is not in check and has no legal move.
func IsStalemate(pos chess.Position, colour chess.Colour, state GameState) bool {
	return !IsInCheck(pos, colour) && !HasLegalMoves(pos, colour, state)
}

// IsFiftyMoveDraw returns true once 100 half-moves have passed without a
// capture or pawn move.
func IsFiftyMoveDraw(state GameState) bool {
	return state.HalfmoveClock >= FiftyMoveLimit
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
//
// Other drawn-looking material such as K+N+N vs K is not included.
func HasInsufficientMaterial(pos chess.Position) bool {
	var whitePieces, blackPieces []chess.Kind
	var whiteBishopOnLight, blackBishopOnLight bool

	for sq := chess.Square(0); sq < chess.NoSquare; sq++ {
		piece := pos.At(sq)

		switch piece.Kind {
		case chess.NoKind, chess.King:
			// Kings don't count for material
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}

		if piece.Colour == chess.White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				whiteBishopOnLight = sq.IsLight()
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				blackBishopOnLight = sq.IsLight()
			}
		}
	}

	switch {
	case len(whitePieces) == 0 && len(blackPieces) == 0:
		// K vs K
		return true
	case len(whitePieces) == 0 && len(blackPieces) == 1:
		// K vs K+minor
		return true
	case len(blackPieces) == 0 && len(whitePieces) == 1:
		return true
	case len(whitePieces) == 1 && len(blackPieces) == 1:
		return whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop &&
			whiteBishopOnLight == blackBishopOnLight
	}
	return false
}
