package chess

// Move represents a single chess move. Moves are values; history holds copies.
type Move struct {
	// Source and destination squares. For castling these are the king's squares.
	From Square
	To   Square

	// The piece being moved.
	Piece Piece

	// The piece captured (NoPiece if none). For en passant this is the pawn
	// removed from the passed square, not the (empty) destination.
	Captured Piece

	// Class of move (pawn move, piece move, castle, etc.).
	Class MoveClass

	// The kind promoted to (NoKind if not a promotion).
	Promotion Kind
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return !m.Captured.IsEmpty()
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Class == PawnMoveWithPromotion
}

// IsEnPassant returns true if this move captures en passant.
func (m Move) IsEnPassant() bool {
	return m.Class == EnPassantPawnMove
}

// IsCastle returns true if this move is a castling move.
func (m Move) IsCastle() bool {
	switch m.Class {
	case KingsideCastle, QueensideCastle:
		return true
	default:
		return false
	}
}

// IsPawnMove returns true if a pawn moved.
func (m Move) IsPawnMove() bool {
	return m.Piece.Kind == Pawn
}

// String returns the long algebraic (UCI) form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}
