package chess

import "strings"

// Position is the placement of pieces on the 64 squares.
// It is a value type: assigning a Position copies the board.
type Position struct {
	squares [NumSquares]Piece
}

// NewPosition creates an empty position.
func NewPosition() Position {
	return Position{}
}

// InitialPosition returns the standard chess starting position.
func InitialPosition() Position {
	var p Position
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		p.squares[NewSquare(file, 0)] = W(backRank[file])
		p.squares[NewSquare(file, 1)] = W(Pawn)
		p.squares[NewSquare(file, 6)] = B(Pawn)
		p.squares[NewSquare(file, 7)] = B(backRank[file])
	}
	return p
}

// At returns the piece on sq. Empty squares and NoSquare return NoPiece.
func (p Position) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.squares[sq]
}

// Occupied reports whether sq holds a piece.
func (p Position) Occupied(sq Square) bool {
	return !p.At(sq).IsEmpty()
}

// OccupiedBy reports whether sq holds a piece of the given colour.
func (p Position) OccupiedBy(sq Square, colour Colour) bool {
	piece := p.At(sq)
	return !piece.IsEmpty() && piece.Colour == colour
}

// Put places a piece on sq. Off-board squares are ignored.
func (p *Position) Put(sq Square, piece Piece) {
	if sq.Valid() {
		p.squares[sq] = piece
	}
}

// Remove empties sq and returns what was there.
func (p *Position) Remove(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	old := p.squares[sq]
	p.squares[sq] = NoPiece
	return old
}

// Squares returns a copy of the underlying board array.
func (p Position) Squares() [NumSquares]Piece {
	return p.squares
}

// Equal reports whether both positions hold the same pieces on the same squares.
func (p Position) Equal(other Position) bool {
	return p.squares == other.squares
}

// FromSquares builds a position from a board array.
func FromSquares(squares [NumSquares]Piece) Position {
	return Position{squares: squares}
}

// FindKing returns the square of the colour's king, or NoSquare.
func (p Position) FindKing(colour Colour) Square {
	king := Piece{Colour: colour, Kind: King}
	for sq := Square(0); sq < NoSquare; sq++ {
		if p.squares[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// Count returns how many of the given piece are on the board.
func (p Position) Count(piece Piece) int {
	n := 0
	for _, occupant := range p.squares {
		if occupant == piece {
			n++
		}
	}
	return n
}

// PiecesOf returns the occupied squares of a colour in square order.
func (p Position) PiecesOf(colour Colour) []Square {
	var squares []Square
	for sq := Square(0); sq < NoSquare; sq++ {
		if p.OccupiedBy(sq, colour) {
			squares = append(squares, sq)
		}
	}
	return squares
}

// String renders an ASCII diagram with rank 8 at the top.
func (p Position) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			sb.WriteByte(p.squares[NewSquare(file, rank)].FENLetter())
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
