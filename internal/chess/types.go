// Package chess provides core chess types and operations.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind represents a chess piece type independent of colour.
type Kind int

const (
	NoKind Kind = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase SAN letter for a kind.
// Pawns have no SAN letter and return 'P' for FEN use.
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter (either case) to a kind.
// It returns NoKind for anything else.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoKind
	}
}

// IsPromotionKind reports whether a pawn may promote to k.
func IsPromotionKind(k Kind) bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// PromotionKinds lists the promotion choices in generation order.
var PromotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}

// Piece is a coloured piece. The zero value is NoPiece (an empty square).
type Piece struct {
	Colour Colour
	Kind   Kind
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Colour: White, Kind: kind}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Colour: Black, Kind: kind}
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// FENLetter returns the FEN character: uppercase for White, lowercase for Black.
func (p Piece) FENLetter() byte {
	if p.IsEmpty() {
		return '.'
	}
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// PieceFromFEN converts a FEN character to a coloured piece.
func PieceFromFEN(c byte) (Piece, bool) {
	kind := KindFromLetter(c)
	if kind == NoKind {
		return NoPiece, false
	}
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
	}
	return Piece{Colour: colour, Kind: kind}, true
}

// String returns e.g. "White Knight" or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// Board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// Square is one of the 64 board coordinates, a1 = 0 through h8 = 63.
type Square uint8

// NoSquare is the "no square" value returned by out-of-range conversions.
const NoSquare Square = NumSquares

// Named squares used by the rules for castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare converts a 0-based file and rank to a square.
// Out-of-range coordinates yield NoSquare rather than wrapping.
func NewSquare(file, rank int) Square {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return NoSquare
	}
	return Square(rank*BoardSize + file)
}

// ParseSquare converts a label such as "e4" to a square.
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return NoSquare, fmt.Errorf("square %q: %w", label, errors.ErrInvalidSquare)
	}
	sq := NewSquare(int(label[0])-'a', int(label[1])-'1')
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("square %q: %w", label, errors.ErrInvalidSquare)
	}
	return sq, nil
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s < NoSquare
}

// File returns the 0-based file (a = 0).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank (rank 1 = 0).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Offset returns the square df files and dr ranks away, or NoSquare.
func (s Square) Offset(df, dr int) Square {
	if !s.Valid() {
		return NoSquare
	}
	return NewSquare(s.File()+df, s.Rank()+dr)
}

// IsLight reports whether s is a light square (h1 is light, a1 is dark).
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// String returns the square label, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the 0-based back rank of a colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// PawnStartRank returns the 0-based rank pawns of a colour start on.
func PawnStartRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return BoardSize - 2
}

// PromotionRank returns the 0-based rank on which pawns of a colour promote.
func PromotionRank(colour Colour) int {
	return HomeRank(colour.Opposite())
}

// CastlingRights is a set of up to four castling flags.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every flag in r is set.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r && r != 0
}

// Without returns c with the flags in r cleared.
func (c CastlingRights) Without(r CastlingRights) CastlingRights {
	return c &^ r
}

// String renders the FEN castling field ("KQkq" or "-").
func (c CastlingRights) String() string {
	var b []byte
	if c.Has(WhiteKingside) {
		b = append(b, 'K')
	}
	if c.Has(WhiteQueenside) {
		b = append(b, 'Q')
	}
	if c.Has(BlackKingside) {
		b = append(b, 'k')
	}
	if c.Has(BlackQueenside) {
		b = append(b, 'q')
	}
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}

// KingsideRight returns the kingside flag of a colour.
func KingsideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteKingside
	}
	return BlackKingside
}

// QueensideRight returns the queenside flag of a colour.
func QueensideRight(colour Colour) CastlingRights {
	if colour == White {
		return WhiteQueenside
	}
	return BlackQueenside
}

// MoveClass categorizes different types of chess moves.
type MoveClass int

const (
	PawnMove MoveClass = iota
	PawnDoublePush
	PawnMoveWithPromotion
	EnPassantPawnMove
	PieceMove
	KingsideCastle
	QueensideCastle
)
