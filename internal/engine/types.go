package engine

import "fmt"

type Color int8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type PieceKind int8

const (
	Empty PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

// ParsePieceKind maps the wire names used by clients back to a kind.
// Unknown names map to Empty.
func ParsePieceKind(s string) PieceKind {
	switch s {
	case "pawn":
		return Pawn
	case "knight":
		return Knight
	case "bishop":
		return Bishop
	case "rook":
		return Rook
	case "queen":
		return Queen
	case "king":
		return King
	}
	return Empty
}

// Piece is a piece kind paired with its owner. The zero value is an empty
// square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Square indexes the board from a1 (0) to h8 (63), file = index % 8,
// rank = index / 8.
type Square int

const SquareNone Square = -1

func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int {
	return int(s) % 8
}

func (s Square) Rank() int {
	return int(s) / 8
}

func (s Square) String() string {
	if s == SquareNone {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.File(), s.Rank()+1)
}

// ParseSquare converts a coordinate like "e4" into a Square.
func ParseSquare(coord string) (Square, error) {
	if len(coord) != 2 {
		return SquareNone, fmt.Errorf("invalid square %q", coord)
	}
	file := int(coord[0] - 'a')
	rank := int(coord[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return SquareNone, fmt.Errorf("square %q out of range", coord)
	}
	return MakeSquare(file, rank), nil
}

type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const AllCastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide

func (cr CastlingRights) Has(r CastlingRights) bool {
	return cr&r == r
}

type MoveFlag uint8

const (
	FlagEnPassant MoveFlag = 1 << iota
	FlagCastleKingside
	FlagCastleQueenside
	FlagDoublePush
)

// Move is one candidate transition out of the position it was generated
// from. Captured is the zero Piece when nothing is taken and Promotion is
// Empty for non-promoting moves.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Captured  Piece
	Promotion PieceKind
	Flags     MoveFlag
}

func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != Empty {
		s += string("  nbrq "[m.Promotion])
	}
	return s
}
