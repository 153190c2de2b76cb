package engine

// Board holds the occupancy of all 64 squares. It is a value type so a
// Position can be copied by plain assignment when simulating moves.
type Board [64]Piece

func (b *Board) At(sq Square) Piece {
	return b[sq]
}

// Position is one snapshot of a game: occupancy, side to move, castling
// rights, en passant target and the move counters. Positions are never
// mutated in place; Apply returns the successor.
type Position struct {
	Board          Board
	SideToMove     Color
	Castling       CastlingRights
	EnPassant      Square
	HalfmoveClock  int
	FullmoveNumber int
}

func StartingPosition() Position {
	var b Board
	backRank := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := 0; f < 8; f++ {
		b[MakeSquare(f, 0)] = Piece{Kind: backRank[f], Color: White}
		b[MakeSquare(f, 1)] = Piece{Kind: Pawn, Color: White}
		b[MakeSquare(f, 6)] = Piece{Kind: Pawn, Color: Black}
		b[MakeSquare(f, 7)] = Piece{Kind: backRank[f], Color: Black}
	}
	return Position{
		Board:          b,
		SideToMove:     White,
		Castling:       AllCastlingRights,
		EnPassant:      SquareNone,
		FullmoveNumber: 1,
	}
}

func pawnForward(c Color) Square {
	if c == White {
		return 8
	}
	return -8
}

// Moving from or capturing on these squares forfeits the associated rights.
var castlingRightsMask = [64]CastlingRights{
	0:  WhiteQueenSide,                 // a1
	4:  WhiteKingSide | WhiteQueenSide, // e1
	7:  WhiteKingSide,                  // h1
	56: BlackQueenSide,                 // a8
	60: BlackKingSide | BlackQueenSide, // e8
	63: BlackKingSide,                  // h8
}

// Apply plays m and returns the resulting position, including the compound
// effects of castling, en passant and promotion. m must come from this
// position's move set; Apply itself does no legality checking.
func (p Position) Apply(m Move) Position {
	next := p
	next.EnPassant = SquareNone

	moved := m.Piece
	next.Board[m.From] = Piece{}
	if m.Flags&FlagEnPassant != 0 {
		// The captured pawn sits beside the destination, not on it.
		next.Board[m.To-pawnForward(moved.Color)] = Piece{}
	}
	if m.Promotion != Empty {
		moved.Kind = m.Promotion
	}
	next.Board[m.To] = moved

	switch {
	case m.Flags&FlagCastleKingside != 0:
		rookFrom := MakeSquare(7, m.From.Rank())
		rookTo := MakeSquare(5, m.From.Rank())
		next.Board[rookTo] = next.Board[rookFrom]
		next.Board[rookFrom] = Piece{}
	case m.Flags&FlagCastleQueenside != 0:
		rookFrom := MakeSquare(0, m.From.Rank())
		rookTo := MakeSquare(3, m.From.Rank())
		next.Board[rookTo] = next.Board[rookFrom]
		next.Board[rookFrom] = Piece{}
	case m.Flags&FlagDoublePush != 0:
		next.EnPassant = (m.From + m.To) / 2
	}

	next.Castling &^= castlingRightsMask[m.From] | castlingRightsMask[m.To]

	if m.Piece.Kind == Pawn || !m.Captured.IsEmpty() {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}
	if p.SideToMove == Black {
		next.FullmoveNumber++
	}
	next.SideToMove = p.SideToMove.Other()
	return next
}
