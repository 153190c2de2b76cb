package engine

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookDirs      = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	promotionKinds = [4]PieceKind{Knight, Bishop, Rook, Queen}
)

// LegalMoves generates the side to move's full legal move set, in no
// particular order. Every pseudo-legal candidate is played on a copy and
// kept only if the mover's own king is safe afterward. Because the copy
// vacates the king's source square, a king stepping away along the ray it
// was blocking is still seen as attacked.
func (p *Position) LegalMoves() []Move {
	pseudo := p.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := p.Apply(m)
		if !next.kingAttacked(p.SideToMove) {
			legal = append(legal, m)
		}
	}
	return legal
}

// PseudoLegalMoves generates moves that obey piece movement and occupancy
// rules but may leave the mover's king in check.
func (p *Position) PseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	for sq := Square(0); sq < 64; sq++ {
		pc := p.Board[sq]
		if pc.IsEmpty() || pc.Color != p.SideToMove {
			continue
		}
		switch pc.Kind {
		case Pawn:
			moves = p.pawnMoves(moves, sq)
		case Knight:
			moves = p.offsetMoves(moves, sq, knightOffsets[:])
		case Bishop:
			moves = p.slidingMoves(moves, sq, bishopDirs[:])
		case Rook:
			moves = p.slidingMoves(moves, sq, rookDirs[:])
		case Queen:
			moves = p.slidingMoves(moves, sq, rookDirs[:])
			moves = p.slidingMoves(moves, sq, bishopDirs[:])
		case King:
			moves = p.offsetMoves(moves, sq, kingOffsets[:])
			moves = p.castleMoves(moves, sq)
		}
	}
	return moves
}

func (p *Position) pawnMoves(moves []Move, from Square) []Move {
	pc := p.Board[from]
	fwd := pawnForward(pc.Color)
	startRank, promoRank := 1, 7
	if pc.Color == Black {
		startRank, promoRank = 6, 0
	}

	one := from + fwd
	if p.Board[one].IsEmpty() {
		moves = appendPawnMove(moves, Move{From: from, To: one, Piece: pc}, promoRank)
		if from.Rank() == startRank {
			two := one + fwd
			if p.Board[two].IsEmpty() {
				moves = append(moves, Move{From: from, To: two, Piece: pc, Flags: FlagDoublePush})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		f := from.File() + df
		if f < 0 || f > 7 {
			continue
		}
		to := MakeSquare(f, one.Rank())
		tgt := p.Board[to]
		switch {
		case !tgt.IsEmpty() && tgt.Color != pc.Color:
			moves = appendPawnMove(moves, Move{From: from, To: to, Piece: pc, Captured: tgt}, promoRank)
		case to == p.EnPassant:
			captured := p.Board[to-fwd]
			moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: captured, Flags: FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove expands a pawn move reaching the last rank into the four
// promotion choices.
func appendPawnMove(moves []Move, m Move, promoRank int) []Move {
	if m.To.Rank() != promoRank {
		return append(moves, m)
	}
	for _, kind := range promotionKinds {
		pm := m
		pm.Promotion = kind
		moves = append(moves, pm)
	}
	return moves
}

func (p *Position) offsetMoves(moves []Move, from Square, offsets [][2]int) []Move {
	pc := p.Board[from]
	for _, o := range offsets {
		f, r := from.File()+o[0], from.Rank()+o[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		to := MakeSquare(f, r)
		tgt := p.Board[to]
		if tgt.IsEmpty() || tgt.Color != pc.Color {
			moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: tgt})
		}
	}
	return moves
}

func (p *Position) slidingMoves(moves []Move, from Square, dirs [][2]int) []Move {
	pc := p.Board[from]
	for _, d := range dirs {
		f, r := from.File()+d[0], from.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			to := MakeSquare(f, r)
			tgt := p.Board[to]
			if tgt.IsEmpty() {
				moves = append(moves, Move{From: from, To: to, Piece: pc})
			} else {
				if tgt.Color != pc.Color {
					moves = append(moves, Move{From: from, To: to, Piece: pc, Captured: tgt})
				}
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return moves
}

func (p *Position) castleMoves(moves []Move, from Square) []Move {
	pc := p.Board[from]
	rank := 0
	kingRight, queenRight := WhiteKingSide, WhiteQueenSide
	if pc.Color == Black {
		rank = 7
		kingRight, queenRight = BlackKingSide, BlackQueenSide
	}
	if from != MakeSquare(4, rank) {
		return moves
	}
	enemy := pc.Color.Other()
	if p.attacked(from, enemy) {
		return moves
	}

	if p.Castling.Has(kingRight) &&
		p.Board[MakeSquare(7, rank)] == (Piece{Kind: Rook, Color: pc.Color}) &&
		p.Board[MakeSquare(5, rank)].IsEmpty() &&
		p.Board[MakeSquare(6, rank)].IsEmpty() &&
		!p.attacked(MakeSquare(5, rank), enemy) &&
		!p.attacked(MakeSquare(6, rank), enemy) {
		moves = append(moves, Move{From: from, To: MakeSquare(6, rank), Piece: pc, Flags: FlagCastleKingside})
	}
	if p.Castling.Has(queenRight) &&
		p.Board[MakeSquare(0, rank)] == (Piece{Kind: Rook, Color: pc.Color}) &&
		p.Board[MakeSquare(1, rank)].IsEmpty() &&
		p.Board[MakeSquare(2, rank)].IsEmpty() &&
		p.Board[MakeSquare(3, rank)].IsEmpty() &&
		!p.attacked(MakeSquare(2, rank), enemy) &&
		!p.attacked(MakeSquare(3, rank), enemy) {
		moves = append(moves, Move{From: from, To: MakeSquare(2, rank), Piece: pc, Flags: FlagCastleQueenside})
	}
	return moves
}

// attacked reports whether sq is attacked by any piece of the given color.
// It scans outward from sq: sliders along rook and bishop rays, then the
// fixed knight, king and pawn attack patterns.
func (p *Position) attacked(sq Square, by Color) bool {
	for _, d := range rookDirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			pc := p.Board[MakeSquare(f, r)]
			if !pc.IsEmpty() {
				if pc.Color == by && (pc.Kind == Rook || pc.Kind == Queen) {
					return true
				}
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	for _, d := range bishopDirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			pc := p.Board[MakeSquare(f, r)]
			if !pc.IsEmpty() {
				if pc.Color == by && (pc.Kind == Bishop || pc.Kind == Queen) {
					return true
				}
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	for _, o := range knightOffsets {
		f, r := sq.File()+o[0], sq.Rank()+o[1]
		if f >= 0 && f <= 7 && r >= 0 && r <= 7 &&
			p.Board[MakeSquare(f, r)] == (Piece{Kind: Knight, Color: by}) {
			return true
		}
	}
	for _, o := range kingOffsets {
		f, r := sq.File()+o[0], sq.Rank()+o[1]
		if f >= 0 && f <= 7 && r >= 0 && r <= 7 &&
			p.Board[MakeSquare(f, r)] == (Piece{Kind: King, Color: by}) {
			return true
		}
	}
	// A pawn of color `by` attacks sq from the rank it advances out of.
	pawnRank := sq.Rank() - 1
	if by == Black {
		pawnRank = sq.Rank() + 1
	}
	if pawnRank >= 0 && pawnRank <= 7 {
		for _, df := range [2]int{-1, 1} {
			f := sq.File() + df
			if f >= 0 && f <= 7 && p.Board[MakeSquare(f, pawnRank)] == (Piece{Kind: Pawn, Color: by}) {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether the side to move's king is attacked.
func (p *Position) InCheck() bool {
	return p.kingAttacked(p.SideToMove)
}

func (p *Position) kingAttacked(c Color) bool {
	ks := p.kingSquare(c)
	if ks == SquareNone {
		return false
	}
	return p.attacked(ks, c.Other())
}

func (p *Position) kingSquare(c Color) Square {
	for sq := Square(0); sq < 64; sq++ {
		if p.Board[sq] == (Piece{Kind: King, Color: c}) {
			return sq
		}
	}
	return SquareNone
}
