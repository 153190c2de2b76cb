package engine

import "math/rand"

// Zobrist tables for piece placement, castling rights, en passant file and
// side to move. A fixed seed keeps hashes stable across runs.
var (
	zobristPiece     [2][King + 1][64]uint64
	zobristCastle    [4]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	rnd := rand.New(rand.NewSource(0x9E3779B9))
	for c := 0; c < 2; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][k][sq] = rnd.Uint64()
			}
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash fingerprints everything that defines a position for repetition
// purposes: occupancy, side to move, castling rights and the en passant
// target. Two positions reached by different move orders hash equal when
// all of those agree; hash equality is treated as position equality.
func (p *Position) Hash() uint64 {
	var h uint64
	for sq := Square(0); sq < 64; sq++ {
		pc := p.Board[sq]
		if !pc.IsEmpty() {
			h ^= zobristPiece[pc.Color][pc.Kind][sq]
		}
	}
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	for i := 0; i < 4; i++ {
		if p.Castling&(CastlingRights(1)<<i) != 0 {
			h ^= zobristCastle[i]
		}
	}
	if p.EnPassant != SquareNone {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	return h
}
