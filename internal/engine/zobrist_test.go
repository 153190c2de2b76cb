package engine

import "testing"

func TestHashIgnoresMoveOrder(t *testing.T) {
	g := NewGame()
	start := g.Position()
	mustPlay(t, g, "g1f3", "g8f6", "f3g1", "f6g8")

	back := g.Position()
	if got, want := back.Hash(), start.Hash(); got != want {
		t.Fatalf("hash after returning to the start differs: %#x != %#x", got, want)
	}
}

func TestHashComponents(t *testing.T) {
	base := StartingPosition()

	side := base
	side.SideToMove = Black
	if side.Hash() == base.Hash() {
		t.Fatal("side to move not part of the hash")
	}

	rights := base
	rights.Castling &^= WhiteKingSide
	if rights.Hash() == base.Hash() {
		t.Fatal("castling rights not part of the hash")
	}

	ep := base
	ep.EnPassant = MakeSquare(4, 2)
	if ep.Hash() == base.Hash() {
		t.Fatal("en passant target not part of the hash")
	}

	moved := base
	moved.Board[MakeSquare(4, 3)] = moved.Board[MakeSquare(4, 1)]
	moved.Board[MakeSquare(4, 1)] = Piece{}
	if moved.Hash() == base.Hash() {
		t.Fatal("occupancy not part of the hash")
	}
}

func TestHashDistinguishesEnPassantWindow(t *testing.T) {
	// 1.e4 e5 2.Nf3 and 1.Nf3 e5 2.e4 reach the same occupancy, but only
	// the second still carries the e3 en passant target.
	a := NewGame()
	mustPlay(t, a, "e2e4", "e7e5", "g1f3")

	b := NewGame()
	mustPlay(t, b, "g1f3", "e7e5", "e2e4")

	pa, pb := a.Position(), b.Position()
	if pa.Hash() == pb.Hash() {
		t.Fatal("positions differing only in en passant target must hash differently")
	}
}
