package model

import (
	"errors"
	"testing"

	"github.com/dmaloney/gochess-server/internal/engine"
)

func newSeatedGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("test-game")
	if _, err := g.AddPlayer("alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddPlayer("bob"); err != nil {
		t.Fatal(err)
	}
	return g
}

// wireMove builds the client payload for a move between coordinates given
// in engine orientation (file, rank).
func wireMove(fromFile, fromRank, toFile, toRank int) WSMove {
	return WSMove{
		From: Position{X: fromFile, Y: 7 - fromRank},
		To:   Position{X: toFile, Y: 7 - toRank},
	}
}

func TestAddPlayerSeatsWhiteFirst(t *testing.T) {
	g := NewGame("g")

	color, err := g.AddPlayer("alice")
	if err != nil || color != engine.White {
		t.Fatalf("first seat: got (%v, %v), want (white, nil)", color, err)
	}
	color, err = g.AddPlayer("bob")
	if err != nil || color != engine.Black {
		t.Fatalf("second seat: got (%v, %v), want (black, nil)", color, err)
	}
	if _, err := g.AddPlayer("carol"); !errors.Is(err, ErrGameFull) {
		t.Fatalf("third seat: got %v, want ErrGameFull", err)
	}
	if !g.IsPlayerInGame("alice") || !g.IsPlayerInGame("bob") || g.IsPlayerInGame("carol") {
		t.Fatal("seat membership wrong")
	}
}

func TestMakeMoveEnforcesTurnOrder(t *testing.T) {
	g := newSeatedGame(t)

	// Black may not open the game.
	if err := g.MakeMove("bob", wireMove(4, 6, 4, 4)); !errors.Is(err, engine.ErrNotYourTurn) {
		t.Fatalf("black first: got %v, want ErrNotYourTurn", err)
	}

	// 1. e4
	if err := g.MakeMove("alice", wireMove(4, 1, 4, 3)); err != nil {
		t.Fatal(err)
	}

	state := g.GetState()
	if state.ToMove != "black" {
		t.Fatalf("toMove = %q, want black", state.ToMove)
	}
	if len(state.MoveHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(state.MoveHistory))
	}
	if state.LastMove == nil || state.LastMove.To != (Position{X: 4, Y: 4}) {
		t.Fatalf("lastMove = %+v, want destination e4", state.LastMove)
	}
	if state.Board[4][4] == nil || state.Board[4][4].Type != "pawn" {
		t.Fatal("pawn not rendered on e4 in the client snapshot")
	}
	if state.Board[6][4] != nil {
		t.Fatal("e2 should be empty in the client snapshot")
	}
}

func TestMakeMoveRejectsOutsiders(t *testing.T) {
	g := newSeatedGame(t)
	if err := g.MakeMove("mallory", wireMove(4, 1, 4, 3)); !errors.Is(err, ErrPlayerNotInGame) {
		t.Fatalf("got %v, want ErrPlayerNotInGame", err)
	}
	if err := g.MakeMove("alice", WSMove{From: Position{X: -1, Y: 0}, To: Position{X: 0, Y: 0}}); !errors.Is(err, ErrMoveOutOfBounds) {
		t.Fatalf("got %v, want ErrMoveOutOfBounds", err)
	}
}

func TestDrawOfferFlow(t *testing.T) {
	g := newSeatedGame(t)

	if err := g.OfferDraw("alice"); err != nil {
		t.Fatal(err)
	}
	state := g.GetState()
	if state.DrawOfferBy == nil || *state.DrawOfferBy != "white" {
		t.Fatalf("drawOfferBy = %v, want white", state.DrawOfferBy)
	}

	if err := g.AcceptDraw("alice"); !errors.Is(err, engine.ErrNoDrawOffer) {
		t.Fatalf("offerer accepting: got %v, want ErrNoDrawOffer", err)
	}
	if err := g.AcceptDraw("bob"); err != nil {
		t.Fatal(err)
	}
	if got := g.GetState().Status; got != "drawByAgreement" {
		t.Fatalf("status = %q, want drawByAgreement", got)
	}
}

func TestResignEndsGame(t *testing.T) {
	g := newSeatedGame(t)

	if err := g.Resign("bob"); err != nil {
		t.Fatal(err)
	}
	state := g.GetState()
	if state.Status != "resigned" {
		t.Fatalf("status = %q, want resigned", state.Status)
	}
	if state.Winner == nil || *state.Winner != "white" {
		t.Fatalf("winner = %v, want white", state.Winner)
	}
	if err := g.MakeMove("alice", wireMove(4, 1, 4, 3)); !errors.Is(err, engine.ErrGameOver) {
		t.Fatalf("move after resign: got %v, want ErrGameOver", err)
	}
}

func TestLegalTargetsForHighlighting(t *testing.T) {
	g := newSeatedGame(t)

	// e2 in client coordinates.
	targets := g.LegalTargets(Position{X: 4, Y: 6})
	if len(targets) != 2 {
		t.Fatalf("got %d targets from e2, want 2", len(targets))
	}
	if got := g.LegalTargets(Position{X: 9, Y: 0}); len(got) != 0 {
		t.Fatalf("off-board query returned %v", got)
	}
}
