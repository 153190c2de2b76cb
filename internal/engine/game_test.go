package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sq(t *testing.T, coord string) Square {
	t.Helper()
	s, err := ParseSquare(coord)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// parseMoveToken converts long algebraic like "e2e4" or "a7a8q" into a
// candidate move.
func parseMoveToken(tok string) (Move, error) {
	if len(tok) != 4 && len(tok) != 5 {
		return Move{}, fmt.Errorf("invalid move token %q", tok)
	}
	from, err := ParseSquare(tok[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(tok[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(tok) == 5 {
		switch tok[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return Move{}, fmt.Errorf("invalid promotion in %q", tok)
		}
	}
	return m, nil
}

func mustPlay(t *testing.T, g *Game, tokens ...string) Status {
	t.Helper()
	st := g.Status()
	for _, tok := range tokens {
		m, err := parseMoveToken(tok)
		if err != nil {
			t.Fatal(err)
		}
		st, err = g.ApplyMove(g.Position().SideToMove, m)
		if err != nil {
			t.Fatalf("move %s: %v", tok, err)
		}
	}
	return st
}

func testPosition(side Color, pieces map[Square]Piece) Position {
	var b Board
	for s, pc := range pieces {
		b[s] = pc
	}
	return Position{Board: b, SideToMove: side, EnPassant: SquareNone, FullmoveNumber: 1}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	st := mustPlay(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	want := Status{Kind: Checkmate, Side: Black}
	if st != want {
		t.Fatalf("got status %+v, want %+v", st, want)
	}
	if _, err := g.ApplyMove(White, Move{From: sq(t, "a2"), To: sq(t, "a3")}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("move after mate: got %v, want ErrGameOver", err)
	}
}

func TestKingsAlwaysPresent(t *testing.T) {
	g := NewGame()
	for _, tok := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		mustPlay(t, g, tok)
		pos := g.Position()
		if pos.kingSquare(White) == SquareNone || pos.kingSquare(Black) == SquareNone {
			t.Fatalf("missing king after %s", tok)
		}
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	st := mustPlay(t, g, cycle...)
	if st.Kind != InProgress {
		t.Fatalf("after one cycle: got %v, want inProgress", st.Kind)
	}
	// Second return to the starting position is its third occurrence.
	st = mustPlay(t, g, cycle...)
	if st.Kind != DrawByRepetition {
		t.Fatalf("after two cycles: got %v, want drawByRepetition", st.Kind)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	pos := testPosition(White, map[Square]Piece{
		4:  {Kind: King, Color: White},
		0:  {Kind: Rook, Color: White},
		63: {Kind: King, Color: Black},
	})
	pos.HalfmoveClock = 99

	g := NewGameFrom(pos)
	st := mustPlay(t, g, "a1a2")
	if st.Kind != DrawByFiftyMove {
		t.Fatalf("got %v, want drawByFiftyMove", st.Kind)
	}
}

func TestFiftyMoveCounterResetByCapture(t *testing.T) {
	pos := testPosition(White, map[Square]Piece{
		sq(t, "e1"): {Kind: King, Color: White},
		sq(t, "a1"): {Kind: Rook, Color: White},
		sq(t, "h8"): {Kind: King, Color: Black},
		sq(t, "a7"): {Kind: Rook, Color: Black},
	})
	pos.HalfmoveClock = 99

	g := NewGameFrom(pos)
	st := mustPlay(t, g, "a1a7")
	if st.Terminal() {
		t.Fatalf("capture at clock 99 should not end the game, got %v", st.Kind)
	}
	if got := g.Position().HalfmoveClock; got != 0 {
		t.Fatalf("halfmove clock after capture: got %d, want 0", got)
	}
	st = mustPlay(t, g, "h8g8")
	if st.Terminal() {
		t.Fatalf("quiet move after reset should not end the game, got %v", st.Kind)
	}
	if got := g.Position().HalfmoveClock; got != 1 {
		t.Fatalf("halfmove clock: got %d, want 1", got)
	}
}

func TestDrawByAgreement(t *testing.T) {
	g := NewGame()

	if err := g.AcceptDraw(Black); !errors.Is(err, ErrNoDrawOffer) {
		t.Fatalf("accept without offer: got %v, want ErrNoDrawOffer", err)
	}

	if err := g.OfferDraw(White); err != nil {
		t.Fatal(err)
	}
	if side, ok := g.DrawOfferBy(); !ok || side != White {
		t.Fatalf("pending offer: got (%v, %v), want (white, true)", side, ok)
	}
	if err := g.AcceptDraw(White); !errors.Is(err, ErrNoDrawOffer) {
		t.Fatalf("offerer accepting own offer: got %v, want ErrNoDrawOffer", err)
	}

	// Any move implicitly declines.
	mustPlay(t, g, "e2e4")
	if _, ok := g.DrawOfferBy(); ok {
		t.Fatal("offer should be void after a move")
	}

	if err := g.OfferDraw(Black); err != nil {
		t.Fatal(err)
	}
	if err := g.DeclineDraw(White); err != nil {
		t.Fatal(err)
	}
	if _, ok := g.DrawOfferBy(); ok {
		t.Fatal("offer should be cleared after explicit decline")
	}

	if err := g.OfferDraw(Black); err != nil {
		t.Fatal(err)
	}
	if err := g.AcceptDraw(White); err != nil {
		t.Fatal(err)
	}
	if got := g.Status().Kind; got != DrawByAgreement {
		t.Fatalf("got %v, want drawByAgreement", got)
	}
	if err := g.OfferDraw(White); !errors.Is(err, ErrGameOver) {
		t.Fatalf("offer after terminal: got %v, want ErrGameOver", err)
	}
}

func TestResign(t *testing.T) {
	g := NewGame()
	if err := g.Resign(White); err != nil {
		t.Fatal(err)
	}
	want := Status{Kind: Resigned, Side: Black}
	if got := g.Status(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if err := g.Resign(Black); !errors.Is(err, ErrGameOver) {
		t.Fatalf("resign after terminal: got %v, want ErrGameOver", err)
	}
}

func TestForfeitOnFlagFall(t *testing.T) {
	g := NewGame()
	if err := g.Forfeit(Black); err != nil {
		t.Fatal(err)
	}
	want := Status{Kind: TimedOut, Side: White}
	if got := g.Status(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestApplyMoveRejections(t *testing.T) {
	g := NewGame()

	if _, err := g.ApplyMove(Black, Move{From: sq(t, "e7"), To: sq(t, "e5")}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("wrong side: got %v, want ErrNotYourTurn", err)
	}
	if _, err := g.ApplyMove(White, Move{From: sq(t, "e2"), To: sq(t, "e5")}); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("illegal move: got %v, want ErrIllegalMove", err)
	}

	// Rejected mutations must leave the game untouched.
	if diff := cmp.Diff(StartingPosition(), g.Position()); diff != "" {
		t.Fatalf("position changed by rejected move (-want +got):\n%s", diff)
	}
	if len(g.History()) != 0 {
		t.Fatal("history changed by rejected move")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	g := NewGame()

	var want []Move
	for _, tok := range []string{"e2e4", "e7e5", "g1f3"} {
		cand, err := parseMoveToken(tok)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range g.LegalMoves() {
			if m.From == cand.From && m.To == cand.To && m.Promotion == cand.Promotion {
				want = append(want, m)
				break
			}
		}
		mustPlay(t, g, tok)
	}

	if diff := cmp.Diff(want, g.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	g := NewGame()
	mustPlay(t, g, "e2e4", "e7e5", "g1f3", "b8c6")
	g.Reset()

	if diff := cmp.Diff(StartingPosition(), g.Position()); diff != "" {
		t.Fatalf("position after reset (-want +got):\n%s", diff)
	}
	if len(g.History()) != 0 {
		t.Fatal("history not cleared by reset")
	}
	if got := g.Status().Kind; got != InProgress {
		t.Fatalf("status after reset: got %v, want inProgress", got)
	}
	if got := len(g.LegalMoves()); got != 20 {
		t.Fatalf("legal moves after reset: got %d, want 20", got)
	}
}
