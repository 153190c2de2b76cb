package engine

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameOver         = errors.New("game already over")
	ErrInvalidPromotion = errors.New("invalid promotion choice")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNoDrawOffer      = errors.New("no draw offer pending")
)

// Game drives one chess game from its starting position to a terminal
// status: it owns the current position, the move history, the repetition
// table and the draw-offer flag, and is the only mutation entry point.
// A Game is not safe for concurrent use; the owning session must serialize
// all calls into it.
type Game struct {
	pos          Position
	legal        []Move
	status       Status
	history      []Move
	seen         map[uint64]int
	offerBy      Color
	offerPending bool
}

func NewGame() *Game {
	g := &Game{}
	g.start(StartingPosition())
	return g
}

// NewGameFrom starts play from an arbitrary position, mainly for endgame
// and draw-rule scenarios.
func NewGameFrom(pos Position) *Game {
	g := &Game{}
	g.start(pos)
	return g
}

// Reset discards all state and begins a fresh game from the standard
// starting position.
func (g *Game) Reset() {
	g.start(StartingPosition())
}

func (g *Game) start(pos Position) {
	g.pos = pos
	g.legal = pos.LegalMoves()
	g.history = nil
	g.seen = map[uint64]int{pos.Hash(): 1}
	g.offerPending = false
	g.status = g.evaluate()
}

// ApplyMove validates the candidate against the current legal move set and,
// if accepted, commits the transition atomically: position, history,
// repetition table, draw-offer flag and status all advance together, or
// nothing changes. actor must be the side to move.
func (g *Game) ApplyMove(actor Color, m Move) (Status, error) {
	if g.status.Terminal() {
		return g.status, ErrGameOver
	}
	if actor != g.pos.SideToMove {
		return g.status, ErrNotYourTurn
	}
	chosen, err := g.matchLegal(m)
	if err != nil {
		return g.status, err
	}

	g.pos = g.pos.Apply(chosen)
	g.history = append(g.history, chosen)
	g.seen[g.pos.Hash()]++
	g.offerPending = false
	g.legal = g.pos.LegalMoves()
	g.status = g.evaluate()
	return g.status, nil
}

// matchLegal resolves the caller's candidate to the generated move carrying
// the full metadata (captured piece, castle and en passant flags). Matching
// is by from, to and promotion choice.
func (g *Game) matchLegal(m Move) (Move, error) {
	promotionRequired := false
	for _, c := range g.legal {
		if c.From != m.From || c.To != m.To {
			continue
		}
		if c.Promotion == m.Promotion {
			return c, nil
		}
		if c.Promotion != Empty {
			promotionRequired = true
		}
	}
	if promotionRequired {
		return Move{}, ErrInvalidPromotion
	}
	return Move{}, ErrIllegalMove
}

// evaluate recomputes the game status for the current position. An empty
// legal move set takes precedence over the draw rules, then repetition,
// the fifty-move rule and insufficient material in that order.
func (g *Game) evaluate() Status {
	st := classify(&g.pos, g.legal)
	if st.Terminal() {
		return st
	}
	switch {
	case g.seen[g.pos.Hash()] >= 3:
		return Status{Kind: DrawByRepetition}
	case g.pos.HalfmoveClock >= 100:
		return Status{Kind: DrawByFiftyMove}
	case insufficientMaterial(&g.pos.Board):
		return Status{Kind: DrawByInsufficientMaterial}
	}
	return st
}

// OfferDraw records an outstanding draw offer by side. A later offer
// replaces an earlier one; the offer is void as soon as any move is played
// without acceptance.
func (g *Game) OfferDraw(side Color) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.offerBy = side
	g.offerPending = true
	return nil
}

// AcceptDraw ends the game as agreed drawn. Only the side that did not
// offer may accept.
func (g *Game) AcceptDraw(side Color) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if !g.offerPending || g.offerBy == side {
		return ErrNoDrawOffer
	}
	g.offerPending = false
	g.status = Status{Kind: DrawByAgreement}
	return nil
}

// DeclineDraw clears a pending offer without ending the game. Playing any
// move declines implicitly; this is the explicit form.
func (g *Game) DeclineDraw(side Color) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	if !g.offerPending || g.offerBy == side {
		return ErrNoDrawOffer
	}
	g.offerPending = false
	return nil
}

// Resign ends the game in favor of the opponent.
func (g *Game) Resign(side Color) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.offerPending = false
	g.status = Status{Kind: Resigned, Side: side.Other()}
	return nil
}

// Forfeit is the forced loss on flag fall, invoked by the external clock
// when side's time expires.
func (g *Game) Forfeit(side Color) error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.offerPending = false
	g.status = Status{Kind: TimedOut, Side: side.Other()}
	return nil
}

// Position returns the current position snapshot.
func (g *Game) Position() Position {
	return g.pos
}

func (g *Game) Status() Status {
	return g.status
}

// History returns the applied moves in order.
func (g *Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// LegalMoves returns the legal move set for the side to move.
func (g *Game) LegalMoves() []Move {
	return append([]Move(nil), g.legal...)
}

// LegalTargets returns the destination squares reachable from one square,
// for highlighting. The four promotion choices collapse to one target.
func (g *Game) LegalTargets(from Square) []Square {
	var targets []Square
	seen := make(map[Square]bool)
	for _, m := range g.legal {
		if m.From == from && !seen[m.To] {
			seen[m.To] = true
			targets = append(targets, m.To)
		}
	}
	return targets
}

// DrawOfferBy reports which side, if any, has an outstanding draw offer.
func (g *Game) DrawOfferBy() (Color, bool) {
	if !g.offerPending {
		return White, false
	}
	return g.offerBy, true
}
