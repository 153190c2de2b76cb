package engine

type StatusKind int8

const (
	InProgress StatusKind = iota
	Check
	Checkmate
	Stalemate
	DrawByRepetition
	DrawByFiftyMove
	DrawByInsufficientMaterial
	DrawByAgreement
	Resigned
	TimedOut
)

func (k StatusKind) String() string {
	switch k {
	case InProgress:
		return "inProgress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case DrawByRepetition:
		return "drawByRepetition"
	case DrawByFiftyMove:
		return "drawByFiftyMove"
	case DrawByInsufficientMaterial:
		return "drawByInsufficientMaterial"
	case DrawByAgreement:
		return "drawByAgreement"
	case Resigned:
		return "resigned"
	case TimedOut:
		return "timedOut"
	}
	return "unknown"
}

// Status reports how the game stands. Side is the checked player while the
// game is running (Check) and the winner once it has been decided
// (Checkmate, Resigned, TimedOut). Draws and stalemate carry no side.
type Status struct {
	Kind StatusKind
	Side Color
}

// Terminal reports whether the game accepts no further moves.
func (s Status) Terminal() bool {
	switch s.Kind {
	case InProgress, Check:
		return false
	}
	return true
}

// classify evaluates mate, stalemate and check from a position and its
// already-computed legal move set, so the check simulation done during
// generation is not repeated.
func classify(p *Position, legal []Move) Status {
	if len(legal) == 0 {
		if p.InCheck() {
			return Status{Kind: Checkmate, Side: p.SideToMove.Other()}
		}
		return Status{Kind: Stalemate}
	}
	if p.InCheck() {
		return Status{Kind: Check, Side: p.SideToMove}
	}
	return Status{Kind: InProgress}
}

// insufficientMaterial reports whether neither side can possibly deliver
// mate: K vs K, K+B vs K, K+N vs K, or K+B vs K+B with both bishops on the
// same square color. Any pawn, rook or queen on the board disqualifies it.
func insufficientMaterial(b *Board) bool {
	type placed struct {
		sq Square
		pc Piece
	}
	var minors []placed
	for sq := Square(0); sq < 64; sq++ {
		pc := b[sq]
		switch pc.Kind {
		case Empty, King:
		case Knight, Bishop:
			if len(minors) == 2 {
				return false
			}
			minors = append(minors, placed{sq, pc})
		default:
			return false
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	default:
		a, c := minors[0], minors[1]
		if a.pc.Kind != Bishop || c.pc.Kind != Bishop || a.pc.Color == c.pc.Color {
			return false
		}
		return squareShade(a.sq) == squareShade(c.sq)
	}
}

func squareShade(sq Square) int {
	return (sq.File() + sq.Rank()) % 2
}
