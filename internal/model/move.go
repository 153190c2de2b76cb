package model

import "github.com/dmaloney/gochess-server/internal/engine"

// Position is a board coordinate as clients send it: x is the file and y
// counts ranks downward from Black's back rank, matching the rendered
// board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) Square() engine.Square {
	return engine.MakeSquare(p.X, 7-p.Y)
}

func toPosition(sq engine.Square) Position {
	return Position{X: sq.File(), Y: 7 - sq.Rank()}
}

// WSMove is the move payload received over the websocket.
type WSMove struct {
	From      Position `json:"from"`
	To        Position `json:"to"`
	Promotion string   `json:"promotion,omitempty"`
}

// SimpleMove is the from/to pair echoed back for move highlighting.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// HistoryMove is one applied ply as reported to clients.
type HistoryMove struct {
	From      Position    `json:"from"`
	To        Position    `json:"to"`
	Piece     PieceState  `json:"piece"`
	Captured  *PieceState `json:"captured,omitempty"`
	Promotion string      `json:"promotion,omitempty"`
}

func toHistoryMove(m engine.Move) HistoryMove {
	hm := HistoryMove{
		From:  toPosition(m.From),
		To:    toPosition(m.To),
		Piece: PieceState{Type: m.Piece.Kind.String(), Color: m.Piece.Color.String()},
	}
	if !m.Captured.IsEmpty() {
		hm.Captured = &PieceState{Type: m.Captured.Kind.String(), Color: m.Captured.Color.String()}
	}
	if m.Promotion != engine.Empty {
		hm.Promotion = m.Promotion.String()
	}
	return hm
}
