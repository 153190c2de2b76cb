package model

import "github.com/dmaloney/gochess-server/internal/engine"

// PieceState is a piece as serialized to clients.
type PieceState struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// GameState is the full client-facing snapshot broadcast after every
// accepted action. Board is indexed [y][x] with y = 0 at Black's back
// rank, the orientation the frontend renders in.
type GameState struct {
	Board       [8][8]*PieceState `json:"board"`
	ToMove      string            `json:"toMove"`
	Status      string            `json:"status"`
	Winner      *string           `json:"winner,omitempty"`
	IsCheck     bool              `json:"isCheck"`
	MoveHistory []HistoryMove     `json:"moveHistory"`
	LastMove    *SimpleMove       `json:"lastMove"`
	DrawOfferBy *string           `json:"drawOfferBy"`
	Players     GamePlayers       `json:"players"`
}

type GamePlayers struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func snapshotBoard(pos engine.Position) [8][8]*PieceState {
	var board [8][8]*PieceState
	for s := engine.Square(0); s < 64; s++ {
		pc := pos.Board.At(s)
		if pc.IsEmpty() {
			continue
		}
		at := toPosition(s)
		board[at.Y][at.X] = &PieceState{Type: pc.Kind.String(), Color: pc.Color.String()}
	}
	return board
}
