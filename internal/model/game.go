package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dmaloney/gochess-server/internal/engine"
	"github.com/dmaloney/gochess-server/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const initialTime = 10 * time.Minute

var (
	ErrGameFull        = errors.New("game is full")
	ErrPlayerNotInGame = errors.New("player not in game")
	ErrMoveOutOfBounds = errors.New("move out of bounds")
)

// GameConnections is the websocket fan-out set for one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is one live session: the rules engine plus the two seats, the two
// clocks and the connected observers. All engine access is serialized
// through the session mutex; the engine itself does no locking.
type Game struct {
	ID          string
	mu          sync.Mutex
	game        *engine.Game
	whiteID     string
	blackID     string
	whiteClock  *Clock
	blackClock  *Clock
	connections *GameConnections
}

func NewGame(id string) *Game {
	g := &Game{
		ID:          id,
		game:        engine.NewGame(),
		connections: NewGameConnections(),
	}
	g.whiteClock = NewClock(initialTime, func() { g.flagFall(engine.White) })
	g.blackClock = NewClock(initialTime, func() { g.flagFall(engine.Black) })
	return g
}

// AddPlayer seats a player, white first.
func (g *Game) AddPlayer(playerID string) (engine.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.whiteID == "" {
		g.whiteID = playerID
		return engine.White, nil
	}
	if g.blackID == "" {
		g.blackID = playerID
		return engine.Black, nil
	}
	return engine.White, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (playerID == g.whiteID || playerID == g.blackID)
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.whiteID == "" || g.blackID == ""
}

func (g *Game) playerColor(playerID string) (engine.Color, bool) {
	switch playerID {
	case "":
		return engine.White, false
	case g.whiteID:
		return engine.White, true
	case g.blackID:
		return engine.Black, true
	}
	return engine.White, false
}

func (g *Game) clock(c engine.Color) *Clock {
	if c == engine.White {
		return g.whiteClock
	}
	return g.blackClock
}

// MakeMove validates and applies one move on behalf of playerID. The
// engine rejects wrong-turn, illegal and malformed-promotion attempts; on
// acceptance the mover's clock stops and the opponent's starts.
func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()

	color, ok := g.playerColor(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrPlayerNotInGame
	}
	if !move.From.Valid() || !move.To.Valid() {
		g.mu.Unlock()
		return ErrMoveOutOfBounds
	}

	candidate := engine.Move{
		From:      move.From.Square(),
		To:        move.To.Square(),
		Promotion: engine.ParsePieceKind(move.Promotion),
	}
	status, err := g.game.ApplyMove(color, candidate)
	if err != nil {
		g.mu.Unlock()
		return err
	}

	g.clock(color).Stop()
	if status.Terminal() {
		g.clock(color.Other()).Stop()
	} else {
		g.clock(color.Other()).Start()
	}

	state := g.snapshot()
	g.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

func (g *Game) Resign(playerID string) error {
	return g.endAction(playerID, func(c engine.Color) error { return g.game.Resign(c) })
}

func (g *Game) OfferDraw(playerID string) error {
	return g.endAction(playerID, func(c engine.Color) error { return g.game.OfferDraw(c) })
}

func (g *Game) AcceptDraw(playerID string) error {
	return g.endAction(playerID, func(c engine.Color) error { return g.game.AcceptDraw(c) })
}

func (g *Game) DeclineDraw(playerID string) error {
	return g.endAction(playerID, func(c engine.Color) error { return g.game.DeclineDraw(c) })
}

// endAction runs a draw or resignation transition for playerID and
// broadcasts the result, stopping the clocks if the game ended.
func (g *Game) endAction(playerID string, action func(engine.Color) error) error {
	g.mu.Lock()

	color, ok := g.playerColor(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrPlayerNotInGame
	}
	if err := action(color); err != nil {
		g.mu.Unlock()
		return err
	}
	if g.game.Status().Terminal() {
		g.whiteClock.Stop()
		g.blackClock.Stop()
	}

	state := g.snapshot()
	g.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

// flagFall is invoked by a clock when its side runs out of time.
func (g *Game) flagFall(color engine.Color) {
	g.mu.Lock()

	if err := g.game.Forfeit(color); err != nil {
		g.mu.Unlock()
		return
	}
	g.whiteClock.Stop()
	g.blackClock.Stop()

	state := g.snapshot()
	g.mu.Unlock()

	g.broadcastState(state)
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// snapshot builds the client-facing state. Callers must hold g.mu.
func (g *Game) snapshot() GameState {
	pos := g.game.Position()
	status := g.game.Status()

	state := GameState{
		Board:       snapshotBoard(pos),
		ToMove:      pos.SideToMove.String(),
		Status:      status.Kind.String(),
		IsCheck:     status.Kind == engine.Check,
		MoveHistory: make([]HistoryMove, 0),
		Players: GamePlayers{
			White: ClientPlayer{
				ID:       g.whiteID,
				Color:    engine.White.String(),
				TimeLeft: int(g.whiteClock.Remaining().Milliseconds() / 100),
			},
			Black: ClientPlayer{
				ID:       g.blackID,
				Color:    engine.Black.String(),
				TimeLeft: int(g.blackClock.Remaining().Milliseconds() / 100),
			},
		},
	}

	switch status.Kind {
	case engine.Checkmate, engine.Resigned, engine.TimedOut:
		winner := status.Side.String()
		state.Winner = &winner
	}

	history := g.game.History()
	for _, m := range history {
		state.MoveHistory = append(state.MoveHistory, toHistoryMove(m))
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		state.LastMove = &SimpleMove{From: toPosition(last.From), To: toPosition(last.To)}
	}

	if side, pending := g.game.DrawOfferBy(); pending {
		offerBy := side.String()
		state.DrawOfferBy = &offerBy
	}
	return state
}

// LegalTargets reports the destinations reachable from one square, for
// client-side highlighting.
func (g *Game) LegalTargets(from Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	targets := make([]Position, 0)
	if !from.Valid() {
		return targets
	}
	for _, to := range g.game.LegalTargets(from.Square()) {
		targets = append(targets, toPosition(to))
	}
	return targets
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	authorized := g.isPlayerInGame(playerID) || g.canSpectate()
	state := g.snapshot()
	g.mu.Unlock()

	if !authorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the newcomer.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState(state)
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return
	}
	msg := ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: payload,
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
