package model

// Player identifies a participant across matchmaking and games.
type Player struct {
	ID string
}

// ClientPlayer is a seat as serialized to clients. TimeLeft is in tenths
// of a second.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// MatchFoundEvent notifies a queued player that a game has been created
// for them.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  string `json:"color"`
}
