package model

// Conn is the transport-side handle for one connected peer. Send must never
// block: implementations enqueue onto a bounded queue and fail fast with
// ErrStaleConnection once the peer is gone or the queue is full. Conn values
// are used as set keys, so implementations must be pointer types.
type Conn interface {
	Send(data []byte) error
}

// Player represents a game participant
type Player struct {
	Name    string
	Score   int
	Guesses int // attempts used in the current round
	Conn    Conn
}

// ScoreEntry is one leaderboard row
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
