package model

// Hint gives the direction of a wrong guess relative to the secret
type Hint string

const (
	HintTooLow  Hint = "too low"
	HintTooHigh Hint = "too high"
)

// GameInfo describes the current round for a joining player
type GameInfo struct {
	Range      [2]int `json:"range"`
	MaxGuesses int    `json:"max_guesses"`
	Round      int    `json:"round"`
}

// GameSnapshot is a consistent view of the room, safe to hand to any
// serializer without holding the room lock
type GameSnapshot struct {
	Round        int          `json:"round"`
	IsActive     bool         `json:"is_active"`
	Leaderboard  []ScoreEntry `json:"leaderboard"`
	TotalPlayers int          `json:"total_players"`
}
