package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies the type of an outbound event
type EventType string

const (
	// Direct replies
	EventJoined       EventType = "joined"
	EventError        EventType = "error"
	EventGuessResult  EventType = "guess_result"
	EventOutOfGuesses EventType = "out_of_guesses"
	EventGameState    EventType = "game_state"

	// Broadcasts
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventPlayerGuessed EventType = "player_guessed"
	EventGameWon       EventType = "game_won"
	EventNewRound      EventType = "new_round"
)

// Event is any outbound message. Stamp attaches the send time; only the
// broadcast path stamps, direct replies carry no timestamp.
type Event interface {
	EventType() EventType
	Stamp(t time.Time)
}

// Header carries the fields every outbound event shares. Embedding it
// flattens the type tag and timestamp into the event's own JSON object.
type Header struct {
	Type      EventType `json:"type"`
	Timestamp string    `json:"timestamp,omitempty"`
}

func (h *Header) EventType() EventType { return h.Type }

func (h *Header) Stamp(t time.Time) { h.Timestamp = t.Format(time.RFC3339) }

// Joined confirms a successful join to the joining player
type Joined struct {
	Header
	Message  string   `json:"message"`
	GameInfo GameInfo `json:"game_info"`
}

func NewJoined(name string, info GameInfo) *Joined {
	return &Joined{
		Header:   Header{Type: EventJoined},
		Message:  fmt.Sprintf("Welcome, %s! Guess the number between %d and %d", name, info.Range[0], info.Range[1]),
		GameInfo: info,
	}
}

// ErrorEvent reports a rejected or malformed command to its sender
type ErrorEvent struct {
	Header
	Message string `json:"message"`
}

func NewError(message string) *ErrorEvent {
	return &ErrorEvent{Header: Header{Type: EventError}, Message: message}
}

// GuessResult gives the guesser a directional hint
type GuessResult struct {
	Header
	Guess            int    `json:"guess"`
	Hint             Hint   `json:"hint"`
	RemainingGuesses int    `json:"remaining_guesses"`
	Message          string `json:"message"`
}

func NewGuessResult(guess int, hint Hint, remaining int) *GuessResult {
	return &GuessResult{
		Header:           Header{Type: EventGuessResult},
		Guess:            guess,
		Hint:             hint,
		RemainingGuesses: remaining,
		Message:          fmt.Sprintf("%d is %s!", guess, hint),
	}
}

// OutOfGuesses tells a player their attempts for the round are spent. The
// message never includes the secret: the round is still live for everyone
// else.
type OutOfGuesses struct {
	Header
	Message string `json:"message"`
}

func NewOutOfGuesses() *OutOfGuesses {
	return &OutOfGuesses{
		Header:  Header{Type: EventOutOfGuesses},
		Message: "No guesses left this round!",
	}
}

// GameState answers a state query with the full room snapshot
type GameState struct {
	Header
	GameSnapshot
}

func NewGameState(snap GameSnapshot) *GameState {
	return &GameState{Header: Header{Type: EventGameState}, GameSnapshot: snap}
}

// PlayerJoined announces a new player to everyone else
type PlayerJoined struct {
	Header
	Player       string `json:"player"`
	TotalPlayers int    `json:"total_players"`
}

func NewPlayerJoined(name string, total int) *PlayerJoined {
	return &PlayerJoined{Header: Header{Type: EventPlayerJoined}, Player: name, TotalPlayers: total}
}

// PlayerLeft announces a departure to the remaining players
type PlayerLeft struct {
	Header
	Player       string `json:"player"`
	TotalPlayers int    `json:"total_players"`
}

func NewPlayerLeft(name string, total int) *PlayerLeft {
	return &PlayerLeft{Header: Header{Type: EventPlayerLeft}, Player: name, TotalPlayers: total}
}

// PlayerGuessed tells the other players about a wrong guess
type PlayerGuessed struct {
	Header
	Player    string `json:"player"`
	Guess     int    `json:"guess"`
	Remaining int    `json:"remaining"`
}

func NewPlayerGuessed(name string, guess, remaining int) *PlayerGuessed {
	return &PlayerGuessed{Header: Header{Type: EventPlayerGuessed}, Player: name, Guess: guess, Remaining: remaining}
}

// GameWon announces the round winner to everyone, winner included. The
// secret is revealed here because the round is over.
type GameWon struct {
	Header
	Winner       string `json:"winner"`
	SecretNumber int    `json:"secret_number"`
	GuessesTaken int    `json:"guesses_taken"`
	PointsEarned int    `json:"points_earned"`
}

func NewGameWon(winner string, secret, attempts, points int) *GameWon {
	return &GameWon{
		Header:       Header{Type: EventGameWon},
		Winner:       winner,
		SecretNumber: secret,
		GuessesTaken: attempts,
		PointsEarned: points,
	}
}

// RoundStarted announces an automatic round restart
type RoundStarted struct {
	Header
	Round   int    `json:"round"`
	Message string `json:"message"`
}

func NewRoundStarted(round, min, max int) *RoundStarted {
	return &RoundStarted{
		Header:  Header{Type: EventNewRound},
		Round:   round,
		Message: fmt.Sprintf("New round! Guess a number between %d and %d", min, max),
	}
}

// Action names a client-initiated operation
type Action string

const (
	ActionJoin     Action = "join"
	ActionGuess    Action = "guess"
	ActionGetState Action = "get_state"
)

// ClientCommand is the envelope for every inbound message. Guess stays raw
// so a non-integer value is rejected on its own instead of failing the
// whole decode.
type ClientCommand struct {
	Action Action          `json:"action"`
	Name   string          `json:"name,omitempty"`
	Player string          `json:"player,omitempty"`
	Guess  json.RawMessage `json:"guess,omitempty"`
}
