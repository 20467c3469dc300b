package room

import (
	"fmt"
	"time"
)

// Config tunes the guessing game
type Config struct {
	// MinValue and MaxValue bound the secret, inclusive
	MinValue int
	MaxValue int

	// MaxGuesses caps attempts per player per round
	MaxGuesses int

	// RestartDelay is how long after a win the next round starts
	RestartDelay time.Duration
}

// DefaultConfig returns the standard game parameters
func DefaultConfig() Config {
	return Config{
		MinValue:     1,
		MaxValue:     100,
		MaxGuesses:   10,
		RestartDelay: 5 * time.Second,
	}
}

// Validate reports whether the config describes a playable game
func (c Config) Validate() error {
	if c.MinValue >= c.MaxValue {
		return fmt.Errorf("guess range [%d, %d] is empty", c.MinValue, c.MaxValue)
	}
	if c.MaxGuesses < 1 {
		return fmt.Errorf("max guesses must be at least 1, got %d", c.MaxGuesses)
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("restart delay must not be negative, got %s", c.RestartDelay)
	}
	return nil
}
