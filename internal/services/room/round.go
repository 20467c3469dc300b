package room

import "github.com/numguess/numguess/internal/model"

// round holds the mutable per-round state; the range and the guess cap
// live in Config
type round struct {
	secret int
	active bool
	winner string
	number int
}

// OutcomeKind classifies the result of a processed guess
type OutcomeKind int

const (
	// OutcomeIgnored means the named player is unknown: a raced leave or
	// a made-up name. The guess is dropped without a reply.
	OutcomeIgnored OutcomeKind = iota

	// OutcomeInactive means the round is between a win and the restart.
	OutcomeInactive

	// OutcomeHint is a wrong guess with attempts to spare.
	OutcomeHint

	// OutcomeExhausted is a wrong guess at or past the attempt cap.
	OutcomeExhausted

	// OutcomeWon ends the round.
	OutcomeWon
)

// GuessOutcome is the result of one processed guess
type GuessOutcome struct {
	Kind  OutcomeKind
	Guess int

	// Set for OutcomeHint
	Hint      model.Hint
	Remaining int

	// Set for OutcomeWon
	Winner       string
	Secret       int
	GuessesTaken int
	Points       int
}

// points awarded for a win: fewer attempts, more points, floored at 1 so
// a win past the attempt cap still counts
func points(maxGuesses, attempts int) int {
	p := maxGuesses - attempts + 1
	if p < 1 {
		p = 1
	}
	return p
}
