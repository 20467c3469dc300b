package model

import "errors"

// Common errors used across the application
var (
	// Join errors
	ErrNameTaken     = errors.New("player name already taken")
	ErrAlreadyJoined = errors.New("connection is already joined")

	// Transport errors
	ErrStaleConnection = errors.New("connection is stale")
)
