package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/numguess/numguess/internal/dependencies/mocks"
	"github.com/numguess/numguess/internal/services/room"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Queued Intn results drive secret selection, first round included, so the
// first value must be queued here rather than after construction.
func NewTestApp(roomCfg room.Config, secretDraws ...int) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	for _, n := range secretDraws {
		mockRandom.QueueIntn(n)
	}

	app := newWithDependencies(roomCfg, mockClock, mockRandom, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
