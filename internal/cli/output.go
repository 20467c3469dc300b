package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case StateResult:
		o.printStateResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// StateResult response type (matches the game_state payload)
type StateResult struct {
	Round        int          `json:"round"`
	IsActive     bool         `json:"is_active"`
	Leaderboard  []ScoreEntry `json:"leaderboard"`
	TotalPlayers int          `json:"total_players"`
}

// ScoreEntry is one leaderboard row
type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func (o *Output) printStateResult(s StateResult) {
	activeStr := "no"
	if s.IsActive {
		activeStr = "yes"
	}
	fmt.Printf("Round: %d\n", s.Round)
	fmt.Printf("Active: %s\n", activeStr)
	fmt.Printf("Players online: %d\n", s.TotalPlayers)
	printLeaderboard(s.Leaderboard)
}

func printLeaderboard(entries []ScoreEntry) {
	if len(entries) == 0 {
		fmt.Println("Leaderboard: empty")
		return
	}
	fmt.Println("Leaderboard:")
	for i, e := range entries {
		fmt.Printf("  %d. %s - %d pts\n", i+1, e.Name, e.Score)
	}
}
