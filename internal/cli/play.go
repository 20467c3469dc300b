package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

const playHelp = `Commands:
  <number>   submit a guess
  state, s   show the current game state
  help, h    show this help
  quit, q    leave the game`

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <name>",
		Short: "Join the game and play interactively",
		Long: `Connect to the server, join as <name>, and play from the terminal.

` + playHelp + `

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(args[0])
		},
	}
}

func runPlay(name string) error {
	dialCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, err := client.DialGame(dialCtx)
	cancel()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	jsonOutput := cfg.Output == "json"

	if err := sendCommand(conn, map[string]any{"action": "join", "name": name}); err != nil {
		return err
	}

	// Server frames print as they arrive
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			renderServerEvent(frame, jsonOutput)
		}
	}()

	// Terminal input feeds the command loop
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if !jsonOutput {
		fmt.Println("Type a number to guess, 'state' for the game state, 'quit' to leave.")
	}

	for {
		select {
		case <-done:
			if !jsonOutput {
				fmt.Println("Disconnected")
			}
			return nil
		case <-sigCh:
			return closeGracefully(conn, done)
		case line, ok := <-lines:
			if !ok {
				return closeGracefully(conn, done)
			}
			quit, err := handleLine(conn, name, line, jsonOutput)
			if err != nil {
				return err
			}
			if quit {
				return closeGracefully(conn, done)
			}
		}
	}
}

func handleLine(conn *websocket.Conn, name, line string, jsonOutput bool) (bool, error) {
	input := strings.TrimSpace(line)
	switch input {
	case "":
		return false, nil
	case "quit", "q":
		return true, nil
	case "state", "s":
		return false, sendCommand(conn, map[string]any{"action": "get_state"})
	case "help", "h", "?":
		if !jsonOutput {
			fmt.Println(playHelp)
		}
		return false, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		if !jsonOutput {
			fmt.Println("Unrecognized input. Type a number, 'state', 'help', or 'quit'.")
		}
		return false, nil
	}
	return false, sendCommand(conn, map[string]any{"action": "guess", "player": name, "guess": value})
}

func sendCommand(conn *websocket.Conn, cmd map[string]any) error {
	if err := conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

// closeGracefully tells the server we are leaving and waits briefly for it
// to close the connection from its side.
func closeGracefully(conn *websocket.Conn, done <-chan struct{}) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.WriteMessage(websocket.CloseMessage, msg)

	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return nil
}

// serverEvent is the union of every frame the server sends
type serverEvent struct {
	Type             string       `json:"type"`
	Message          string       `json:"message"`
	Player           string       `json:"player"`
	Guess            int          `json:"guess"`
	Hint             string       `json:"hint"`
	RemainingGuesses int          `json:"remaining_guesses"`
	Remaining        int          `json:"remaining"`
	Winner           string       `json:"winner"`
	SecretNumber     int          `json:"secret_number"`
	GuessesTaken     int          `json:"guesses_taken"`
	PointsEarned     int          `json:"points_earned"`
	Round            int          `json:"round"`
	IsActive         bool         `json:"is_active"`
	Leaderboard      []ScoreEntry `json:"leaderboard"`
	TotalPlayers     int          `json:"total_players"`
}

func renderServerEvent(frame []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(frame))
		return
	}

	var e serverEvent
	if err := json.Unmarshal(frame, &e); err != nil {
		fmt.Println(string(frame))
		return
	}

	switch e.Type {
	case "joined", "out_of_guesses", "new_round":
		fmt.Println(e.Message)
	case "error":
		fmt.Printf("Error: %s\n", e.Message)
	case "guess_result":
		fmt.Printf("%s %d guesses left.\n", e.Message, e.RemainingGuesses)
	case "game_state":
		NewOutput("text").Print(StateResult{
			Round:        e.Round,
			IsActive:     e.IsActive,
			Leaderboard:  e.Leaderboard,
			TotalPlayers: e.TotalPlayers,
		})
	case "player_joined":
		fmt.Printf("%s joined the game (%d players online)\n", e.Player, e.TotalPlayers)
	case "player_left":
		fmt.Printf("%s left the game (%d players online)\n", e.Player, e.TotalPlayers)
	case "player_guessed":
		fmt.Printf("%s guessed %d (%d guesses left)\n", e.Player, e.Guess, e.Remaining)
	case "game_won":
		fmt.Printf("%s won! The number was %d (%d guesses, +%d points)\n", e.Winner, e.SecretNumber, e.GuessesTaken, e.PointsEarned)
	default:
		fmt.Println(string(frame))
	}
}
