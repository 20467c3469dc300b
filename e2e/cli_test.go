package e2e_test

import (
	"bufio"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "numguess-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/numguess")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for _, cmd := range []string{"health", "ping"} {
		output, err := cli.run(cmd)
		require.NoError(t, err, "output: %s", output)

		var resp struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &resp))
		assert.Equal(t, "ok", resp.Status, cmd)
	}
}

func TestCLI_State(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("state")
	require.NoError(t, err, "output: %s", output)

	var resp struct {
		Round        int  `json:"round"`
		IsActive     bool `json:"is_active"`
		TotalPlayers int  `json:"total_players"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, 1, resp.Round)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 0, resp.TotalPlayers)
}

func TestCLI_ServerDown(t *testing.T) {
	cli := newCLIRunner(t, "http://127.0.0.1:1")

	output, err := cli.run("health")
	assert.Error(t, err, "output: %s", output)
}

func TestCLI_PlaySession(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	runner := newCLIRunner(t, ts.addr)

	cmd := exec.Command(runner.binaryPath, "--server", ts.addr, "--output", "json", "play", "alice")
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())
	t.Cleanup(func() { _ = cmd.Process.Kill() })

	scanner := bufio.NewScanner(stdout)
	readFrame := func() map[string]any {
		require.True(t, scanner.Scan(), "stdout closed early: %v", scanner.Err())
		var event map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event), "line: %s", scanner.Text())
		return event
	}

	joined := readFrame()
	assert.Equal(t, "joined", joined["type"])

	state := readFrame()
	assert.Equal(t, "game_state", state["type"])
	assert.Equal(t, float64(1), state["total_players"])

	_, err = stdin.Write([]byte("50\n"))
	require.NoError(t, err)

	result := readFrame()
	switch result["type"] {
	case "guess_result":
		assert.Equal(t, float64(9), result["remaining_guesses"])
	case "game_won":
		assert.Equal(t, "alice", result["winner"])
	default:
		t.Fatalf("unexpected frame after guess: %v", result)
	}

	_, err = stdin.Write([]byte("quit\n"))
	require.NoError(t, err)
	require.NoError(t, stdin.Close())

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()
	select {
	case err := <-waitErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("play session did not exit after quit")
	}
}
