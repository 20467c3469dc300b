package cli

import "testing"

func TestGameURLSchemes(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "http", baseURL: "http://localhost:8080", want: "ws://localhost:8080/ws"},
		{name: "https", baseURL: "https://game.example.com", want: "wss://game.example.com/ws"},
		{name: "trailing slash trimmed", baseURL: "http://localhost:8080/", want: "ws://localhost:8080/ws"},
		{name: "missing scheme", baseURL: "localhost:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewClient(tt.baseURL).gameURL()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("gameURL(%q) = %q, want error", tt.baseURL, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("gameURL(%q): %v", tt.baseURL, err)
			}
			if got != tt.want {
				t.Errorf("gameURL(%q) = %q, want %q", tt.baseURL, got, tt.want)
			}
		})
	}
}

func TestDefaultConfigReadsServerEnv(t *testing.T) {
	t.Setenv("NUMGUESS_SERVER", "http://game.internal:9000")

	cfg := DefaultConfig()
	if cfg.ServerURL != "http://game.internal:9000" {
		t.Errorf("ServerURL = %q, want env value", cfg.ServerURL)
	}
	if cfg.Output != "text" {
		t.Errorf("Output = %q, want text", cfg.Output)
	}
}

func TestDefaultConfigFallsBackToLocalhost(t *testing.T) {
	t.Setenv("NUMGUESS_SERVER", "")

	cfg := DefaultConfig()
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
}
