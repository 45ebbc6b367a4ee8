package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTimeout int
		wantAgent   string
		wantErr     bool
	}{
		{
			name:        "empty object keeps defaults",
			input:       `{}`,
			wantTimeout: DefaultRequestTimeoutSeconds,
			wantAgent:   "restdeck/" + Version,
		},
		{
			name: "comments and trailing commas",
			input: `{
				// seconds
				"requestTimeoutSeconds": 5,
				"userAgent": "custom/1.0", /* inline */
			}`,
			wantTimeout: 5,
			wantAgent:   "custom/1.0",
		},
		{
			name:        "non-positive timeout falls back",
			input:       `{"requestTimeoutSeconds": -1}`,
			wantTimeout: DefaultRequestTimeoutSeconds,
			wantAgent:   "restdeck/" + Version,
		},
		{
			name:        "invalid json",
			input:       `{"requestTimeoutSeconds": "ten"}`,
			wantTimeout: DefaultRequestTimeoutSeconds,
			wantAgent:   "restdeck/" + Version,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSettings([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.RequestTimeoutSeconds != tt.wantTimeout {
				t.Errorf("RequestTimeoutSeconds = %d, want %d", got.RequestTimeoutSeconds, tt.wantTimeout)
			}
			if got.UserAgent != tt.wantAgent {
				t.Errorf("UserAgent = %q, want %q", got.UserAgent, tt.wantAgent)
			}
		})
	}
}

func TestParseSettings_AnalyticsDefault(t *testing.T) {
	got, err := ParseSettings([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsAnalyticsEnabled() {
		t.Error("expected analytics enabled by default")
	}

	got, err = ParseSettings([]byte(`{"analyticsEnabled": false}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsAnalyticsEnabled() {
		t.Error("expected analytics disabled")
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	SetPaths(t.TempDir())

	got := LoadSettings()
	if got.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("RequestTimeoutSeconds = %d, want default", got.RequestTimeoutSeconds)
	}
	if RequestTimeout(got) != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", RequestTimeout(got))
	}
}

func TestInitialize_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "restdeck")

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if HistoryFile != filepath.Join(dir, "history.json") {
		t.Errorf("HistoryFile = %q", HistoryFile)
	}
}
