package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/studiowebux/restdeck/internal/types"
	"github.com/tidwall/jsonc"
)

const (
	DefaultRequestTimeoutSeconds = 30
	DefaultMessageTimeoutSeconds = 3
)

// Version is stamped by the cmd package and used in the default User-Agent
var Version = "dev"

// DefaultSettings returns the settings used when settings.jsonc is absent
func DefaultSettings() types.Settings {
	return types.Settings{
		RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		UserAgent:             "restdeck/" + Version,
		MessageTimeoutSeconds: DefaultMessageTimeoutSeconds,
	}
}

// ParseSettings decodes JSON-with-comments settings over the defaults
func ParseSettings(data []byte) (types.Settings, error) {
	settings := DefaultSettings()
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings: %w", err)
	}

	if settings.RequestTimeoutSeconds <= 0 {
		settings.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if settings.MessageTimeoutSeconds <= 0 {
		settings.MessageTimeoutSeconds = DefaultMessageTimeoutSeconds
	}
	if settings.UserAgent == "" {
		settings.UserAgent = "restdeck/" + Version
	}

	return settings, nil
}

// LoadSettings reads SettingsFile. A missing or broken file yields defaults.
func LoadSettings() types.Settings {
	data, err := os.ReadFile(SettingsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("settings: read %s: %v", SettingsFile, err)
		}
		return DefaultSettings()
	}

	settings, err := ParseSettings(data)
	if err != nil {
		log.Printf("settings: %s: %v", SettingsFile, err)
	}
	return settings
}

// RequestTimeout converts the configured seconds into a duration
func RequestTimeout(s types.Settings) time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// MessageTimeout converts the configured toast lifetime into a duration
func MessageTimeout(s types.Settings) time.Duration {
	return time.Duration(s.MessageTimeoutSeconds) * time.Second
}
