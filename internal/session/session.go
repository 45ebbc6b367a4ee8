package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/types"
)

// ErrEnvironmentNotFound is returned when an id or name matches no environment
var ErrEnvironmentNotFound = errors.New("environment not found")

// DefaultEnvironments returns the built-in configuration used when
// environments.json is missing or unusable
func DefaultEnvironments() types.EnvironmentsConfig {
	active := int64(1)
	return types.EnvironmentsConfig{
		ActiveEnvironmentID: &active,
		Environments: []types.Environment{
			{ID: 1, Name: "Development", Variables: map[string]string{"BASE_URL": "http://localhost:3000"}},
			{ID: 2, Name: "Staging", Variables: map[string]string{"BASE_URL": "https://staging.api.example.com"}},
			{ID: 3, Name: "Production", Variables: map[string]string{"BASE_URL": "https://api.example.com"}},
		},
	}
}

// Manager owns the environments configuration and its file
type Manager struct {
	path   string
	config types.EnvironmentsConfig
	now    func() time.Time
}

// NewManager creates a manager backed by config.EnvironmentsFile
func NewManager() *Manager {
	return NewManagerAt(config.EnvironmentsFile)
}

// NewManagerAt creates a manager backed by path
func NewManagerAt(path string) *Manager {
	return &Manager{
		path:   path,
		config: DefaultEnvironments(),
		now:    time.Now,
	}
}

// Load reads environments.json. A missing, corrupt or invalid file is
// replaced by the defaults, which are written back immediately.
func (m *Manager) Load() {
	cfg, err := m.read()
	if err != nil {
		log.Printf("environments: %v, using defaults", err)
		m.config = DefaultEnvironments()
		if err := m.Save(); err != nil {
			log.Printf("environments: %v", err)
		}
		return
	}
	m.config = cfg
}

func (m *Manager) read() (types.EnvironmentsConfig, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return types.EnvironmentsConfig{}, fmt.Errorf("failed to read %s: %w", m.path, err)
	}

	var cfg types.EnvironmentsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return types.EnvironmentsConfig{}, fmt.Errorf("failed to parse %s: %w", m.path, err)
	}
	if err := validate(cfg); err != nil {
		return types.EnvironmentsConfig{}, fmt.Errorf("invalid %s: %w", m.path, err)
	}

	for i := range cfg.Environments {
		if cfg.Environments[i].Variables == nil {
			cfg.Environments[i].Variables = make(map[string]string)
		}
	}
	return cfg, nil
}

func validate(cfg types.EnvironmentsConfig) error {
	if cfg.Environments == nil {
		return errors.New("missing environments list")
	}
	seen := make(map[int64]bool, len(cfg.Environments))
	for i, env := range cfg.Environments {
		if strings.TrimSpace(env.Name) == "" {
			return fmt.Errorf("environment %d has no name", i)
		}
		if seen[env.ID] {
			return fmt.Errorf("duplicate environment id %d", env.ID)
		}
		seen[env.ID] = true
	}
	return nil
}

// Save writes the configuration with two-space indentation
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal environments: %w", err)
	}

	if err := os.WriteFile(m.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write environments file: %w", err)
	}

	return nil
}

// persist saves and logs failures; callers never see persistence errors
func (m *Manager) persist() {
	if err := m.Save(); err != nil {
		log.Printf("environments: %v", err)
	}
}

// Config returns the current configuration
func (m *Manager) Config() types.EnvironmentsConfig {
	return m.config
}

// Environments returns the environments in order
func (m *Manager) Environments() []types.Environment {
	return m.config.Environments
}

// ActiveID returns the active environment id, or nil
func (m *Manager) ActiveID() *int64 {
	return m.config.ActiveEnvironmentID
}

// Active returns the active environment, or nil when none is active
// or the active id points nowhere
func (m *Manager) Active() *types.Environment {
	if m.config.ActiveEnvironmentID == nil {
		return nil
	}
	return m.Get(*m.config.ActiveEnvironmentID)
}

// ActiveVariables returns the active environment's variables or an empty map
func (m *Manager) ActiveVariables() map[string]string {
	if env := m.Active(); env != nil {
		return env.Variables
	}
	return map[string]string{}
}

// Get returns the environment with id, or nil
func (m *Manager) Get(id int64) *types.Environment {
	for i := range m.config.Environments {
		if m.config.Environments[i].ID == id {
			return &m.config.Environments[i]
		}
	}
	return nil
}

// FindByName returns the first environment whose name matches case-insensitively
func (m *Manager) FindByName(name string) *types.Environment {
	for i := range m.config.Environments {
		if strings.EqualFold(m.config.Environments[i].Name, name) {
			return &m.config.Environments[i]
		}
	}
	return nil
}

// SetActive makes id the active environment. Contents are untouched.
func (m *Manager) SetActive(id int64) error {
	if m.Get(id) == nil {
		return fmt.Errorf("%w: %d", ErrEnvironmentNotFound, id)
	}
	m.config.ActiveEnvironmentID = &id
	m.persist()
	return nil
}

// Upsert replaces name and variables of an existing environment, or appends
// env when its id is unknown. A zero id gets a fresh one.
func (m *Manager) Upsert(env types.Environment) types.Environment {
	if env.Variables == nil {
		env.Variables = make(map[string]string)
	}

	if existing := m.Get(env.ID); existing != nil && env.ID != 0 {
		existing.Name = env.Name
		existing.Variables = env.Variables
		m.persist()
		return *existing
	}

	if env.ID == 0 {
		env.ID = m.NewID()
	}
	m.config.Environments = append(m.config.Environments, env)
	m.persist()
	return env
}

// Delete removes id. Removing the active environment moves the active id
// to the first remaining environment, or nil when none remain.
func (m *Manager) Delete(id int64) error {
	if m.Get(id) == nil {
		return fmt.Errorf("%w: %d", ErrEnvironmentNotFound, id)
	}
	m.config = DeleteEnvironment(m.config, id)
	m.persist()
	return nil
}

// DeleteEnvironment returns cfg without id, reassigning the active id
// when needed. cfg is not modified.
func DeleteEnvironment(cfg types.EnvironmentsConfig, id int64) types.EnvironmentsConfig {
	remaining := make([]types.Environment, 0, len(cfg.Environments))
	for _, env := range cfg.Environments {
		if env.ID != id {
			remaining = append(remaining, env)
		}
	}

	out := types.EnvironmentsConfig{
		ActiveEnvironmentID: cfg.ActiveEnvironmentID,
		Environments:        remaining,
	}

	if cfg.ActiveEnvironmentID != nil && *cfg.ActiveEnvironmentID == id {
		if len(remaining) > 0 {
			first := remaining[0].ID
			out.ActiveEnvironmentID = &first
		} else {
			out.ActiveEnvironmentID = nil
		}
	}
	return out
}

// NewID derives an id from the current time in milliseconds, bumped
// past any id already in use
func (m *Manager) NewID() int64 {
	id := m.now().UnixMilli()
	for m.Get(id) != nil {
		id++
	}
	return id
}
