package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Watcher WatcherConfig `json:"watcher"`
	History HistoryConfig `json:"history"`
	Tabs    TabsConfig    `json:"tabs"`
	Files   FilesConfig   `json:"files"`
	Paths   PathsConfig   `json:"paths"`
}

// WatcherConfig holds filesystem watcher settings
type WatcherConfig struct {
	DebounceMs int `json:"debounceMs"` // Settle delay after the last raw change notification
}

// HistoryConfig holds navigation history settings
type HistoryConfig struct {
	Limit int `json:"limit"` // Maximum retained history entries
}

// TabsConfig holds tab behavior settings
type TabsConfig struct {
	RestoreOnStart bool   `json:"restoreOnStart"`
	NewTabLocation string `json:"newTabLocation"` // "home" | "desktop" | "custom"
	CustomPath     string `json:"customPath,omitempty"`
}

// FilesConfig holds listing settings
type FilesConfig struct {
	ShowHidden bool `json:"showHidden"`
}

// PathsConfig holds file location overrides; empty fields use the defaults
type PathsConfig struct {
	StateFile string `json:"stateFile,omitempty"`
	Database  string `json:"database,omitempty"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Watcher: WatcherConfig{
			DebounceMs: 300,
		},
		History: HistoryConfig{
			Limit: 100,
		},
		Tabs: TabsConfig{
			RestoreOnStart: true,
			NewTabLocation: "home",
		},
		Files: FilesConfig{
			ShowHidden: false,
		},
	}
}

// ConfigPath returns the config file path: ~/.config/claritydesk/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claritydesk", "config.json")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = ConfigPath()
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	// Try to read existing config
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		// Create default config file
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Parse JSON
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Store error for display, use defaults
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	log.Printf("Config: loaded from %s", m.path)
	m.config = &cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// DebounceMs returns the watcher settle delay, guarding against
// zero or negative values from a hand-edited file
func (m *Manager) DebounceMs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.Watcher.DebounceMs <= 0 {
		return 300
	}
	return m.config.Watcher.DebounceMs
}

// HistoryLimit returns the maximum retained history entries
func (m *Manager) HistoryLimit() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.History.Limit <= 0 {
		return 100
	}
	return m.config.History.Limit
}

// RestoreOnStart returns whether saved tabs are reopened at startup
func (m *Manager) RestoreOnStart() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Tabs.RestoreOnStart
}

// ShowHidden returns whether dot-entries appear in listings
func (m *Manager) ShowHidden() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Files.ShowHidden
}

// NewTabPath resolves the configured location for a fresh tab
func (m *Manager) NewTabPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	home, _ := os.UserHomeDir()
	switch m.config.Tabs.NewTabLocation {
	case "desktop":
		return filepath.Join(home, "Desktop")
	case "custom":
		if m.config.Tabs.CustomPath != "" {
			return m.config.Tabs.CustomPath
		}
		return home
	default:
		return home
	}
}

// StatePath returns the session state file location
func (m *Manager) StatePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.Paths.StateFile != "" {
		return m.config.Paths.StateFile
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claritydesk", "state.json")
}

// DatabasePath returns the bookmark/visit database location
func (m *Manager) DatabasePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.Paths.Database != "" {
		return m.config.Paths.Database
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "claritydesk", "claritydesk.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "claritydesk", "claritydesk.db")
}

// SetShowHidden updates the hidden-entries setting
func (m *Manager) SetShowHidden(show bool) {
	m.mu.Lock()
	m.config.Files.ShowHidden = show
	m.mu.Unlock()
	m.Save()
}

// SetDebounceMs updates the watcher settle delay
func (m *Manager) SetDebounceMs(ms int) {
	m.mu.Lock()
	m.config.Watcher.DebounceMs = ms
	m.mu.Unlock()
	m.Save()
}

// SetHistoryLimit updates the history retention limit
func (m *Manager) SetHistoryLimit(limit int) {
	m.mu.Lock()
	m.config.History.Limit = limit
	m.mu.Unlock()
	m.Save()
}

// SetRestoreOnStart updates the startup restore setting
func (m *Manager) SetRestoreOnStart(restore bool) {
	m.mu.Lock()
	m.config.Tabs.RestoreOnStart = restore
	m.mu.Unlock()
	m.Save()
}

// SetNewTabLocation updates where fresh tabs open
func (m *Manager) SetNewTabLocation(location string) {
	m.mu.Lock()
	m.config.Tabs.NewTabLocation = location
	m.mu.Unlock()
	m.Save()
}

// GenerateConfig backs up existing config and creates a fresh default config
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig() (backupPath string, err error) {
	configPath := ConfigPath()

	// Check if existing config exists
	if _, err := os.Stat(configPath); err == nil {
		// Create backup with timestamp
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(configPath), "config.backup."+timestamp+".json")

		// Read existing config
		data, err := os.ReadFile(configPath)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}

		// Write backup
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write fresh default config
	defaultCfg := DefaultConfig()
	data, err := json.MarshalIndent(defaultCfg, "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
