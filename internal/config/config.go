package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LobbyServer holds all configuration for the lobby server.
type LobbyServer struct {
	// Network
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default: debug)

	// Identity shown to clients in the Welcome payload
	ServerIdent    string   `yaml:"server_ident"`
	WelcomeMessage string   `yaml:"welcome_message"`
	DefaultChannel string   `yaml:"default_channel"`
	GameVersions   []string `yaml:"game_versions"`

	// Единственная версия игры, с которой клиент будет принят.
	AllowedGameVersion string `yaml:"allowed_game_version"`

	// Queue capacities
	EventQueueSize  int `yaml:"event_queue_size"`
	ClientQueueSize int `yaml:"client_queue_size"`
}

// Addr returns the bind address in host:port form.
func (c LobbyServer) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// AllowedVersion parses the configured game-version GUID.
func (c LobbyServer) AllowedVersion() (uuid.UUID, error) {
	v, err := uuid.Parse(c.AllowedGameVersion)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("parsing allowed_game_version: %w", err)
	}
	return v, nil
}

// DefaultLobbyServer returns LobbyServer config with sensible defaults.
func DefaultLobbyServer() LobbyServer {
	return LobbyServer{
		BindAddress:        "0.0.0.0",
		Port:               17171,
		LogLevel:           "debug",
		ServerIdent:        "IE::Net",
		WelcomeMessage:     "Welcome to IE::Net, a community-operated EarthNet server",
		DefaultChannel:     "General",
		GameVersions:       []string{"tmp2.2"},
		AllowedGameVersion: "534ba248-a87c-4ce9-8bee-bc376aae6134",
		EventQueueSize:     256,
		ClientQueueSize:    64,
	}
}

// LoadLobbyServer loads lobby server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadLobbyServer(path string) (LobbyServer, error) {
	cfg := DefaultLobbyServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
