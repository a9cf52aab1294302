package model

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration, read from config.toml.
type Config struct {
	Basedir          string
	DefaultTenant    string
	FirestoreProject string
	MailAPIKey       string
	MailSecret       string
	MailFrom         string
	MailFromName     string
	Mode             string
	Servers          map[string]Server
}

// Server describes one database backend, selected via Config.Mode.
type Server struct {
	Database   string
	DBName     string
	DBUser     string
	DBPassword string
	DBHost     string
}

// LoadConfig reads and parses a TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
