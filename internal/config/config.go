// Package config loads the jobform runtime configuration. Values are layered:
// built-in defaults, then an optional YAML file, then JOBFORM_ environment
// variables.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all configuration for the jobform binaries.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Form       FormConfig       `koanf:"form"`
	Theme      ThemeConfig      `koanf:"theme"`
	Submission SubmissionConfig `koanf:"submission"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes"`
	SessionTTL      time.Duration `koanf:"session_ttl"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string   `koanf:"level"`
	Format string   `koanf:"format"`
	Redact []string `koanf:"redact"`
}

// FormConfig selects the form definition to serve. An empty Definitions
// directory means the embedded definitions. Templates names a directory
// whose files replace the bundled HTML templates of the same path.
type FormConfig struct {
	Definitions string `koanf:"definitions"`
	ID          string `koanf:"id"`
	Templates   string `koanf:"templates"`
}

// ThemeConfig selects the go-theme manifest and variant.
type ThemeConfig struct {
	Name    string `koanf:"name"`
	Variant string `koanf:"variant"`
}

// SubmissionConfig tunes the simulated submission effect.
type SubmissionConfig struct {
	Delay time.Duration `koanf:"delay"`
}
