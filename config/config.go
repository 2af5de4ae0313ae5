// Package config exposes build metadata and runtime configuration for the
// goblog panel. Values come from the environment, falling back to an
// optional goblog.toml file next to the binary.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// fileConfig mirrors the keys accepted in goblog.toml.
type fileConfig struct {
	Listen       string `toml:"listen,omitempty"`
	Port         int    `toml:"port,omitempty"`
	Secret       string `toml:"secret,omitempty"`
	DBFolder     string `toml:"dbFolder,omitempty"`
	LogFolder    string `toml:"logFolder,omitempty"`
	UploadFolder string `toml:"uploadFolder,omitempty"`
	Uploads      *bool  `toml:"uploads,omitempty"`
}

var fileCfg fileConfig

// LoadFile reads the optional TOML config file. Missing file is not an error.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileCfg)
}

// UpdateFileSetting merges the provided values into the TOML config file at
// path, creating it when missing. Zero values leave existing entries alone.
func UpdateFileSetting(path, listen string, port int, secret, dbFolder, logFolder, uploadFolder string, uploads *bool) error {
	var cfg fileConfig
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if listen != "" {
		cfg.Listen = listen
	}
	if port > 0 {
		cfg.Port = port
	}
	if secret != "" {
		cfg.Secret = secret
	}
	if dbFolder != "" {
		cfg.DBFolder = dbFolder
	}
	if logFolder != "" {
		cfg.LogFolder = logFolder
	}
	if uploadFolder != "" {
		cfg.UploadFolder = uploadFolder
	}
	if uploads != nil {
		cfg.Uploads = uploads
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	// the secret may live here
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	fileCfg = cfg
	return nil
}

// ResetFileSetting removes the config file, restoring environment and
// built-in defaults. A missing file is not an error.
func ResetFileSetting(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	fileCfg = fileConfig{}
	return nil
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("GOBLOG_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("GOBLOG_DEBUG") == "true"
}

func GetListen() string {
	if v := os.Getenv("GOBLOG_LISTEN"); v != "" {
		return v
	}
	if fileCfg.Listen != "" {
		return fileCfg.Listen
	}
	return ""
}

func GetPort() int {
	if v := os.Getenv("GOBLOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			return port
		}
	}
	if fileCfg.Port > 0 {
		return fileCfg.Port
	}
	return 5000
}

// GetSecret returns the cookie-session signing secret. Empty means the
// server generates a random one at startup, invalidating sessions on
// restart.
func GetSecret() string {
	if v := os.Getenv("GOBLOG_SECRET"); v != "" {
		return v
	}
	return fileCfg.Secret
}

func GetDBFolderPath() string {
	if v := os.Getenv("GOBLOG_DB_FOLDER"); v != "" {
		return v
	}
	if fileCfg.DBFolder != "" {
		return fileCfg.DBFolder
	}
	return "/etc/goblog"
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	if v := os.Getenv("GOBLOG_LOG_FOLDER"); v != "" {
		return v
	}
	if fileCfg.LogFolder != "" {
		return fileCfg.LogFolder
	}
	return "/var/log"
}

func GetUploadFolderPath() string {
	if v := os.Getenv("GOBLOG_UPLOAD_FOLDER"); v != "" {
		return v
	}
	if fileCfg.UploadFolder != "" {
		return fileCfg.UploadFolder
	}
	return fmt.Sprintf("%s/uploads", GetDBFolderPath())
}

// IsUploadsEnabled gates the optional image capability on post create/edit.
func IsUploadsEnabled() bool {
	if v := os.Getenv("GOBLOG_UPLOADS"); v != "" {
		return v != "false"
	}
	if fileCfg.Uploads != nil {
		return *fileCfg.Uploads
	}
	return true
}
