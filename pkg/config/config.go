/*
Package config manages TOML config for menuclean.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/clean"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Data   DataConfig   `toml:"data"`
	Clean  CleanConfig  `toml:"clean"`
	Server ServerConfig `toml:"server"`
}

// DataConfig points at the menu data file.
type DataConfig struct {
	Path  string `toml:"path"`
	Write bool   `toml:"write"`
}

// CleanConfig holds pipeline thresholds and an optional rules extension file.
type CleanConfig struct {
	MinLength         int    `toml:"min_length"`
	MaxLength         int    `toml:"max_length"`
	MinFragmentLength int    `toml:"min_fragment_length"`
	RulesFile         string `toml:"rules_file"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxBatch int `toml:"max_batch"`
}

// Options converts the clean section into pipeline options.
func (c CleanConfig) Options() clean.Options {
	return clean.Options{
		MinLength:         c.MinLength,
		MaxLength:         c.MaxLength,
		MinFragmentLength: c.MinFragmentLength,
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/menuclean
// 2. ~/Library/Application Support/menuclean (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "menuclean")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "menuclean")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/menuclean/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := clean.DefaultOptions()
	return &Config{
		Data: DataConfig{
			Path:  filepath.Join("src", "data", "menu-items.ts"),
			Write: true,
		},
		Clean: CleanConfig{
			MinLength:         opts.MinLength,
			MaxLength:         opts.MaxLength,
			MinFragmentLength: opts.MinFragmentLength,
		},
		Server: ServerConfig{
			MaxBatch: 512,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values missing from the file keep
// their defaults; a file that fails to decode is salvaged key by key.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed key of a file whose structure
// does not match Config.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(raw, "clean"); ok {
		extractCleanConfig(section, &config.Clean)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		if val, ok := utils.ExtractInt(section, "max_batch"); ok {
			config.Server.MaxBatch = val
		}
	}
	return config, nil
}

func extractDataConfig(data map[string]any, dc *DataConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dc.Path = val
	}
	if val, ok := utils.ExtractBool(data, "write"); ok {
		dc.Write = val
	}
}

func extractCleanConfig(data map[string]any, cc *CleanConfig) {
	if val, ok := utils.ExtractInt(data, "min_length"); ok {
		cc.MinLength = val
	}
	if val, ok := utils.ExtractInt(data, "max_length"); ok {
		cc.MaxLength = val
	}
	if val, ok := utils.ExtractInt(data, "min_fragment_length"); ok {
		cc.MinFragmentLength = val
	}
	if val, ok := utils.ExtractString(data, "rules_file"); ok {
		cc.RulesFile = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// RulesPath resolves the rules file relative to the config file that named it.
func (c *Config) RulesPath(configPath string) string {
	p := c.Clean.RulesFile
	if p == "" || filepath.IsAbs(p) || configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
