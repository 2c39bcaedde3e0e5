package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	minWidth     = 16
	defaultWidth = 28
)

// Config holds application configuration.
type Config struct {
	UI   UIConfig
	Keys KeysConfig
	Log  LogConfig
	MCP  MCPConfig
}

// UIConfig holds presentation settings for the terminal host.
type UIConfig struct {
	Theme    string
	Width    int
	ShowHelp bool `mapstructure:"show_help"`
}

// KeysConfig overrides the default key lists per action. Empty lists keep
// the defaults.
type KeysConfig struct {
	Equals   []string
	Clear    []string
	Theme    []string
	Quit     []string
	Multiply []string
	Divide   []string
}

// LogConfig controls where logs go and how chatty they are.
type LogConfig struct {
	File  string
	Debug bool
}

// MCPConfig holds MCP host settings. An empty Addr serves over stdio.
type MCPConfig struct {
	Name string
	Addr string
}

// Load reads configuration from file and env. Env var overrides use prefix JASKCALC_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JASKCALC_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jaskcalc"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKCALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "mocha")
	v.SetDefault("ui.width", defaultWidth)
	v.SetDefault("ui.show_help", true)
	v.SetDefault("keys.equals", []string{})
	v.SetDefault("keys.clear", []string{})
	v.SetDefault("keys.theme", []string{})
	v.SetDefault("keys.quit", []string{})
	v.SetDefault("keys.multiply", []string{})
	v.SetDefault("keys.divide", []string{})
	v.SetDefault("log.file", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("mcp.name", "jaskcalc")
	v.SetDefault("mcp.addr", "")
}

func (c *Config) normalize() {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	if c.UI.Theme == "" {
		c.UI.Theme = "mocha"
	}
	if c.UI.Width < minWidth {
		c.UI.Width = minWidth
	}
	c.MCP.Name = strings.TrimSpace(c.MCP.Name)
	if c.MCP.Name == "" {
		c.MCP.Name = "jaskcalc"
	}
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("JASKCALC_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "jaskcalc", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.width", cfg.UI.Width)
	v.Set("ui.show_help", cfg.UI.ShowHelp)
	v.Set("keys.equals", cfg.Keys.Equals)
	v.Set("keys.clear", cfg.Keys.Clear)
	v.Set("keys.theme", cfg.Keys.Theme)
	v.Set("keys.quit", cfg.Keys.Quit)
	v.Set("keys.multiply", cfg.Keys.Multiply)
	v.Set("keys.divide", cfg.Keys.Divide)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.debug", cfg.Log.Debug)
	v.Set("mcp.name", cfg.MCP.Name)
	v.Set("mcp.addr", cfg.MCP.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
