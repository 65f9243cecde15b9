package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int

	// Run history settings
	HistoryDriver string
	HistoryDSN    string
	NoHistory     bool

	// Logging
	LogLevel string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors  int
	NameFilter  string
	Tags        []string
	ExcludeTags []string
	FailFast    bool
	Verbose     bool
	Invocations bool
	OpenFaills  bool
	NoHistory   bool
	Limit       int
}

// fileConfig mirrors the YAML config file
type fileConfig struct {
	Processors int    `yaml:"processors"`
	LogLevel   string `yaml:"log_level"`
	Output     struct {
		Dir  string `yaml:"dir"`
		File string `yaml:"file"`
	} `yaml:"output"`
	History struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"history"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		HistoryDriver:  DefaultHistoryDriver,
		LogLevel:       DefaultLogLevel,
		Flags:          Flags{Processors: DefaultProcessors, Limit: DefaultHistoryLimit},
	}
}

// Load builds the configuration from defaults, the config file, the .env
// file and environment, then flags, each layer overriding the previous one.
// An empty configFile looks for suitekit.yaml in the project path and
// tolerates its absence.
func Load(configFile string, flags Flags) (*Config, error) {
	cfg := New()

	path := configFile
	if path == "" {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	}
	if err := cfg.LoadFile(path); err != nil {
		if configFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}

	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadFile applies the YAML config file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.Output.Dir != "" {
		c.OutputJSONDir = fc.Output.Dir
	}
	if fc.Output.File != "" {
		c.OutputJSONFile = fc.Output.File
	}
	if fc.History.Driver != "" {
		c.HistoryDriver = fc.History.Driver
	}
	if fc.History.DSN != "" {
		c.HistoryDSN = fc.History.DSN
	}
	c.NoHistory = c.NoHistory || fc.History.Disabled
	return nil
}

// LoadEnv applies the project's .env file and SUITEKIT_* environment
// variables. Process environment wins over .env values.
func (c *Config) LoadEnv() error {
	env := map[string]string{}

	// .env file might not exist, that's okay - use environment variables
	if values, err := godotenv.Read(filepath.Join(c.ProjectPath, ".env")); err == nil {
		env = values
	}
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, EnvPrefix) {
			env[key] = value
		}
	}
	return c.ApplyEnv(env)
}

// ApplyEnv applies SUITEKIT_* values from env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvPrefix+"PROCESSORS"]; v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %sPROCESSORS %q", EnvPrefix, v)
		}
		c.Processors = n
	}
	if v := env[EnvPrefix+"OUTPUT_DIR"]; v != "" {
		c.OutputJSONDir = v
	}
	if v := env[EnvPrefix+"HISTORY_DRIVER"]; v != "" {
		c.HistoryDriver = v
	}
	if v := env[EnvPrefix+"HISTORY_DSN"]; v != "" {
		c.HistoryDSN = v
	}
	if v := env[EnvPrefix+"LOG_LEVEL"]; v != "" {
		c.LogLevel = v
	}
	return nil
}

// ApplyFlags applies command-line flags
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.NoHistory {
		c.NoHistory = true
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryDSN returns the history DSN, defaulting to a sqlite file next to
// the JSON output.
func (c *Config) GetHistoryDSN() string {
	if c.HistoryDSN != "" {
		return c.HistoryDSN
	}
	if c.HistoryDriver == DefaultHistoryDriver {
		return filepath.Join(c.ProjectPath, c.OutputJSONDir, DefaultHistoryFile)
	}
	return ""
}

// GetLogLevel parses LogLevel, falling back to warn.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
