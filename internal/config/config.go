package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "numcanon.toml"

// ErrUnknownKey is returned for dotted keys that are not part of Config.
var ErrUnknownKey = errors.New("unknown configuration key")

// Config is the top-level numcanon configuration.
type Config struct {
	Engine  EngineConfig  `toml:"engine" json:"engine"`
	Batch   BatchConfig   `toml:"batch" json:"batch"`
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// EngineConfig controls candidate generation.
type EngineConfig struct {
	// LocalNumber is the owner's own E.164 number. It fixes the default
	// region and supplies the area code for bare subscriber numbers.
	LocalNumber string `toml:"local_number" json:"local_number"`
	// DefaultRegion is used by `normalize` when no local number is set.
	DefaultRegion string   `toml:"default_region" json:"default_region"`
	DisabledRules []string `toml:"disabled_rules" json:"disabled_rules"`
}

type BatchConfig struct {
	Workers     int    `toml:"workers" json:"workers"`
	InputFormat string `toml:"input_format" json:"input_format"` // "csv" or "json"
}

type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DisabledRules: []string{},
		},
		Batch: BatchConfig{
			Workers:     8,
			InputFormat: "csv",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration with priority: defaults → numcanon.toml → env vars → CLI flags.
func Load(configPath string, flags map[string]string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = DefaultPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

var (
	e164Pattern   = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)
	regionPattern = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// Validate checks the configuration for invalid values. Whether the local
// number is a real number is checked when the engine is built.
func (c *Config) Validate() error {
	if c.Engine.LocalNumber != "" && !e164Pattern.MatchString(c.Engine.LocalNumber) {
		return fmt.Errorf("engine.local_number must be in E.164 form (e.g. +13235551234), got %q", c.Engine.LocalNumber)
	}
	if c.Engine.DefaultRegion != "" && !regionPattern.MatchString(c.Engine.DefaultRegion) {
		return fmt.Errorf("engine.default_region must be a two-letter region code, got %q", c.Engine.DefaultRegion)
	}
	if c.Batch.Workers < 1 || c.Batch.Workers > 1024 {
		return fmt.Errorf("batch.workers must be between 1 and 1024, got %d", c.Batch.Workers)
	}
	switch c.Batch.InputFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("batch.input_format must be \"csv\" or \"json\", got %q", c.Batch.InputFormat)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"text\", got %q", c.Logging.Format)
	}
	return nil
}

// GenerateDefault writes a commented default numcanon.toml to the given path.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultTOML), 0o644)
}

// ToTOML returns the config serialized as TOML.
func (c *Config) ToTOML() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// envInt reads an integer from the named environment variable.
// Returns an error if the value is set but not a valid integer.
func envInt(name string, dest *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q is not an integer", name, v)
	}
	*dest = n
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("NUMCANON_LOCAL_NUMBER"); v != "" {
		cfg.Engine.LocalNumber = v
	}
	if v := os.Getenv("NUMCANON_DEFAULT_REGION"); v != "" {
		cfg.Engine.DefaultRegion = v
	}
	if v, ok := os.LookupEnv("NUMCANON_DISABLED_RULES"); ok {
		cfg.Engine.DisabledRules = SplitList(v)
	}
	if err := envInt("NUMCANON_BATCH_WORKERS", &cfg.Batch.Workers); err != nil {
		return err
	}
	if v := os.Getenv("NUMCANON_BATCH_INPUT_FORMAT"); v != "" {
		cfg.Batch.InputFormat = v
	}
	if v := os.Getenv("NUMCANON_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NUMCANON_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

func applyFlags(cfg *Config, flags map[string]string) {
	if flags == nil {
		return
	}
	if v, ok := flags["local"]; ok && v != "" {
		cfg.Engine.LocalNumber = v
	}
	if v, ok := flags["region"]; ok && v != "" {
		cfg.Engine.DefaultRegion = v
	}
	if v, ok := flags["workers"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Batch.Workers = n
		}
	}
	if v, ok := flags["format"]; ok && v != "" {
		cfg.Batch.InputFormat = v
	}
	if v, ok := flags["log-level"]; ok && v != "" {
		cfg.Logging.Level = v
	}
}

// SplitList parses a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	out := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// validKeys is the complete set of dot-separated config keys.
var validKeys = map[string]bool{
	"engine.local_number": true, "engine.default_region": true, "engine.disabled_rules": true,
	"batch.workers": true, "batch.input_format": true,
	"logging.level": true, "logging.format": true,
}

// IsValidKey returns true if the dotted key is a recognized config key.
func IsValidKey(key string) bool {
	return validKeys[key]
}

// GetValue returns the value for a dotted config key (e.g. "batch.workers").
func GetValue(cfg *Config, key string) (any, error) {
	switch key {
	case "engine.local_number":
		return cfg.Engine.LocalNumber, nil
	case "engine.default_region":
		return cfg.Engine.DefaultRegion, nil
	case "engine.disabled_rules":
		return strings.Join(cfg.Engine.DisabledRules, ","), nil
	case "batch.workers":
		return cfg.Batch.Workers, nil
	case "batch.input_format":
		return cfg.Batch.InputFormat, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// SetValue reads the existing TOML file, updates a single key, and writes it back.
// Creates the file with just the key if it doesn't exist.
func SetValue(configPath, key, value string) error {
	if !IsValidKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var data map[string]any
	if raw, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := data[section].(map[string]any)
	if !ok {
		sectionMap = make(map[string]any)
		data[section] = sectionMap
	}
	sectionMap[field] = coerceValue(key, value)

	out, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(configPath, out, 0o644)
}

// coerceValue converts a string value to the Go type the TOML field expects.
func coerceValue(key, value string) any {
	switch key {
	case "batch.workers":
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	case "engine.disabled_rules":
		return SplitList(value)
	}
	return value
}

const defaultTOML = `# numcanon configuration

[engine]
# Your own number in E.164 form. Bare local numbers are resolved in its
# region, and 7-digit (North America) or 8/9-digit (Brazil) numbers borrow
# its area code.
# local_number = "+13235551234"

# Region used by 'numcanon normalize' when no local number is set.
# default_region = "US"

# Heuristics to switch off: nanp-area-code, br-area-code, mx-mobile-prefix.
disabled_rules = []

[batch]
# Contacts aggregated in parallel by 'numcanon match'.
workers = 8

# Input format for 'numcanon match': "csv" (contact_id,label,number) or "json".
input_format = "csv"

[logging]
# Log level: debug, info, warn, error.
level = "warn"

# Log format: json or text.
format = "text"
`
