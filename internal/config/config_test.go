package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/allyourbase/numcanon/internal/testutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	testutil.Equal(t, "", cfg.Engine.LocalNumber)
	testutil.Equal(t, "", cfg.Engine.DefaultRegion)
	testutil.SliceLen(t, cfg.Engine.DisabledRules, 0)
	testutil.Equal(t, 8, cfg.Batch.Workers)
	testutil.Equal(t, "csv", cfg.Batch.InputFormat)
	testutil.Equal(t, "warn", cfg.Logging.Level)
	testutil.Equal(t, "text", cfg.Logging.Format)
	testutil.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(c *Config) {}},
		{
			name:   "valid local number",
			modify: func(c *Config) { c.Engine.LocalNumber = "+13233214321" },
		},
		{
			name:    "local number without plus",
			modify:  func(c *Config) { c.Engine.LocalNumber = "13233214321" },
			wantErr: "engine.local_number must be in E.164 form",
		},
		{
			name:    "local number with separators",
			modify:  func(c *Config) { c.Engine.LocalNumber = "+1 323 321 4321" },
			wantErr: "engine.local_number must be in E.164 form",
		},
		{
			name:    "local number too long",
			modify:  func(c *Config) { c.Engine.LocalNumber = "+1234567890123456" },
			wantErr: "engine.local_number must be in E.164 form",
		},
		{
			name:    "region too long",
			modify:  func(c *Config) { c.Engine.DefaultRegion = "USA" },
			wantErr: "engine.default_region must be a two-letter region code",
		},
		{
			name:    "zero workers",
			modify:  func(c *Config) { c.Batch.Workers = 0 },
			wantErr: "batch.workers must be between 1 and 1024",
		},
		{
			name:    "unknown input format",
			modify:  func(c *Config) { c.Batch.InputFormat = "xml" },
			wantErr: "batch.input_format must be",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "logging.level must be one of",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Logging.Format = "logfmt" },
			wantErr: "logging.format must be",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				testutil.NoError(t, err)
				return
			}
			testutil.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "numcanon.toml")
	content := `
[engine]
local_number = "+5521912345678"
disabled_rules = ["mx-mobile-prefix"]

[batch]
workers = 4
input_format = "json"

[logging]
level = "debug"
`
	testutil.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, nil)
	testutil.NoError(t, err)
	testutil.Equal(t, "+5521912345678", cfg.Engine.LocalNumber)
	testutil.SliceEqual(t, []string{"mx-mobile-prefix"}, cfg.Engine.DisabledRules)
	testutil.Equal(t, 4, cfg.Batch.Workers)
	testutil.Equal(t, "json", cfg.Batch.InputFormat)
	testutil.Equal(t, "debug", cfg.Logging.Level)
	testutil.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	testutil.NoError(t, err)
	testutil.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numcanon.toml")
	testutil.NoError(t, os.WriteFile(path, []byte("[engine\nlocal_number = "), 0o644))

	_, err := Load(path, nil)
	testutil.ErrorContains(t, err, "parsing")
}

func TestLoadInvalidValueFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numcanon.toml")
	testutil.NoError(t, os.WriteFile(path, []byte("[batch]\nworkers = -1\n"), 0o644))

	_, err := Load(path, nil)
	testutil.ErrorContains(t, err, "config validation")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("NUMCANON_LOCAL_NUMBER", "+13233214321")
	t.Setenv("NUMCANON_DEFAULT_REGION", "CA")
	t.Setenv("NUMCANON_DISABLED_RULES", "nanp-area-code, br-area-code,")
	t.Setenv("NUMCANON_BATCH_WORKERS", "16")
	t.Setenv("NUMCANON_BATCH_INPUT_FORMAT", "json")
	t.Setenv("NUMCANON_LOG_LEVEL", "error")
	t.Setenv("NUMCANON_LOG_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	testutil.NoError(t, err)
	testutil.Equal(t, "+13233214321", cfg.Engine.LocalNumber)
	testutil.Equal(t, "CA", cfg.Engine.DefaultRegion)
	testutil.SliceEqual(t, []string{"nanp-area-code", "br-area-code"}, cfg.Engine.DisabledRules)
	testutil.Equal(t, 16, cfg.Batch.Workers)
	testutil.Equal(t, "json", cfg.Batch.InputFormat)
	testutil.Equal(t, "error", cfg.Logging.Level)
	testutil.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvInvalidWorkers(t *testing.T) {
	t.Setenv("NUMCANON_BATCH_WORKERS", "many")
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	testutil.ErrorContains(t, err, "NUMCANON_BATCH_WORKERS")
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numcanon.toml")
	testutil.NoError(t, os.WriteFile(path, []byte("[engine]\nlocal_number = \"+5521912345678\"\n[batch]\nworkers = 2\n"), 0o644))
	t.Setenv("NUMCANON_LOCAL_NUMBER", "+13233214321")

	cfg, err := Load(path, map[string]string{"workers": "3"})
	testutil.NoError(t, err)
	testutil.Equal(t, "+13233214321", cfg.Engine.LocalNumber)
	testutil.Equal(t, 3, cfg.Batch.Workers)

	cfg, err = Load(path, map[string]string{"local": "+528112345678"})
	testutil.NoError(t, err)
	testutil.Equal(t, "+528112345678", cfg.Engine.LocalNumber)
}

func TestApplyFlagsIgnoresEmptyValues(t *testing.T) {
	cfg := Default()
	applyFlags(cfg, nil)
	applyFlags(cfg, map[string]string{"local": "", "workers": "x", "format": ""})
	testutil.Equal(t, "", cfg.Engine.LocalNumber)
	testutil.Equal(t, 8, cfg.Batch.Workers)
	testutil.Equal(t, "csv", cfg.Batch.InputFormat)
}

func TestGenerateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "numcanon.toml")
	testutil.NoError(t, GenerateDefault(path))

	data, err := os.ReadFile(path)
	testutil.NoError(t, err)
	testutil.Contains(t, string(data), "[engine]")
	testutil.Contains(t, string(data), "mx-mobile-prefix")

	cfg, err := Load(path, nil)
	testutil.NoError(t, err)
	testutil.Equal(t, 8, cfg.Batch.Workers)
}

func TestToTOML(t *testing.T) {
	cfg := Default()
	cfg.Engine.LocalNumber = "+13233214321"
	out, err := cfg.ToTOML()
	testutil.NoError(t, err)
	testutil.Contains(t, out, "[engine]")
	testutil.Contains(t, out, "local_number = '+13233214321'")
}

func TestGetValue(t *testing.T) {
	cfg := Default()
	cfg.Engine.DisabledRules = []string{"a", "b"}

	v, err := GetValue(cfg, "batch.workers")
	testutil.NoError(t, err)
	testutil.Equal(t, any(8), v)

	v, err = GetValue(cfg, "engine.disabled_rules")
	testutil.NoError(t, err)
	testutil.Equal(t, any("a,b"), v)

	_, err = GetValue(cfg, "server.port")
	testutil.True(t, errors.Is(err, ErrUnknownKey))
}

func TestIsValidKey(t *testing.T) {
	testutil.True(t, IsValidKey("engine.local_number"))
	testutil.True(t, IsValidKey("logging.format"))
	testutil.False(t, IsValidKey("engine"))
	testutil.False(t, IsValidKey("server.port"))
}

func TestSetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numcanon.toml")

	testutil.NoError(t, SetValue(path, "batch.workers", "12"))
	testutil.NoError(t, SetValue(path, "engine.local_number", "+13233214321"))
	testutil.NoError(t, SetValue(path, "engine.disabled_rules", "br-area-code,mx-mobile-prefix"))

	data, err := os.ReadFile(path)
	testutil.NoError(t, err)
	testutil.Contains(t, string(data), "workers = 12")

	cfg, err := Load(path, nil)
	testutil.NoError(t, err)
	testutil.Equal(t, 12, cfg.Batch.Workers)
	testutil.Equal(t, "+13233214321", cfg.Engine.LocalNumber)
	testutil.SliceEqual(t, []string{"br-area-code", "mx-mobile-prefix"}, cfg.Engine.DisabledRules)
}

func TestSetValueUnknownKey(t *testing.T) {
	err := SetValue(filepath.Join(t.TempDir(), "numcanon.toml"), "server.port", "80")
	testutil.True(t, errors.Is(err, ErrUnknownKey))
}

func TestSetValuePreservesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numcanon.toml")
	testutil.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644))

	testutil.NoError(t, SetValue(path, "logging.format", "json"))

	cfg, err := Load(path, nil)
	testutil.NoError(t, err)
	testutil.Equal(t, "debug", cfg.Logging.Level)
	testutil.Equal(t, "json", cfg.Logging.Format)
}
