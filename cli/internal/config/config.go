// Package config provides git-ai configuration with a defined load order:
// CLI flags > process environment > repo .env file > repo config > global config > defaults.
//
// Paths:
//   - Repo: .gitai/config.toml (relative to repo root)
//   - Repo env file: .env (relative to repo root; never overrides the process environment)
//   - Global: XDG config dir, e.g. ~/.config/git-ai/config.toml (see os.UserConfigDir)
//
// Environment variables (override config files when set):
//   - GITAI_PROVIDER (openai or ollama), GITAI_MODEL, GITAI_BASE_URL (or OPENAI_BASE_URL).
//   - OPENAI_API_KEY (never read from config files).
//   - GITAI_TEMPERATURE, GITAI_MAX_TOKENS, GITAI_HOOK_MAX_TOKENS, GITAI_MAX_DIFF_LINES.
//   - GITAI_TIMEOUT (Go duration string or integer seconds).
//   - GITAI_CONTEXT_LIMIT, GITAI_WARN_THRESHOLD.
//   - GITAI_EDITOR, then EDITOR.
//   - GITAI_LOG_FILE, GITAI_LOG_LEVEL.
package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// Provider names accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds all git-ai configuration. An empty BaseURL means the
// provider's default endpoint.
type Config struct {
	Provider      string        `toml:"provider"`
	Model         string        `toml:"model"`
	BaseURL       string        `toml:"base_url"`
	APIKey        string        `toml:"-"`
	Temperature   float64       `toml:"temperature"`
	MaxTokens     int           `toml:"max_tokens"`
	HookMaxTokens int           `toml:"hook_max_tokens"`
	MaxDiffLines  int           `toml:"max_diff_lines"`
	Timeout       time.Duration `toml:"timeout"`
	ContextLimit  int           `toml:"context_limit"`
	WarnThreshold float64       `toml:"warn_threshold"`
	Editor        string        `toml:"editor"`
	// LogFile enables a rotating JSON log at this path.
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Overrides represents optional CLI flag overrides. Non-nil pointer means
// "override with this value".
type Overrides struct {
	Provider  *string
	Model     *string
	BaseURL   *string
	MaxTokens *int
}

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// RepoRoot is the repository root; if set, repo config is RepoRoot/.gitai/config.toml
	// and RepoRoot/.env is read.
	RepoRoot string
	// GlobalConfigPath is the global config file path; if empty, XDG path is used.
	GlobalConfigPath string
	// Env is the environment key=value slice; if nil, os.Environ() is used.
	Env []string
	// Overrides are applied last (highest precedence).
	Overrides *Overrides
}

const (
	_defaultProvider      = ProviderOpenAI
	_defaultModel         = "gpt-4o"
	_defaultOpenAIBaseURL = "https://api.openai.com/v1"
	_defaultOllamaBaseURL = "http://localhost:11434"
	_defaultTemperature   = 0.2
	_defaultMaxTokens     = 256
	_defaultHookMaxTokens = 512
	_defaultMaxDiffLines  = 1000
	_defaultTimeout       = 2 * time.Minute
	_defaultContextLimit  = 128000
	_defaultWarnThreshold = 0.9
	_defaultEditor        = "nano"
	_defaultLogLevel      = "warn"
)

// RepoDir is the per-repository directory holding config and prompt overrides.
const RepoDir = ".gitai"

// errIntOverflow is returned when an int64 value does not fit in int (e.g. on 32-bit or huge TOML/env values).
var errIntOverflow = errors.New("value out of range for int")

// int64ToInt converts n to int. It returns an error if n is outside the range of int.
func int64ToInt(n int64) (int, error) {
	if n < int64(math.MinInt) || n > int64(math.MaxInt) {
		return 0, errIntOverflow
	}
	return int(n), nil
}

// DefaultConfig returns the default configuration (no I/O).
func DefaultConfig() Config {
	return Config{
		Provider:      _defaultProvider,
		Model:         _defaultModel,
		Temperature:   _defaultTemperature,
		MaxTokens:     _defaultMaxTokens,
		HookMaxTokens: _defaultHookMaxTokens,
		MaxDiffLines:  _defaultMaxDiffLines,
		Timeout:       _defaultTimeout,
		ContextLimit:  _defaultContextLimit,
		WarnThreshold: _defaultWarnThreshold,
		Editor:        _defaultEditor,
		LogLevel:      _defaultLogLevel,
	}
}

// EffectiveBaseURL returns BaseURL, or the default endpoint for the provider when unset.
func (c Config) EffectiveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Provider == ProviderOllama {
		return _defaultOllamaBaseURL
	}
	return _defaultOpenAIBaseURL
}

// RequiresAPIKey reports whether the provider needs OPENAI_API_KEY.
func (c Config) RequiresAPIKey() bool {
	return c.Provider == ProviderOpenAI
}

// Load loads configuration with precedence: defaults < global file < repo file < .env < env < overrides.
// Missing config files are ignored. Invalid TOML or invalid env values return an error.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	cfg := DefaultConfig()

	globalPath := opts.GlobalConfigPath
	if globalPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, erruser.New("Could not determine config directory.", err)
		}
		globalPath = filepath.Join(dir, "git-ai", "config.toml")
	}
	if err := mergeFile(&cfg, globalPath); err != nil {
		return nil, err
	}

	vals := make(map[string]string)
	if opts.RepoRoot != "" {
		repoPath := filepath.Join(opts.RepoRoot, RepoDir, "config.toml")
		if err := mergeFile(&cfg, repoPath); err != nil {
			return nil, err
		}
		dotenv, err := readDotEnv(filepath.Join(opts.RepoRoot, ".env"))
		if err != nil {
			return nil, err
		}
		for k, v := range dotenv {
			vals[k] = strings.TrimSpace(v)
		}
	}
	for k, v := range envMap(opts.Env) {
		vals[k] = v
	}

	if err := applyEnv(&cfg, vals); err != nil {
		return nil, err
	}

	if err := applyOverrides(&cfg, opts.Overrides); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readDotEnv parses a .env file. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, erruser.New("Could not read .env file.", err)
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return nil, erruser.New("Invalid .env file.", err)
	}
	return vals, nil
}

// mergeFile reads path and merges into cfg. Only overwrites fields that are
// present and non-zero in the file (so explicit empty/zero in TOML keeps previous value).
// Missing file is skipped (no error).
func mergeFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return erruser.New("Invalid configuration file.", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return erruser.New("Could not read configuration file.", err)
	}
	var file struct {
		Provider      *string  `toml:"provider"`
		Model         *string  `toml:"model"`
		BaseURL       *string  `toml:"base_url"`
		Temperature   *float64 `toml:"temperature"`
		MaxTokens     *int64   `toml:"max_tokens"`
		HookMaxTokens *int64   `toml:"hook_max_tokens"`
		MaxDiffLines  *int64   `toml:"max_diff_lines"`
		Timeout       *string  `toml:"timeout"`
		ContextLimit  *int64   `toml:"context_limit"`
		WarnThreshold *float64 `toml:"warn_threshold"`
		Editor        *string  `toml:"editor"`
		LogFile       *string  `toml:"log_file"`
		LogLevel      *string  `toml:"log_level"`
	}
	if _, err := toml.Decode(string(data), &file); err != nil {
		return erruser.Newf(err, "Invalid configuration in %s.", path)
	}
	if file.Provider != nil && *file.Provider != "" {
		p, err := validateProvider(*file.Provider)
		if err != nil {
			return err
		}
		cfg.Provider = p
	}
	if file.Model != nil && *file.Model != "" {
		cfg.Model = *file.Model
	}
	if file.BaseURL != nil && *file.BaseURL != "" {
		cfg.BaseURL = *file.BaseURL
	}
	if file.Temperature != nil {
		if *file.Temperature < 0 || *file.Temperature > 2 {
			return erruser.New("Configuration temperature must be between 0 and 2.", nil)
		}
		cfg.Temperature = *file.Temperature
	}
	for _, f := range []struct {
		key string
		src *int64
		dst *int
	}{
		{"max_tokens", file.MaxTokens, &cfg.MaxTokens},
		{"hook_max_tokens", file.HookMaxTokens, &cfg.HookMaxTokens},
		{"max_diff_lines", file.MaxDiffLines, &cfg.MaxDiffLines},
		{"context_limit", file.ContextLimit, &cfg.ContextLimit},
	} {
		if f.src == nil || *f.src <= 0 {
			continue
		}
		v, err := int64ToInt(*f.src)
		if err != nil {
			return erruser.Newf(err, "Configuration %s value out of range.", f.key)
		}
		*f.dst = v
	}
	if file.Timeout != nil && *file.Timeout != "" {
		d, err := parseDuration(*file.Timeout)
		if err != nil {
			return erruser.New("Configuration timeout is invalid.", err)
		}
		cfg.Timeout = d
	}
	if file.WarnThreshold != nil && *file.WarnThreshold >= 0 {
		cfg.WarnThreshold = *file.WarnThreshold
	}
	if file.Editor != nil && *file.Editor != "" {
		cfg.Editor = *file.Editor
	}
	if file.LogFile != nil {
		cfg.LogFile = *file.LogFile
	}
	if file.LogLevel != nil && *file.LogLevel != "" {
		cfg.LogLevel = *file.LogLevel
	}
	return nil
}

func validateProvider(s string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case ProviderOpenAI, ProviderOllama:
		return norm, nil
	}
	return "", erruser.New("Invalid provider; use openai or ollama.", nil)
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	// Try Go duration first (e.g. "2m", "30s")
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	// Try integer seconds
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Duration(n) * time.Second, nil
}

// env key names for config
const (
	envProvider      = "GITAI_PROVIDER"
	envModel         = "GITAI_MODEL"
	envBaseURL       = "GITAI_BASE_URL"
	envOpenAIBaseURL = "OPENAI_BASE_URL"
	envAPIKey        = "OPENAI_API_KEY"
	envTemperature   = "GITAI_TEMPERATURE"
	envMaxTokens     = "GITAI_MAX_TOKENS"
	envHookMaxTokens = "GITAI_HOOK_MAX_TOKENS"
	envMaxDiffLines  = "GITAI_MAX_DIFF_LINES"
	envTimeout       = "GITAI_TIMEOUT"
	envContextLimit  = "GITAI_CONTEXT_LIMIT"
	envWarnThreshold = "GITAI_WARN_THRESHOLD"
	envEditor        = "GITAI_EDITOR"
	envEditorStd     = "EDITOR"
	envLogFile       = "GITAI_LOG_FILE"
	envLogLevel      = "GITAI_LOG_LEVEL"
)

func envMap(env []string) map[string]string {
	vals := make(map[string]string)
	for _, e := range env {
		idx := strings.Index(e, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(e[:idx])
		val := strings.TrimSpace(e[idx+1:])
		vals[key] = val
	}
	return vals
}

func applyEnv(cfg *Config, vals map[string]string) error {
	if v, ok := vals[envProvider]; ok && v != "" {
		p, err := validateProvider(v)
		if err != nil {
			return err
		}
		cfg.Provider = p
	}
	if v, ok := vals[envModel]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := vals[envOpenAIBaseURL]; ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := vals[envBaseURL]; ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := vals[envAPIKey]; ok {
		cfg.APIKey = v
	}
	if v, ok := vals[envTemperature]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return erruser.New("GITAI_TEMPERATURE must be a valid number.", err)
		}
		if f < 0 || f > 2 {
			return erruser.New("GITAI_TEMPERATURE must be between 0 and 2.", nil)
		}
		cfg.Temperature = f
	}
	for _, f := range []struct {
		key string
		dst *int
	}{
		{envMaxTokens, &cfg.MaxTokens},
		{envHookMaxTokens, &cfg.HookMaxTokens},
		{envMaxDiffLines, &cfg.MaxDiffLines},
		{envContextLimit, &cfg.ContextLimit},
	} {
		v, ok := vals[f.key]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return erruser.Newf(err, "%s must be a valid number.", f.key)
		}
		if n <= 0 {
			return erruser.Newf(nil, "%s must be positive.", f.key)
		}
		*f.dst, err = int64ToInt(n)
		if err != nil {
			return erruser.Newf(err, "%s value out of range.", f.key)
		}
	}
	if v, ok := vals[envTimeout]; ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return erruser.New("GITAI_TIMEOUT must be a valid duration.", err)
		}
		cfg.Timeout = d
	}
	if v, ok := vals[envWarnThreshold]; ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return erruser.New("GITAI_WARN_THRESHOLD must be a valid number.", err)
		}
		cfg.WarnThreshold = f
	}
	if v, ok := vals[envEditorStd]; ok && v != "" {
		cfg.Editor = v
	}
	if v, ok := vals[envEditor]; ok && v != "" {
		cfg.Editor = v
	}
	if v, ok := vals[envLogFile]; ok {
		cfg.LogFile = v
	}
	if v, ok := vals[envLogLevel]; ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}

func applyOverrides(cfg *Config, o *Overrides) error {
	if o == nil {
		return nil
	}
	if o.Provider != nil && *o.Provider != "" {
		p, err := validateProvider(*o.Provider)
		if err != nil {
			return err
		}
		cfg.Provider = p
	}
	if o.Model != nil && *o.Model != "" {
		cfg.Model = *o.Model
	}
	if o.BaseURL != nil && *o.BaseURL != "" {
		cfg.BaseURL = *o.BaseURL
	}
	if o.MaxTokens != nil && *o.MaxTokens > 0 {
		cfg.MaxTokens = *o.MaxTokens
	}
	return nil
}
