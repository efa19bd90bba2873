package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Engine names accepted by enrichment.engine.
const (
	EngineHeuristic = "heuristic"
	EngineGemini    = "gemini"
	EngineOpenAI    = "openai"
)

// Database drivers accepted by database.driver.
const (
	DriverValkey = "valkey"
	DriverRedis  = "redis"
)

// Config holds the notekeep API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds the optional KV store settings. Empty Addrs disables it.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a KV store is configured.
func (d DatabaseConfig) Enabled() bool { return len(d.Addrs) > 0 }

// EnrichmentConfig selects and tunes the enrichment engine.
type EnrichmentConfig struct {
	Engine          string       `yaml:"engine"` // heuristic (default), gemini, openai
	Model           string       `yaml:"model"`
	APIKey          string       `yaml:"api_key"`
	BaseURL         string       `yaml:"base_url"`
	TimeoutSec      int          `yaml:"timeout_sec"`
	StubLatencyMs   *int         `yaml:"stub_latency_ms"`
	Temperature     float32      `yaml:"temperature"`
	TopP            float32      `yaml:"top_p"`
	TopK            int          `yaml:"top_k"`
	MaxOutputTokens int          `yaml:"max_output_tokens"`
	Budget          BudgetConfig `yaml:"budget"`
}

// Generative reports whether the engine calls a model provider.
func (e EnrichmentConfig) Generative() bool {
	return e.Engine == EngineGemini || e.Engine == EngineOpenAI
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands env variables in data, decodes it, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// LoadDotEnv loads .env, then ../.env. Missing files are skipped and
// variables already set in the process win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", filepath.Join("..", ".env")}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverValkey
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Enrichment.Engine == "" {
		c.Enrichment.Engine = EngineHeuristic
	}
	if c.Enrichment.TimeoutSec <= 0 {
		c.Enrichment.TimeoutSec = 30
	}
	if c.Enrichment.StubLatencyMs == nil {
		latency := 100
		c.Enrichment.StubLatencyMs = &latency
	}
	if c.Enrichment.Budget.Action == "" {
		c.Enrichment.Budget.Action = "warn"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverValkey, DriverRedis:
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}

	e := c.Enrichment
	switch e.Engine {
	case EngineHeuristic, EngineGemini, EngineOpenAI:
	default:
		return fmt.Errorf(
			"enrichment.engine must be \"heuristic\", \"gemini\" or \"openai\", got %q", e.Engine)
	}
	if e.Generative() && e.APIKey == "" {
		return fmt.Errorf("enrichment.api_key is required for engine %q", e.Engine)
	}
	if e.StubLatencyMs != nil && *e.StubLatencyMs < 0 {
		return fmt.Errorf("enrichment.stub_latency_ms must not be negative, got %d", *e.StubLatencyMs)
	}
	switch e.Budget.Action {
	case "", "warn", "reject":
	default:
		return fmt.Errorf("enrichment.budget.action must be \"warn\" or \"reject\", got %q", e.Budget.Action)
	}
	if e.Budget.DailyTokenLimit < 0 || e.Budget.MonthlyTokenLimit < 0 {
		return fmt.Errorf("enrichment.budget limits must not be negative")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests run from package directories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
