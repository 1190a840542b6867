package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdomkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vdomkit.yaml"

	// DefaultAddr is the default listen address of the server.
	DefaultAddr = ":8080"

	// DefaultBoltPath is the default database file of the bolt backend.
	DefaultBoltPath = "vdomkit.db"

	// EnvAddr overrides Server.Addr.
	EnvAddr = "VDOMKIT_ADDR"

	// EnvLogLevel overrides Log.Level.
	EnvLogLevel = "VDOMKIT_LOG_LEVEL"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendS3     = "s3"
)

// Config represents the complete vdomkit.yaml configuration.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Store selects and configures snapshot persistence.
	Store Store `yaml:"store"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Log contains logging configuration.
	Log LogConfig `yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`

	// ReadTimeout bounds reading a request, body included.
	ReadTimeout time.Duration `yaml:"readTimeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// MaxBodyBytes limits the size of a patch request.
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`
}

// Store selects the snapshot backend.
type Store struct {
	// Backend is one of "memory", "bolt" or "s3".
	Backend string `yaml:"backend"`

	// Bolt configures the bolt backend.
	Bolt BoltConfig `yaml:"bolt"`

	// S3 configures the S3 backend.
	S3 S3Config `yaml:"s3"`
}

// BoltConfig configures the bolt backend.
type BoltConfig struct {
	// Path is the database file.
	Path string `yaml:"path"`

	// Timeout bounds waiting for the file lock.
	Timeout time.Duration `yaml:"timeout"`
}

// S3Config configures the S3 backend.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	// PathStyle forces path-style addressing, needed by most S3-compatible
	// servers.
	PathStyle bool `yaml:"pathStyle"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracerName"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Store: Store{
			Backend: BackendMemory,
			Bolt: BoltConfig{
				Path:    DefaultBoltPath,
				Timeout: time.Second,
			},
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "vdom",
			Path:      "/metrics",
		},
		Tracing: TracingConfig{
			Enabled:    true,
			TracerName: "vdomkit",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vdomkit.yaml in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Fields absent
// from the file keep their defaults; unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Run 'vdomkit init' to write a default configuration")
		}
		return nil, errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		verr := errors.New(errors.CodeInvalidConfig).
			Wrap(err).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML and uses known keys")
		if line := errorLine(err); line > 0 {
			verr.WithLocation(path, line, 0)
		}
		return nil, verr
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

var lineRE = regexp.MustCompile(`line (\d+)`)

// errorLine extracts the first line number from a yaml error message.
func errorLine(err error) int {
	m := lineRE.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for fields set to zero explicitly.
func (c *Config) applyDefaults() {
	def := New()
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.Bolt.Path == "" {
		c.Store.Bolt.Path = def.Store.Bolt.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = def.Tracing.TracerName
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}

	// Relative bolt paths are relative to the config file.
	if dir := c.Dir(); dir != "" && !filepath.IsAbs(c.Store.Bolt.Path) {
		c.Store.Bolt.Path = filepath.Join(dir, c.Store.Bolt.Path)
	}
}

// ApplyEnv overrides fields from environment variables looked up with
// lookup, typically os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("server.maxBodyBytes must not be negative")
	}
	switch c.Store.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.Store.Bolt.Path == "" {
			return errors.New(errors.CodeInvalidConfig).
				WithDetail("store.bolt.path is required for the bolt backend")
		}
	case BackendS3:
		if c.Store.S3.Bucket == "" {
			return errors.New(errors.CodeInvalidConfig).
				WithDetail("store.s3.bucket is required for the s3 backend")
		}
	default:
		return errors.New(errors.CodeUnknownBackend).
			WithSuggestion("Set store.backend to memory, bolt or s3, got " + strconv.Quote(c.Store.Backend))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("log.level must be debug, info, warn or error").
			Wrap(err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New(errors.CodeInvalidConfig).
			WithDetail("log.format must be text or json")
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// NewLogger builds the process logger described by l, writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
