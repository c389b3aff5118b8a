package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

// ErrInvalidConfig is returned for configuration that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Journal adapters.
const (
	AdapterMemory = "memory"
	AdapterPGX    = "pgx"
	AdapterSQL    = "sql"
	AdapterSQLX   = "sqlx"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL  = "DATABASE_URL"
	EnvDBAdapter    = "DB_ADAPTER"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

// AppConfig is the complete librarian configuration.
type AppConfig struct {
	Policy        PolicyConfig        `yaml:"policy"`
	Journal       JournalConfig       `yaml:"journal"`
	Log           LogConfig           `yaml:"log"`
	Observability ObservabilityConfig `yaml:"observability"`

	// SeedFile is an optional catalog seed loaded at startup.
	SeedFile string `yaml:"seed_file"`
}

// PolicyConfig mirrors core.LendingPolicy.
type PolicyConfig struct {
	LoanPeriodDays        int     `yaml:"loan_period_days"`
	FinePerDay            float64 `yaml:"fine_per_day"`
	HoldRequestExpiryDays int     `yaml:"hold_request_expiry_days"`
}

// LendingPolicy converts the section into the domain policy.
func (p PolicyConfig) LendingPolicy() core.LendingPolicy {
	return core.LendingPolicy{
		LoanPeriodDays:        p.LoanPeriodDays,
		FinePerDay:            core.Money(p.FinePerDay),
		HoldRequestExpiryDays: p.HoldRequestExpiryDays,
	}
}

// JournalConfig selects the journal engine.
// DSN and Table are only used by the PostgreSQL adapters.
type JournalConfig struct {
	Adapter     string `yaml:"adapter"`
	DSN         string `yaml:"dsn"`
	Table       string `yaml:"table"`
	EnsureTable bool   `yaml:"ensure_table"`
}

// LogConfig configures the slog logger. An empty File logs to stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ObservabilityConfig configures the OTLP gRPC exporters.
type ObservabilityConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ServiceName    string `yaml:"service_name"`
	TraceEndpoint  string `yaml:"trace_endpoint"`
	MetricEndpoint string `yaml:"metric_endpoint"`
	Insecure       bool   `yaml:"insecure"`
}

// Defaults returns the configuration used when nothing else is given:
// the default lending policy, an in-memory journal and warn level text logs on stderr.
func Defaults() AppConfig {
	policy := core.DefaultLendingPolicy()

	return AppConfig{
		Policy: PolicyConfig{
			LoanPeriodDays:        policy.LoanPeriodDays,
			FinePerDay:            float64(policy.FinePerDay),
			HoldRequestExpiryDays: policy.HoldRequestExpiryDays,
		},
		Journal: JournalConfig{
			Adapter: AdapterMemory,
			Table:   "circulation_events",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: FormatText,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "librarian",
			TraceEndpoint:  "localhost:4317",
			MetricEndpoint: "localhost:4317",
			Insecure:       true,
		},
	}
}

// Load reads the YAML file at path over Defaults, applies the environment and validates.
// An empty path skips the file.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return AppConfig{}, fmt.Errorf("read config file: %w", err)
		}

		if err := cfg.decode(data); err != nil {
			return AppConfig{}, err
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over Defaults without looking at the environment.
func Parse(data []byte) (AppConfig, error) {
	cfg := Defaults()

	if err := cfg.decode(data); err != nil {
		return AppConfig{}, err
	}

	return cfg, cfg.Validate()
}

func (c *AppConfig) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrInvalidConfig, err)
	}

	return nil
}

// ApplyEnv overrides values with the environment variables found by lookup.
// An OTLP endpoint also enables observability.
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDatabaseURL); ok && v != "" {
		c.Journal.DSN = v
	}

	if v, ok := lookup(EnvDBAdapter); ok && v != "" {
		c.Journal.Adapter = strings.ToLower(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}

	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = strings.ToLower(v)
	}

	if v, ok := lookup(EnvOTLPEndpoint); ok && v != "" {
		c.Observability.Enabled = true
		c.Observability.TraceEndpoint = v
		c.Observability.MetricEndpoint = v
	}
}

// Validate checks all sections and reports every problem at once.
func (c AppConfig) Validate() error {
	var errs []error

	if err := c.Policy.LendingPolicy().Validate(); err != nil {
		errs = append(errs, err)
	}

	switch c.Journal.Adapter {
	case AdapterMemory:
	case AdapterPGX, AdapterSQL, AdapterSQLX:
		if c.Journal.DSN == "" {
			errs = append(errs, fmt.Errorf("journal adapter %q needs a dsn", c.Journal.Adapter))
		}

		if c.Journal.Table == "" {
			errs = append(errs, errors.New("journal table must not be empty"))
		}
	default:
		errs = append(errs, c.Journal.unknownAdapterError())
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if c.Observability.Enabled && c.Observability.ServiceName == "" {
		errs = append(errs, errors.New("observability needs a service name"))
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}

func (c JournalConfig) unknownAdapterError() error {
	return fmt.Errorf("unknown journal adapter %q", c.Adapter)
}
