package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PYRO_HTTP_PORT.
const EnvPrefix = "PYRO"

type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	DB         DBConfig         `mapstructure:"db"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	NATS       NATSConfig       `mapstructure:"nats"`
	GenAI      GenAIConfig      `mapstructure:"genai"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type HTTPConfig struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	StreamInterval    time.Duration `mapstructure:"stream_interval"`
}

type DBConfig struct {
	Path          string `mapstructure:"path"` // empty: in-memory
	JournalBuffer int    `mapstructure:"journal_buffer"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type SimulationConfig struct {
	PrimaryTick      time.Duration      `mapstructure:"primary_tick"`
	SupplyTick       time.Duration      `mapstructure:"supply_tick"`
	HistoryCapacity  int                `mapstructure:"history_capacity"`
	LogCapacity      int                `mapstructure:"log_capacity"`
	DiagnosticsDelay time.Duration      `mapstructure:"diagnostics_delay"`
	Seed             uint64             `mapstructure:"seed"`
	SeedHistory      bool               `mapstructure:"seed_history"`
	Preset           string             `mapstructure:"preset"`
	OutputPrices     map[string]float64 `mapstructure:"output_prices"` // per tonne, keyed by feedstock
	FeedPrices       map[string]float64 `mapstructure:"feed_prices"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"` // empty disables publishing
	Name           string        `mapstructure:"name"`
	Subject        string        `mapstructure:"subject"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type GenAIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageModel   string        `mapstructure:"image_model"`
	VideoModel   string        `mapstructure:"video_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_header_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.stream_interval", time.Second)

	v.SetDefault("db.path", "")
	v.SetDefault("db.journal_buffer", 256)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("simulation.primary_tick", time.Second)
	v.SetDefault("simulation.supply_tick", time.Second)
	v.SetDefault("simulation.history_capacity", 100)
	v.SetDefault("simulation.log_capacity", 100)
	v.SetDefault("simulation.diagnostics_delay", 3*time.Second)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.seed_history", true)
	v.SetDefault("simulation.preset", "biochar")
	v.SetDefault("simulation.output_prices", map[string]float64{"pellet": 420, "rubber": 310})
	v.SetDefault("simulation.feed_prices", map[string]float64{"pellet": 95, "rubber": 60})

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.name", "pyrolysis-sim")
	v.SetDefault("nats.subject", "pyrolysis.security")
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.connect_timeout", 5*time.Second)

	v.SetDefault("genai.base_url", "https://generativelanguage.example.com")
	v.SetDefault("genai.timeout", 30*time.Second)
	v.SetDefault("genai.poll_interval", 10*time.Second)
	v.SetDefault("genai.max_polls", 30)
}

// Load reads configs/config.yml (or the file at path when non-empty),
// applies PYRO_* environment overrides and returns the typed config. A
// missing default config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.PrimaryTick <= 0 || c.Simulation.SupplyTick <= 0:
		return errors.New("config: simulation ticks must be positive")
	case c.Auth.TokenTTL <= 0:
		return errors.New("config: auth.token_ttl must be positive")
	case c.DB.JournalBuffer <= 0:
		return errors.New("config: db.journal_buffer must be positive")
	case c.HTTP.StreamInterval <= 0:
		return errors.New("config: http.stream_interval must be positive")
	}
	return nil
}
