package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "RV"
	// PathEnvVar points at the yaml config file
	PathEnvVar  = "RV_CONFIG"
	DefaultPath = "config.yaml"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Alpaca     AlpacaConfig     `mapstructure:"alpaca"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// how long a /simulate request may run before the partial result is
	// returned
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type DBConfig struct {
	// leave host empty to run without the ledger
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	EnableSsl       bool          `mapstructure:"enable_ssl"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

func (c DBConfig) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.Host, c.Port, c.User, c.Password, c.Database)
	if !c.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type RedisConfig struct {
	// leave empty to cache in memory
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AlpacaConfig struct {
	ApiKey    string `mapstructure:"api_key"`
	ApiSecret string `mapstructure:"api_secret"`
	Endpoint  string `mapstructure:"endpoint"`
}

func (c AlpacaConfig) Enabled() bool {
	return c.ApiKey != "" && c.ApiSecret != ""
}

type SimulationConfig struct {
	MaxIterations          int     `mapstructure:"max_iterations"`
	MaxRetainedSamples     int     `mapstructure:"max_retained_samples"`
	MaxWorkers             int     `mapstructure:"max_workers"`
	DefaultIterations      int     `mapstructure:"default_iterations"`
	DefaultConfidence      float64 `mapstructure:"default_confidence"`
	DefaultKellyMultiplier float64 `mapstructure:"default_kelly_multiplier"`
	DefaultBatchSize       int     `mapstructure:"default_batch_size"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.port", 3009)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.database", "recallvantage")
	v.SetDefault("db.enable_ssl", false)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("alpaca.api_key", "")
	v.SetDefault("alpaca.api_secret", "")
	v.SetDefault("alpaca.endpoint", "")
	v.SetDefault("simulation.max_iterations", 1_000_000)
	v.SetDefault("simulation.max_retained_samples", 1_000_000)
	v.SetDefault("simulation.max_workers", 16)
	v.SetDefault("simulation.default_iterations", 10_000)
	v.SetDefault("simulation.default_confidence", 0.95)
	v.SetDefault("simulation.default_kelly_multiplier", 0.25)
	v.SetDefault("simulation.default_batch_size", 1_000)
	v.SetDefault("cache.ttl", "24h")
}

// Load reads an optional .env, then the yaml file at path, then RV_
// prefixed env vars (db.host -> RV_DB_HOST). a missing file is only an
// error when the path was given explicitly
func Load(path string, envOnly bool) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnvVar)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		err := v.ReadInConfig()
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate keeps the ceilings within what the ledger's int4 trial
// columns can hold
func (c SimulationConfig) Validate() error {
	if c.MaxIterations > math.MaxInt32 {
		return fmt.Errorf("simulation.max_iterations must be at most %d, got %d", math.MaxInt32, c.MaxIterations)
	}
	if c.MaxRetainedSamples > math.MaxInt32 {
		return fmt.Errorf("simulation.max_retained_samples must be at most %d, got %d", math.MaxInt32, c.MaxRetainedSamples)
	}
	if c.DefaultIterations > c.MaxIterations {
		return fmt.Errorf("simulation.default_iterations %d is above max_iterations %d", c.DefaultIterations, c.MaxIterations)
	}
	return nil
}
