package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Env        string
	HTTPServer HTTPServer
	GRPCServer GRPCServer
	Storage    Storage
	Database   Database
	SQLite     SQLite
	Prometheus Prometheus
	Redis      Redis
	Auth       Auth
	Tracing    Tracing
}

type HTTPServer struct {
	Address         string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type GRPCServer struct {
	Address string
	Port    int
}

type Storage struct {
	Driver string
}

type Database struct {
	Username    string
	Password    string
	Host        string
	Port        string
	DbName      string
	AutoMigrate bool
	MaxConns    int
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.DbName)
}

type SQLite struct {
	Path string
}

type Prometheus struct {
	Address string
	Port    int
}

type Redis struct {
	Enabled  bool
	Address  string
	Port     int
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

type Auth struct {
	JWTSecret  string
	Issuer     string
	CookieName string
}

type Tracing struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	SampleRatio float64
	ServiceName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("http_server.address", "0.0.0.0")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.request_timeout", "15s")
	v.SetDefault("http_server.shutdown_timeout", "30s")
	v.SetDefault("http_server.allowed_origins", []string{"http://localhost:8080"})

	v.SetDefault("grpc_server.address", "0.0.0.0")
	v.SetDefault("grpc_server.port", 50053)

	v.SetDefault("storage.driver", StorageDriverPostgres)

	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "post-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "postboard")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("sqlite.path", "data/postboard.db")

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9103)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.ttl", "30m")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "post-board")
	v.SetDefault("auth.cookie_name", "session")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 0.1)
	v.SetDefault("tracing.service_name", "post-board-service")
}

// Load reads config.yaml from the given directories. A missing file is not an
// error: defaults and POSTBOARD_* environment variables still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("POSTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		HTTPServer: HTTPServer{
			Address:         v.GetString("http_server.address"),
			Port:            v.GetInt("http_server.port"),
			RequestTimeout:  v.GetDuration("http_server.request_timeout"),
			ShutdownTimeout: v.GetDuration("http_server.shutdown_timeout"),
			AllowedOrigins:  v.GetStringSlice("http_server.allowed_origins"),
		},
		GRPCServer: GRPCServer{
			Address: v.GetString("grpc_server.address"),
			Port:    v.GetInt("grpc_server.port"),
		},
		Storage: Storage{
			Driver: strings.ToLower(v.GetString("storage.driver")),
		},
		Database: Database{
			Username:    v.GetString("database.username"),
			Password:    v.GetString("database.password"),
			Host:        v.GetString("database.host"),
			Port:        v.GetString("database.port"),
			DbName:      v.GetString("database.db_name"),
			AutoMigrate: v.GetBool("database.auto_migrate"),
			MaxConns:    v.GetInt("database.max_conns"),
		},
		SQLite: SQLite{
			Path: v.GetString("sqlite.path"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Redis: Redis{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			PoolSize: v.GetInt("redis.pool_size"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("auth.jwt_secret"),
			Issuer:     v.GetString("auth.issuer"),
			CookieName: v.GetString("auth.cookie_name"),
		},
		Tracing: Tracing{
			Enabled:     v.GetBool("tracing.enabled"),
			Exporter:    strings.ToLower(v.GetString("tracing.exporter")),
			Endpoint:    v.GetString("tracing.endpoint"),
			SampleRatio: v.GetFloat64("tracing.sample_ratio"),
			ServiceName: v.GetString("tracing.service_name"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" && c.Env == "prod" {
		return errors.New("auth.jwt_secret must be set in prod")
	}
	return nil
}
