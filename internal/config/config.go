package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Lifecycle LifecycleConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Host string
	Port int
	// RateLimitPerMinute bounds reservation attempts per client IP; zero
	// disables the limiter.
	RateLimitPerMinute int
}

type StoreConfig struct {
	Driver string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
	MaxConns int
}

type LifecycleConfig struct {
	HoldDuration   time.Duration
	SweepInterval  time.Duration
	SweepBatchSize int
	OccupancyTTL   time.Duration
}

type AuthConfig struct {
	WebhookSecret  string
	StaffJWTSecret string
}

// DSN returns the pgx connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSLMode,
	)
}

// New reads the configuration from the environment. Variables from envFile
// are loaded first without overriding ones already set; an empty envFile
// means an optional ./.env.
func New(envFile string) (*Config, error) {
	const op = "config.New"

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("%s: load %s: %w", op, envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	rateLimit, err := intEnv("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	serverCfg := ServerConfig{
		Host:               stringEnv("SERVER_HOST", "localhost"),
		Port:               serverPort,
		RateLimitPerMinute: rateLimit,
	}

	driver := stringEnv("STORE_DRIVER", DriverPostgres)
	if driver != DriverPostgres && driver != DriverMemory {
		return nil, fmt.Errorf("%s: invalid STORE_DRIVER %q", op, driver)
	}

	postgresCfg, err := postgresConfig(driver == DriverPostgres)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     stringEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	lifecycleCfg, err := lifecycleConfig()
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	authCfg := AuthConfig{
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		StaffJWTSecret: os.Getenv("STAFF_JWT_SECRET"),
	}
	if authCfg.WebhookSecret == "" {
		return nil, fmt.Errorf("%s: missing WEBHOOK_SECRET", op)
	}
	if authCfg.StaffJWTSecret == "" {
		return nil, fmt.Errorf("%s: missing STAFF_JWT_SECRET", op)
	}

	return &Config{
		Server:    serverCfg,
		Store:     StoreConfig{Driver: driver},
		Postgres:  postgresCfg,
		Redis:     redisCfg,
		Lifecycle: lifecycleCfg,
		Auth:      authCfg,
	}, nil
}

func postgresConfig(required bool) (PostgresConfig, error) {
	port, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return PostgresConfig{}, err
	}

	maxConns, err := intEnv("POSTGRES_MAX_CONNS", 10)
	if err != nil {
		return PostgresConfig{}, err
	}

	cfg := PostgresConfig{
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Name:     os.Getenv("POSTGRES_DB"),
		Host:     stringEnv("POSTGRES_HOST", "localhost"),
		Port:     port,
		SSLMode:  stringEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: maxConns,
	}

	if !required {
		return cfg, nil
	}

	switch {
	case cfg.User == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_USER")
	case cfg.Password == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_PASSWORD")
	case cfg.Name == "":
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_DB")
	}

	return cfg, nil
}

func lifecycleConfig() (LifecycleConfig, error) {
	hold, err := durationEnv("HOLD_DURATION", 15*time.Minute)
	if err != nil {
		return LifecycleConfig{}, err
	}

	interval, err := durationEnv("SWEEP_INTERVAL", 5*time.Minute)
	if err != nil {
		return LifecycleConfig{}, err
	}

	batch, err := intEnv("SWEEP_BATCH_SIZE", 500)
	if err != nil {
		return LifecycleConfig{}, err
	}

	occupancyTTL, err := durationEnv("OCCUPANCY_CACHE_TTL", 5*time.Second)
	if err != nil {
		return LifecycleConfig{}, err
	}

	if hold <= 0 || interval <= 0 || batch <= 0 {
		return LifecycleConfig{}, fmt.Errorf("HOLD_DURATION, SWEEP_INTERVAL and SWEEP_BATCH_SIZE must be positive")
	}

	return LifecycleConfig{
		HoldDuration:   hold,
		SweepInterval:  interval,
		SweepBatchSize: batch,
		OccupancyTTL:   occupancyTTL,
	}, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
