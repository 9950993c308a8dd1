package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "SALON"

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Redis        RedisConfig        `toml:"redis"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Tracing      TracingConfig      `toml:"tracing"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Engine       EngineConfig       `toml:"engine"`
	StaffService StaffServiceConfig `toml:"staff_service"`
}

type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type EngineConfig struct {
	// PendingIsActive включает pending в набор статусов, занимающих слот
	PendingIsActive            bool `toml:"pending_is_active"`
	DefaultSlotDurationMinutes int  `toml:"default_slot_duration_minutes"`
}

type StaffServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		Kafka: KafkaConfig{
			Topic: "salon.appointments",
		},
		Tracing: TracingConfig{
			OTLPEndpoint: "localhost:4317",
			SampleRatio:  1,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-booking",
		},
		Engine: EngineConfig{
			DefaultSlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		},
		StaffService: StaffServiceConfig{
			Timeout: 5,
		},
	}
}

// Load читает config.toml поверх значений по умолчанию и применяет переменные окружения SALON_*
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет значения из окружения, например SALON_DATABASE_HOST
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flag := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	list := func(key string, dst *[]string) {
		if v.IsSet(key) {
			*dst = splitList(v.GetString(key))
		}
	}

	num("server.http_port", &cfg.Server.HTTPPort)
	list("server.allowed_origins", &cfg.Server.AllowedOrigins)

	str("database.host", &cfg.Database.Host)
	num("database.port", &cfg.Database.Port)
	str("database.user", &cfg.Database.User)
	str("database.password", &cfg.Database.Password)
	str("database.dbname", &cfg.Database.DBName)
	str("database.sslmode", &cfg.Database.SSLMode)

	flag("redis.enabled", &cfg.Redis.Enabled)
	str("redis.addr", &cfg.Redis.Addr)
	str("redis.password", &cfg.Redis.Password)
	num("redis.db", &cfg.Redis.DB)
	num("redis.ttl", &cfg.Redis.TTL)

	flag("kafka.enabled", &cfg.Kafka.Enabled)
	list("kafka.brokers", &cfg.Kafka.Brokers)
	str("kafka.topic", &cfg.Kafka.Topic)

	flag("tracing.enabled", &cfg.Tracing.Enabled)
	str("tracing.otlp_endpoint", &cfg.Tracing.OTLPEndpoint)
	if v.IsSet("tracing.sample_ratio") {
		cfg.Tracing.SampleRatio = v.GetFloat64("tracing.sample_ratio")
	}

	str("logs.file", &cfg.Logs.File)
	str("logs.level", &cfg.Logs.Level)

	flag("metrics.enabled", &cfg.Metrics.Enabled)

	flag("engine.pending_is_active", &cfg.Engine.PendingIsActive)
	num("engine.default_slot_duration_minutes", &cfg.Engine.DefaultSlotDurationMinutes)

	str("staff_service.url", &cfg.StaffService.URL)
	num("staff_service.timeout", &cfg.StaffService.Timeout)
}

func splitList(raw string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database host, dbname and user are required", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	d := c.Engine.DefaultSlotDurationMinutes
	if d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: engine.default_slot_duration_minutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka brokers and topic are required when kafka is enabled", ErrInvalidConfig)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("%w: tracing.sample_ratio must be within [0, 1]", ErrInvalidConfig)
	}
	return nil
}
