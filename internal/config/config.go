package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	Auth        AuthConfig        `toml:"auth"`
	Twilio      TwilioConfig      `toml:"twilio"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// Часовой пояс салонов, в нём вычисляются "сегодня" и день месяца
	Timezone string `toml:"timezone"`
	// none | reject, что делать с PENDING бронированиями после начала слота
	StalePendingPolicy  string `toml:"stale_pending_policy"`
	ReminderLeadMinutes int    `toml:"reminder_lead_minutes"`
}

// Location возвращает часовой пояс из конфигурации
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(b.Timezone)
}

type RedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	ReminderTTL int    `toml:"reminder_ttl_hours"`
}

type KafkaConfig struct {
	Brokers            []string `toml:"brokers"`
	NotificationsTopic string   `toml:"notifications_topic"`
	GroupID            string   `toml:"group_id"`
}

// SchedulerConfig расписания фоновых задач (формат robfig/cron)
type SchedulerConfig struct {
	Enabled           bool   `toml:"enabled"`
	RemindersSpec     string `toml:"reminders_spec"`
	CommissionDueSpec string `toml:"commission_due_spec"`
	StalePendingSpec  string `toml:"stale_pending_spec"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type TwilioConfig struct {
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	FromNumber string `toml:"from_number"`
}

// Load читает .env (если есть), затем TOML файл и переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, которые перекрываются файлом конфигурации
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{ServiceName: "salon-booking", Path: "/metrics"},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			Timezone:            "Asia/Dhaka",
			StalePendingPolicy:  "none",
			ReminderLeadMinutes: 60,
		},
		Redis: RedisConfig{Addr: "localhost:6379", ReminderTTL: 24},
		Kafka: KafkaConfig{
			NotificationsTopic: "salon.notifications",
			GroupID:            "salon-notification-worker",
		},
		Scheduler: SchedulerConfig{
			Enabled:           true,
			RemindersSpec:     "@every 60s",
			CommissionDueSpec: "0 10 * * *",
			StalePendingSpec:  "@every 5m",
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return errors.New("config: server.http_port must be positive")
	}
	if c.Database.DBName == "" {
		return errors.New("config: database.dbname is required")
	}
	switch c.Booking.StalePendingPolicy {
	case "none", "reject":
	default:
		return fmt.Errorf("config: booking.stale_pending_policy must be none or reject, got %q", c.Booking.StalePendingPolicy)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("config: booking.timezone: %w", err)
	}
	return nil
}

// applyEnv перекрывает секреты значениями из окружения
func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	override(&c.Database.Password, "DB_PASSWORD")
	override(&c.Auth.JWTSecret, "JWT_SECRET")
	override(&c.Redis.Password, "REDIS_PASSWORD")
	override(&c.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	override(&c.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	override(&c.Twilio.FromNumber, "TWILIO_PHONE_NUMBER")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
}
