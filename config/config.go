package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Calendar CalendarConfig `yaml:"calendar"`
	Auth     AuthConfig     `yaml:"auth"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
	// PublicURL is the address of the guest registration page handed out to hosts.
	PublicURL string `yaml:"public_url"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	SnapshotCacheTTL      int `yaml:"snapshot_cache_ttl_seconds"`
	WriteLockTTL          int `yaml:"write_lock_ttl_seconds"`
	SuggestionHorizonDays int `yaml:"suggestion_horizon_days"`
	SuggestionMaxResults  int `yaml:"suggestion_max_results"`
}

type CalendarConfig struct {
	RowHeightPx int `yaml:"row_height_px"`
}

type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	return &cfg, nil
}

// ApplyDefaults fills settings left out of the file.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Booking.SnapshotCacheTTL == 0 {
		c.Booking.SnapshotCacheTTL = 60
	}
	if c.Booking.WriteLockTTL == 0 {
		c.Booking.WriteLockTTL = 10
	}
	if c.Booking.SuggestionHorizonDays == 0 {
		c.Booking.SuggestionHorizonDays = 30
	}
	if c.Booking.SuggestionMaxResults == 0 {
		c.Booking.SuggestionMaxResults = 5
	}
	if c.Calendar.RowHeightPx == 0 {
		c.Calendar.RowHeightPx = 28
	}
	if c.Auth.SessionTTLMinutes == 0 {
		c.Auth.SessionTTLMinutes = 12 * 60
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "guesthouse-notifier"
	}
}
