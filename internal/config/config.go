package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"jwt"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	GroupID       string        `mapstructure:"group_id"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	OutboxBatch   int           `mapstructure:"outbox_batch"`
	MailFromName  string        `mapstructure:"mail_from_name"`
	MailFromEmail string        `mapstructure:"mail_from_email"`
}

type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type WorkflowConfig struct {
	SeedPath string `mapstructure:"seed_path"`
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Load reads .env (if present) and the process environment. Keys map from
// env names by replacing "." with "_": db.host <- DB_HOST, jwt.secret <- JWT_SECRET.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "debug")

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "go_ess")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.group_id", "go-ess")
	v.SetDefault("kafka.poll_interval", 3*time.Second)
	v.SetDefault("kafka.outbox_batch", 50)
	v.SetDefault("kafka.mail_from_name", "HR Self Service")
	v.SetDefault("kafka.mail_from_email", "no-reply@example.com")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)

	v.SetDefault("workflow.seed_path", "")
}

func (c *Config) Validate() error {
	if c.Database.MaxRetries < 1 {
		return fmt.Errorf("db.max_retries must be at least 1")
	}
	if c.Kafka.OutboxBatch < 1 {
		return fmt.Errorf("kafka.outbox_batch must be at least 1")
	}
	if c.IsProduction() && c.Auth.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	return nil
}
