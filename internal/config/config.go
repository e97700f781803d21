package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/vicevalds/carelink/internal/repository/postgres"
	"github.com/vicevalds/carelink/pkg/messaging/redis"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST" validate:"required"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT" validate:"required"`
	User     string `mapstructure:"user" envconfig:"DB_USER" validate:"required"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME" validate:"required"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url" envconfig:"REDIS_URL"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

// LeadTimeConfig is one configured reminder window: fire Lead minutes
// before the event, accepting Tolerance minutes of drift either way.
type LeadTimeConfig struct {
	Label            string `mapstructure:"label" validate:"required"`
	LeadMinutes      int    `mapstructure:"lead_minutes" validate:"min=0"`
	ToleranceMinutes int    `mapstructure:"tolerance_minutes" validate:"required,min=1"`
}

func (lt LeadTimeConfig) Lead() time.Duration { return time.Duration(lt.LeadMinutes) * time.Minute }
func (lt LeadTimeConfig) Tolerance() time.Duration {
	return time.Duration(lt.ToleranceMinutes) * time.Minute
}

type ReminderConfig struct {
	TickInterval             time.Duration    `mapstructure:"tick_interval" validate:"required"`
	Lookahead                time.Duration    `mapstructure:"lookahead" validate:"required"`
	DoseAnchorHour           int              `mapstructure:"dose_anchor_hour" validate:"min=0,max=23"`
	LeadTimes                []LeadTimeConfig `mapstructure:"lead_times" validate:"required,min=1,dive"`
	EscalationInterval       time.Duration    `mapstructure:"escalation_interval" validate:"required"`
	EscalationEmailThreshold int              `mapstructure:"escalation_email_threshold"`
}

type TTSConfig struct {
	APIKey   string        `mapstructure:"api_key" envconfig:"OPENAI_API_KEY"`
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Voice    string        `mapstructure:"voice"`
	Speed    float64       `mapstructure:"speed"`
	Timeout  time.Duration `mapstructure:"timeout"`
	AudioDir string        `mapstructure:"audio_dir"`
	URLBase  string        `mapstructure:"url_base"`
}

type IoTConfig struct {
	Endpoint string        `mapstructure:"endpoint" envconfig:"IOT_ENDPOINT" validate:"required,url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type EmailConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	SMTPHost       string `mapstructure:"smtp_host" envconfig:"SMTP_HOST"`
	SMTPPort       int    `mapstructure:"smtp_port" envconfig:"SMTP_PORT"`
	SMTPUser       string `mapstructure:"smtp_user" envconfig:"SMTP_USER"`
	SMTPPassword   string `mapstructure:"smtp_password" envconfig:"SMTP_PASSWORD"`
	From           string `mapstructure:"from"`
	CaregiverEmail string `mapstructure:"caregiver_email"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	TTS       TTSConfig       `mapstructure:"tts"`
	IoT       IoTConfig       `mapstructure:"iot"`
	Email     EmailConfig     `mapstructure:"email"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// LoadConfig reads config.yml via viper, then lets environment variables
// override the sensitive fields. The result is validated before use;
// configuration is static for the process lifetime.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("carelink", &config); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}

	applyDefaults(&config)

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Reminder.TickInterval == 0 {
		c.Reminder.TickInterval = 2 * time.Minute
	}
	if c.Reminder.Lookahead == 0 {
		c.Reminder.Lookahead = 48 * time.Hour
	}
	if c.Reminder.DoseAnchorHour == 0 {
		c.Reminder.DoseAnchorHour = 8
	}
	if c.Reminder.EscalationInterval == 0 {
		c.Reminder.EscalationInterval = 5 * time.Minute
	}
	if c.Reminder.EscalationEmailThreshold == 0 {
		c.Reminder.EscalationEmailThreshold = 3
	}
	if len(c.Reminder.LeadTimes) == 0 {
		c.Reminder.LeadTimes = []LeadTimeConfig{
			{Label: "1_hour_before", LeadMinutes: 60, ToleranceMinutes: 2},
			{Label: "15_min_before", LeadMinutes: 15, ToleranceMinutes: 2},
			{Label: "at_time", LeadMinutes: 0, ToleranceMinutes: 2},
		}
	}
	if c.TTS.Endpoint == "" {
		c.TTS.Endpoint = "https://api.openai.com/v1/audio/speech"
	}
	if c.TTS.Model == "" {
		c.TTS.Model = "tts-1"
	}
	if c.TTS.Voice == "" {
		c.TTS.Voice = "nova"
	}
	if c.TTS.Speed == 0 {
		c.TTS.Speed = 0.95
	}
	if c.TTS.Timeout == 0 {
		c.TTS.Timeout = 30 * time.Second
	}
	if c.TTS.AudioDir == "" {
		c.TTS.AudioDir = "uploads/audio"
	}
	if c.TTS.URLBase == "" {
		c.TTS.URLBase = "/uploads/audio"
	}
	if c.IoT.Timeout == 0 {
		c.IoT.Timeout = 30 * time.Second
	}
}

// ToDBConfig converts to the postgres package's connection config.
func (c *DatabaseConfig) ToDBConfig() postgres.Config {
	return postgres.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		SSLMode:  c.SSLMode,
	}
}

// ToBrokerConfig converts to the redis broker config.
func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
