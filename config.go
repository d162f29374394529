package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadolammi/hrassist/internal/storage"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8000"`
	GoogleAPIKey     string        `env:"GOOGLE_API_KEY,required"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"gemini-2.5-flash"`
	ScreeningModel   string        `env:"SCREENING_MODEL" envDefault:"gemini-2.5-pro"`
	LLMTemperature   float32       `env:"LLM_TEMPERATURE" envDefault:"0.4"`
	LLMRatePerMinute int           `env:"LLM_RATE_PER_MINUTE" envDefault:"60"`
	AnalyticsFile    string        `env:"ANALYTICS_FILE" envDefault:"analytics_data.json"`
	UploadDir        string        `env:"UPLOAD_DIR" envDefault:"temp_uploads"`
	MaxUploadMB      int64         `env:"MAX_UPLOAD_MB" envDefault:"20"`
	DBURL            string        `env:"DB_URL"`
	RabbitMQURL      string        `env:"RABBITMQ_URL"`
	RedisURL         string        `env:"REDIS_URL"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"15m"`
	CacheMaxEntries  int           `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
	R2AccountID      string        `env:"R2_ACCOUNT_ID"`
	R2Bucket         string        `env:"R2_BUCKET"`
	R2AccessKey      string        `env:"R2_ACCESS_KEY"`
	R2SecretKey      string        `env:"R2_SECRET_KEY"`
}

// loadConfig reads .env when present, then the process environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func (c Config) R2() storage.R2Config {
	return storage.R2Config{
		AccountID: c.R2AccountID,
		Bucket:    c.R2Bucket,
		AccessKey: c.R2AccessKey,
		SecretKey: c.R2SecretKey,
	}
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
