package config

import (
	"github.com/caarlos0/env/v10"
)

type PaystackConfig struct {
	SecretKey string `env:"SECRET_KEY"`
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.paystack.co"`
}

type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromAddress  string `env:"EMAIL_FROM_ADDRESS" envDefault:"hello@heartpages.app"`
	FromName     string `env:"EMAIL_FROM_NAME" envDefault:"HeartPages"`
}

type R2Config struct {
	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Bucket          string `env:"BUCKET"`
	PublicURL       string `env:"PUBLIC_URL"`
}

type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PagesDir  string `env:"PAGES_DIR" envDefault:"./pages"`
	DistDir   string `env:"DIST_DIR" envDefault:"./dist"`

	// "local" keeps uploads under UPLOAD_DIR, "r2" pushes them to Cloudflare R2.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"`

	Paystack PaystackConfig `envPrefix:"PAYSTACK_"`
	Email    EmailConfig
	R2       R2Config `envPrefix:"R2_"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
