package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddress string

	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPUser     string
	SMTPPassword string
	BrevoAPIKey  string
	MailFrom     string

	AllowedOrigins   []string
	AllowCredentials bool
}

// Load reads configuration from the environment, with an optional
// config.json next to the binary for local runs.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range []string{
		"HTTP_ADDRESS",
		"DATABASE_URL",
		"JWT_SECRET",
		"ACCESS_TOKEN_TTL",
		"REFRESH_TOKEN_TTL",
		"REDIS_ADDRESS",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"SMTP_HOST",
		"SMTP_USER",
		"SMTP_PASSWORD",
		"BREVO_API_KEY",
		"MAIL_FROM",
		"ALLOWED_ORIGINS",
		"ALLOW_CREDENTIALS",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("REDIS_ADDRESS", "localhost:6379")
	viper.SetDefault("MAIL_FROM", "no-reply@vybh.app")
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for _, key := range []string{"DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL"} {
		if viper.GetString(key) == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	cfg := &Config{
		HTTPAddress:      viper.GetString("HTTP_ADDRESS"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		AccessTokenTTL:   viper.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  viper.GetDuration("REFRESH_TOKEN_TTL"),
		RedisAddress:     viper.GetString("REDIS_ADDRESS"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		RedisDB:          viper.GetInt("REDIS_DB"),
		SMTPHost:         viper.GetString("SMTP_HOST"),
		SMTPUser:         viper.GetString("SMTP_USER"),
		SMTPPassword:     viper.GetString("SMTP_PASSWORD"),
		BrevoAPIKey:      viper.GetString("BREVO_API_KEY"),
		MailFrom:         viper.GetString("MAIL_FROM"),
		AllowedOrigins:   viper.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials: viper.GetBool("ALLOW_CREDENTIALS"),
	}

	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL must be a positive duration")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL must be a positive duration")
	}

	return cfg, nil
}
