package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig — настройки HTTP-сервера и выдаваемых токенов.
type AppConfig struct {
	HTTPAddr  string
	JWTSecret string
	TokenTTL  time.Duration
}

// LoadEnv подхватывает .env, если он есть; иначе работаем на переменных
// окружения процесса.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}

func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_MIN", 60)) * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("invalid app config: JWT_SECRET must be set")
	}

	return cfg, nil
}
