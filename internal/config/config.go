package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config содержит конфигурацию приложения. Секреты загружаются
// один раз при старте и никогда не логируются.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RendererAddress string

	UploadTokenSecret string
	InternalToken     string
	WebhookSecret     string

	ResendAPIKey   string
	OrderEmailFrom string
	OrderEmailTo   string

	UploadTokenTTL time.Duration
	SweepInterval  time.Duration
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения > флаги > значения по умолчанию.
func Load() *Config {
	cfg := &Config{}

	var tokenTTL string
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	flag.StringVar(&cfg.RendererAddress, "r", "", "адрес сервиса генерации PDF")
	flag.StringVar(&tokenTTL, "t", "", "время жизни токена загрузки (например 15m)")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}
	if envRenderer := os.Getenv("RENDERER_ADDRESS"); envRenderer != "" {
		cfg.RendererAddress = envRenderer
	}

	// Секреты принимаются только из окружения.
	cfg.UploadTokenSecret = os.Getenv("UPLOAD_TOKEN_SECRET")
	cfg.InternalToken = os.Getenv("HOTZY_INTERNAL_TOKEN")
	cfg.WebhookSecret = os.Getenv("WEBHOOK_SECRET")

	// Почтовый транспорт: наличие проверяет диспетчер уведомлений,
	// сервис может принимать заказы и без него.
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.OrderEmailFrom = os.Getenv("ORDER_EMAIL_FROM")
	cfg.OrderEmailTo = os.Getenv("ORDER_EMAIL_TO")

	cfg.UploadTokenTTL = 15 * time.Minute
	if envTTL := os.Getenv("UPLOAD_TOKEN_TTL"); envTTL != "" {
		tokenTTL = envTTL
	}
	if tokenTTL != "" {
		if d, err := time.ParseDuration(tokenTTL); err == nil && d > 0 {
			cfg.UploadTokenTTL = d
		}
	}

	cfg.SweepInterval = time.Minute
	if envSweep := os.Getenv("SWEEP_INTERVAL"); envSweep != "" {
		if d, err := time.ParseDuration(envSweep); err == nil && d > 0 {
			cfg.SweepInterval = d
		}
	}

	return cfg
}

// Validate проверяет, что обязательные параметры заданы.
// Отсутствие секрета - ошибка конфигурации: процесс не должен
// стартовать с тихо отключённой подписью токенов.
func (c *Config) Validate() error {
	var missing []string

	if c.DatabaseURI == "" {
		missing = append(missing, "DATABASE_URI")
	}
	if c.UploadTokenSecret == "" {
		missing = append(missing, "UPLOAD_TOKEN_SECRET")
	}
	if c.InternalToken == "" {
		missing = append(missing, "HOTZY_INTERNAL_TOKEN")
	}
	if c.WebhookSecret == "" {
		missing = append(missing, "WEBHOOK_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	return nil
}

// ErrMissingConfig - класс ошибок отсутствующей обязательной конфигурации.
var ErrMissingConfig = errors.New("missing required settings")
