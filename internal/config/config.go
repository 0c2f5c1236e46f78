package config

import (
	"os"
	"time"

	pkgcfg "github.com/swapmart/auth-service/pkg/config"
)

type Config struct {
	ServiceName string
	ServerAddr  string
	LogLevel    string

	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTokenTTL   time.Duration

	// AppURL is the public base URL embedded into verification links.
	AppURL string

	SMTPHost     string
	SMTPPort     int
	MailSender   string
	MailPassword string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
}

func Load() Config {
	return Config{
		ServiceName: pkgcfg.EnvDefault("SERVICE_NAME", "auth"),
		ServerAddr:  pkgcfg.EnvDefault("SERVER_ADDR", ":8000"),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("REFRESH_SECRET")),
		AccessTokenTTL:   time.Duration(pkgcfg.EnvIntDefault("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,

		AppURL: pkgcfg.EnvDefault("APP_URL", "http://localhost:8000"),

		SMTPHost:     os.Getenv("MAIL_HOST"),
		SMTPPort:     pkgcfg.EnvIntDefault("MAIL_PORT", 587),
		MailSender:   os.Getenv("MAIL_SENDER_ADDRESS"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),

		KafkaBrokers: pkgcfg.CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
	}
}

func (c Config) Validate() {
	pkgcfg.MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	pkgcfg.MustNonEmptyBytes(c.JWTAccessSecret, "JWT_SECRET")
	pkgcfg.MustNonEmptyBytes(c.JWTRefreshSecret, "REFRESH_SECRET")
}
