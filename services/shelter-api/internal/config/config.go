package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// ShelterAPIConfig holds everything the service reads from the environment.
type ShelterAPIConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"shelter-api"`
	Port        int    `env:"PORT"         envDefault:"5000"`
	AppEnv      string `env:"APP_ENV"      envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`

	Mongo     MongoConfig     `envPrefix:"MONGO_"`
	Token     TokenConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Storage   StorageConfig

	AppPasswordResetURL string   `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:4200/reset-password"`
	AdminEmail          string   `env:"ADMIN_EMAIL"            envDefault:"admin@example.com"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS"   envDefault:"*"                                    envSeparator:","`
	GoogleClientID      string   `env:"GOOGLE_CLIENT_ID"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For or X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	GRPCHealthPort int    `env:"GRPC_HEALTH_PORT"`
	ConsulAddr     string `env:"CONSUL_ADDR"`
	AdvertiseHost  string `env:"ADVERTISE_HOST" envDefault:"127.0.0.1"`
}

type MongoConfig struct {
	URI            string        `env:"URI,required,notEmpty"`
	Database       string        `env:"DATABASE"        envDefault:"animal_shelter"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

type TokenConfig struct {
	Secret                      string        `env:"JWT_SECRET,required,notEmpty"`
	ExpiresIn                   time.Duration `env:"JWT_EXPIRES_IN"                  envDefault:"1h"`
	Issuer                      string        `env:"JWT_ISSUER"                      envDefault:"animal-shelter-api"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"15m"`
}

type RateLimitConfig struct {
	Requests int           `env:"REQUESTS" envDefault:"100"`
	Window   time.Duration `env:"WINDOW"   envDefault:"15m"`
}

type StorageConfig struct {
	Endpoint        string        `env:"S3_ENDPOINT"`
	Bucket          string        `env:"S3_BUCKET_NAME"`
	UsePathStyle    bool          `env:"S3_USE_PATH_STYLE"`
	PublicBaseURL   string        `env:"S3_PUBLIC_BASE_URL"`
	PresignExpiry   time.Duration `env:"S3_PRESIGN_EXPIRES_IN" envDefault:"15m"`
	Region          string        `env:"AWS_REGION"            envDefault:"us-east-1"`
	AccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
}

// NewShelterAPIConfig parses the environment and exits the process when it is invalid.
func NewShelterAPIConfig(logger *zerolog.Logger) *ShelterAPIConfig {
	cfg, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	return cfg
}

// Load parses and validates the environment.
func Load() (*ShelterAPIConfig, error) {
	cfg, err := env.ParseAs[ShelterAPIConfig]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	return &cfg, nil
}

// Addr is the HTTP listen address.
func (c *ShelterAPIConfig) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// IsDevelopment reports whether the service runs in development mode.
func (c *ShelterAPIConfig) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// PasswordResetEnabled reports whether the forgot/reset password flow is configured.
func (c *ShelterAPIConfig) PasswordResetEnabled() bool {
	return c.Token.PasswordResetTokenSecret != ""
}

// StorageEnabled reports whether pet image uploads are configured.
func (c *ShelterAPIConfig) StorageEnabled() bool {
	return c.Storage.Bucket != ""
}

func (c *ShelterAPIConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.Token.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if c.Token.PasswordResetTokenSecret != "" && c.Token.PasswordResetTokenSecret == c.Token.Secret {
		return errors.New("PASSWORD_RESET_TOKEN_SECRET must differ from JWT_SECRET")
	}

	return nil
}
