// Package config assembles the application configuration from defaults,
// command line flags and environment variables (including a .env file),
// in increasing priority, and validates the result.
package config

import (
	"flag"
	"log"
	"os"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the service.
type Config struct {
	RunAddr      string `env:"SERVER_ADDRESS" validate:"hostname_port"`
	ShortURLBase string `env:"BASE_URL" validate:"url"`
	LogLevel     string `env:"LOG_LEVEL" validate:"loglevel"`

	// AuthCookieName is the name of the session cookie.
	AuthCookieName string `env:"AUTH_COOKIE_NAME" validate:"required"`

	// AuthCookieSigningSecretKey is the base64url-encoded HMAC key used to
	// sign session tokens.
	AuthCookieSigningSecretKey string `env:"AUTH_COOKIE_SIGNING_SECRET_KEY" validate:"required,base64url"`

	// TrustedSubnet is a CIDR; only clients inside it may query the internal
	// stats endpoint. Empty disables the endpoint.
	TrustedSubnet string `env:"TRUSTED_SUBNET" validate:"omitempty,cidr"`
}

var defaultConfig = Config{
	RunAddr:                    ":8080",
	ShortURLBase:               "http://localhost:8080",
	LogLevel:                   "info",
	AuthCookieName:             "tinyapp_session",
	AuthCookieSigningSecretKey: "c2VjcmV0LXNpZ25pbmcta2V5",
	TrustedSubnet:              "",
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[fieldLevel.Field().String()]
}

func (values *Config) validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}

	return validate.Struct(values)
}

// InitOption customizes New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing prevents New from touching the flag package.
// Tests use it to avoid flag redefinition across packages.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New builds the configuration: defaults, then flags, then environment.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := defaultConfig

	if !options.disableFlagsParsing {
		flag.StringVar(&values.RunAddr, "a", values.RunAddr, "address and port to run server")
		flag.StringVar(&values.ShortURLBase, "b", values.ShortURLBase, "base address of the resulting shortened URL")
		flag.StringVar(&values.LogLevel, "l", values.LogLevel, "logger level")
		flag.StringVar(&values.TrustedSubnet, "t", values.TrustedSubnet, "trusted subnet for the internal stats endpoint (CIDR)")
		flag.Parse()
	}

	if err := env.Parse(&values); err != nil {
		return nil, err
	}

	if err := values.validate(); err != nil {
		return nil, err
	}

	return &values, nil
}
