// Package config loads the server configuration. Sources are applied in the
// order defaults, JSON file, environment (including a .env file), command
// line flags; every later source overrides the earlier ones.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the validated server settings.
type Config struct {
	RunAddr           string        `env:"SERVER_ADDRESS" validate:"hostname_port"`
	LogLevel          string        `env:"LOG_LEVEL" validate:"loglevel"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" validate:"required"`
	SessionSigningKey string        `env:"SESSION_SIGNING_KEY" validate:"omitempty,base64url"`
	PasswordHashCost  int           `env:"PASSWORD_HASH_COST" validate:"min=4,max=31"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	ConfigFile        string        `env:"CONFIG"`
}

type jsonConfig struct {
	RunAddr           *string `json:"server_address"`
	LogLevel          *string `json:"log_level"`
	SessionCookieName *string `json:"session_cookie_name"`
	SessionSigningKey *string `json:"session_signing_key"`
	PasswordHashCost  *int    `json:"password_hash_cost"`
	ShutdownTimeout   *string `json:"shutdown_timeout"`
}

var defaultConfig = Config{
	RunAddr:           ":8080",
	LogLevel:          "info",
	SessionCookieName: "session",
	PasswordHashCost:  10,
	ShutdownTimeout:   5 * time.Second,
}

// InitOption customizes how New collects the configuration.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
	args                []string
}

// WithDisableFlagsParsing skips the command line, for tests.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// WithArgs replaces os.Args[1:] as the flag source.
func WithArgs(args []string) InitOption {
	return func(options *initOptions) {
		options.args = args
	}
}

// New builds the configuration from all sources and validates it.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{
		args: os.Args[1:],
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("in internal/config/config.go/New(): error while `godotenv.Load()` calling: %w", err)
	}

	cfg := &Config{}
	applyDefaults(cfg, defaultConfig)

	var cli *flagValues
	if !options.disableFlagsParsing {
		cli, err = parseFlags(options.args)
		if err != nil {
			return nil, err
		}
	}

	configFile := os.Getenv("CONFIG")
	if cli != nil && cli.isSet("c") {
		configFile = cli.configFile
	}
	if configFile != "" {
		if err := cfg.loadJSON(configFile); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("in internal/config/config.go/New(): error while `env.Parse()` calling: %w", err)
	}
	cfg.ConfigFile = configFile

	if cli != nil {
		cli.applyTo(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SigningKey decodes SessionSigningKey. Without a configured key a random one
// is generated, so sessions do not survive a restart, like the stores.
func (c *Config) SigningKey() ([]byte, error) {
	if c.SessionSigningKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("in internal/config/config.go/SigningKey(): error while `rand.Read()` calling: %w", err)
		}

		return key, nil
	}

	key, err := base64.URLEncoding.DecodeString(c.SessionSigningKey)
	if err != nil {
		return nil, fmt.Errorf("in internal/config/config.go/SigningKey(): error while `base64.URLEncoding.DecodeString()` calling: %w", err)
	}

	return key, nil
}

func applyDefaults(cfg *Config, defaults Config) {
	if cfg.RunAddr == "" {
		cfg.RunAddr = defaults.RunAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = defaults.SessionCookieName
	}
	if cfg.SessionSigningKey == "" {
		cfg.SessionSigningKey = defaults.SessionSigningKey
	}
	if cfg.PasswordHashCost == 0 {
		cfg.PasswordHashCost = defaults.PasswordHashCost
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
}

func (c *Config) loadJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("in internal/config/config.go/loadJSON(): error while `os.ReadFile()` calling: %w", err)
	}

	var fromFile jsonConfig
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("in internal/config/config.go/loadJSON(): error while `json.Unmarshal()` calling: %w", err)
	}

	if fromFile.RunAddr != nil {
		c.RunAddr = *fromFile.RunAddr
	}
	if fromFile.LogLevel != nil {
		c.LogLevel = *fromFile.LogLevel
	}
	if fromFile.SessionCookieName != nil {
		c.SessionCookieName = *fromFile.SessionCookieName
	}
	if fromFile.SessionSigningKey != nil {
		c.SessionSigningKey = *fromFile.SessionSigningKey
	}
	if fromFile.PasswordHashCost != nil {
		c.PasswordHashCost = *fromFile.PasswordHashCost
	}
	if fromFile.ShutdownTimeout != nil {
		timeout, err := time.ParseDuration(*fromFile.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("in internal/config/config.go/loadJSON(): error while `time.ParseDuration()` calling: %w", err)
		}
		c.ShutdownTimeout = timeout
	}

	return nil
}

type flagValues struct {
	set map[string]bool

	runAddr          string
	logLevel         string
	passwordHashCost int
	configFile       string
}

func parseFlags(args []string) (*flagValues, error) {
	values := &flagValues{set: map[string]bool{}}

	flags := flag.NewFlagSet("shortener", flag.ContinueOnError)
	flags.StringVar(&values.runAddr, "a", "", "address and port to run server")
	flags.StringVar(&values.logLevel, "l", "", "logger level")
	flags.IntVar(&values.passwordHashCost, "p", 0, "bcrypt cost of password hashes")
	flags.StringVar(&values.configFile, "c", "", "JSON configuration file")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("in internal/config/config.go/parseFlags(): error while `flags.Parse()` calling: %w", err)
	}
	flags.Visit(func(f *flag.Flag) {
		values.set[f.Name] = true
	})

	return values, nil
}

func (f *flagValues) isSet(name string) bool {
	return f.set[name]
}

func (f *flagValues) applyTo(cfg *Config) {
	if f.isSet("a") {
		cfg.RunAddr = f.runAddr
	}
	if f.isSet("l") {
		cfg.LogLevel = f.logLevel
	}
	if f.isSet("p") {
		cfg.PasswordHashCost = f.passwordHashCost
	}
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	switch fieldLevel.Field().String() {
	case "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
		return true
	}

	return false
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}
