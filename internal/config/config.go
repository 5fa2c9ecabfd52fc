// Package config loads the server settings.  Values come from (highest
// priority first) command line flags, NTLANGO_* environment variables, an
// optional config file and the defaults below.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables, eg. NTLANGO_MONGO_URI
const EnvPrefix = "NTLANGO"

// Config holds all the settings.  Keys use dashes, which become underscores
// in environment variable names.
type Config struct {
	Addr           string        `mapstructure:"addr"`
	MongoURI       string        `mapstructure:"mongo-uri"`
	Database       string        `mapstructure:"database"`
	MongoTimeout   time.Duration `mapstructure:"mongo-timeout"`
	JWTSecret      string        `mapstructure:"jwt-secret"`
	TokenTTL       time.Duration `mapstructure:"token-ttl"`
	SecretsFile    string        `mapstructure:"secrets-file"`
	SecretsEnv     string        `mapstructure:"secrets-env"`
	SecretsTTL     time.Duration `mapstructure:"secrets-ttl"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	CORSOrigins    []string      `mapstructure:"cors-origins"`
	RateLimit      float64       `mapstructure:"rate-limit"`
	RateBurst      int           `mapstructure:"rate-burst"`
	LoaderWait     time.Duration `mapstructure:"loader-wait"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFormat      string        `mapstructure:"log-format"`
}

var defaults = map[string]interface{}{
	"addr":            ":4000",
	"mongo-uri":       "",
	"database":        "ntlango",
	"mongo-timeout":   10 * time.Second,
	"jwt-secret":      "",
	"token-ttl":       2 * time.Hour,
	"secrets-file":    "",
	"secrets-env":     EnvPrefix + "_SECRETS",
	"secrets-ttl":     15 * time.Minute,
	"request-timeout": 15 * time.Second,
	"cors-origins":    []string{"http://localhost:3000"},
	"rate-limit":      20.0,
	"rate-burst":      40,
	"loader-wait":     2 * time.Millisecond,
	"log-level":       "info",
	"log-format":      "json",
}

// SetupFlags adds a flag for every setting to fs
func SetupFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (YAML, JSON or TOML)")
	fs.String("addr", defaults["addr"].(string), "HTTP listen address")
	fs.String("mongo-uri", "", "MongoDB connection string (or MONGO_DB_URL in the secrets)")
	fs.String("database", defaults["database"].(string), "MongoDB database name")
	fs.Duration("mongo-timeout", defaults["mongo-timeout"].(time.Duration), "timeout for connecting to MongoDB")
	fs.String("jwt-secret", "", "JWT signing secret (or JWT_SECRET in the secrets)")
	fs.Duration("token-ttl", defaults["token-ttl"].(time.Duration), "lifetime of issued tokens")
	fs.String("secrets-file", "", "JSON file of secrets")
	fs.String("secrets-env", defaults["secrets-env"].(string), "environment variable holding a JSON object of secrets")
	fs.Duration("secrets-ttl", defaults["secrets-ttl"].(time.Duration), "how long secrets are cached")
	fs.Duration("request-timeout", defaults["request-timeout"].(time.Duration), "maximum time to handle a request")
	fs.StringSlice("cors-origins", defaults["cors-origins"].([]string), "origins allowed by CORS")
	fs.Float64("rate-limit", defaults["rate-limit"].(float64), "requests per second allowed from one IP (0 = no limit)")
	fs.Int("rate-burst", defaults["rate-burst"].(int), "burst size of the rate limit")
	fs.Duration("loader-wait", defaults["loader-wait"].(time.Duration), "batch loader wait window")
	fs.String("log-level", defaults["log-level"].(string), "debug, info, warn or error")
	fs.String("log-format", defaults["log-format"].(string), "json or text")
}

// New returns a viper instance with the defaults and environment binding
// set up.  Flags should be bound to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if the "config" key names one, and returns
// the validated settings
func Load(v *viper.Viper) (*Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %q: %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token-ttl must be positive"))
	}
	if c.SecretsTTL <= 0 {
		errs = append(errs, errors.New("secrets-ttl must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request-timeout must be positive"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate-limit and rate-burst cannot be negative"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log-level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log-format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
