// Package config loads the clock server configuration from an optional
// YAML file and NOJSCLOCK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/vcrobe/nojs-clock/appcomponents"
	"github.com/vcrobe/nojs-clock/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. NOJSCLOCK_HTTP_PORT.
const EnvPrefix = "nojsclock"

// Default values
const (
	DefaultHTTPPort        = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultLogPreset       = logging.PresetProduction
	DefaultShutdownTimeout = 10 * time.Second
)

// HTTP holds the listener settings.
type HTTP struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
}

// Log selects the zap preset.
type Log struct {
	Preset string `mapstructure:"preset" validate:"oneof=development production"`
}

// Clock configures the clock component of every rendered App.
type Clock struct {
	Layout   string        `mapstructure:"layout" validate:"required,time_layout"`
	Interval time.Duration `mapstructure:"interval" validate:"gte=10ms"`
}

// Shutdown bounds the graceful shutdown.
type Shutdown struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Config represents the application configuration
type Config struct {
	HTTP     HTTP     `mapstructure:"http"`
	Log      Log      `mapstructure:"log"`
	Clock    Clock    `mapstructure:"clock"`
	Shutdown Shutdown `mapstructure:"shutdown"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("time_layout", timeLayoutValidate); err != nil {
		panic(fmt.Sprintf("could not register time_layout validation: %v", err))
	}
	return v
}

// timeLayoutValidate accepts layouts that contain at least one time
// element, so formatting never returns the layout unchanged.
func timeLayoutValidate(fl validator.FieldLevel) bool {
	layout := fl.Field().String()
	reference := time.Date(2001, time.February, 3, 16, 5, 6, 0, time.UTC)
	return reference.Format(layout) != layout
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", DefaultHTTPPort)
	v.SetDefault("http.read_timeout", DefaultReadTimeout)
	v.SetDefault("http.write_timeout", DefaultWriteTimeout)
	v.SetDefault("http.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("log.preset", DefaultLogPreset)
	v.SetDefault("clock.layout", appcomponents.DefaultTimeLayout)
	v.SetDefault("clock.interval", appcomponents.DefaultTickInterval)
	v.SetDefault("shutdown.timeout", DefaultShutdownTimeout)
}

// Load reads the configuration. An empty path uses defaults and
// environment variables only; a non-empty path must point to a readable
// YAML file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
