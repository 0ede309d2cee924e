package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	ConfigDir      string        `validate:"required"`
	StateDir       string        `validate:"required"`
	APIBaseURL     string        `validate:"required,url"`
	APIToken       string        `validate:"-"`
	CacheBackend   string        `validate:"required,oneof=sqlite badger memory"`
	CachePath      string        `validate:"required_unless=CacheBackend memory"`
	Debounce       time.Duration `validate:"gt=0"`
	RequestTimeout time.Duration `validate:"gt=0"`
	RemoteRetryMax int           `validate:"gte=0,lte=10"`
	LoggingEnabled bool
	LoggingLevel   string `validate:"oneof=debug info warn error"`
	Debug          bool
}

// Current returns the typed snapshot of the loaded configuration.
func Current() Settings {
	return Settings{
		ConfigDir:      Get("config_dir", ""),
		StateDir:       Get("state_dir", ""),
		APIBaseURL:     Get("api_base_url", ""),
		APIToken:       Get("api_token", ""),
		CacheBackend:   Get("cache_backend", "sqlite"),
		CachePath:      Get("cache_path", ""),
		Debounce:       GetDuration("debounce_ms", 500*time.Millisecond),
		RequestTimeout: GetDuration("request_timeout_ms", 10*time.Second),
		RemoteRetryMax: GetInt("remote_retry_max", 0),
		LoggingEnabled: GetBool("logging_enabled", false),
		LoggingLevel:   Get("logging_level", "info"),
		Debug:          GetBool("debug", false),
	}
}

// Validate checks the snapshot as a whole.
func (s Settings) Validate() error {
	if err := structValidator.Struct(s); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("invalid configuration: %s failed %q", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
