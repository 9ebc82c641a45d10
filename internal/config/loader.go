package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// Load reads configuration from environment variables, applies defaults for
// unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// loadStruct populates struct fields from the environment, recursing into
// nested sections. Fields without an env tag are left alone.
//
// Tags:
//
//	env:"NAME"       primary variable
//	envAlt:"NAME"    fallback variable, read when the primary is unset
//	default:"value"  used when neither variable is set
//	required:"true"  fail instead of defaulting
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct && field.Type != timeType {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, err := lookupEnv(field.Tag)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// lookupEnv resolves a field's raw value from its tags.
func lookupEnv(tag reflect.StructTag) (string, error) {
	name := tag.Get("env")

	if value := os.Getenv(name); value != "" {
		return value, nil
	}
	if alt := tag.Get("envAlt"); alt != "" {
		if value := os.Getenv(alt); value != "" {
			return value, nil
		}
	}
	if tag.Get("required") == "true" {
		return "", fmt.Errorf("required environment variable %s is not set", name)
	}
	return tag.Get("default"), nil
}

// setField parses value into field according to its type.
func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(splitList(value)))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// problems collects validation failures.
type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	var p problems

	c.Server.validate(&p)
	c.Upload.validate(&p)
	c.Import.validate(&p)
	c.Rate.validate(&p)
	c.Security.validate(&p)
	c.Logging.validate(&p)

	if len(p) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(p, "\n  - "))
	}
	return nil
}

func (c *ServerConfig) validate(p *problems) {
	p.check(c.Port > 0 && c.Port <= 65535, "SERVER_PORT (%d) must be 1-65535", c.Port)
	p.check(c.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative")
	p.check(c.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	p.check(c.RequestTimeout > 0, "SERVER_REQUEST_TIMEOUT must be positive")
}

func (c *UploadConfig) validate(p *problems) {
	p.check(c.MaxFileSize > 0, "UPLOAD_MAX_FILE_SIZE must be positive")
	p.check(c.MaxConcurrent > 0, "UPLOAD_MAX_CONCURRENT must be positive")
	p.check(c.MaxWaitTime > 0, "UPLOAD_MAX_WAIT_TIME must be positive")
	p.check(c.Timeout > 0, "UPLOAD_TIMEOUT must be positive")
}

func (c *ImportConfig) validate(p *problems) {
	p.check(c.SessionTTL > 0, "IMPORT_SESSION_TTL must be positive")
	p.check(c.MaxSessions > 0, "IMPORT_MAX_SESSIONS must be positive")
	p.check(c.SweepInterval > 0, "IMPORT_SWEEP_INTERVAL must be positive")
	p.check(len(c.PhoneRegion) == 2, "IMPORT_PHONE_REGION (%q) must be a two-letter region code", c.PhoneRegion)
}

func (c *RateLimitConfig) validate(p *problems) {
	if !c.Enabled {
		return
	}
	p.check(c.RequestsPerMinute > 0, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	p.check(c.UploadLimit > 0, "RATE_LIMIT_UPLOAD must be positive when rate limiting is enabled")
}

func (c *SecurityConfig) validate(p *problems) {
	p.check(!c.RequireAPIKey || len(c.APIKeys) > 0,
		"REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

func (c *LoggingConfig) validate(p *problems) {
	p.check(oneOf(c.Level, logLevels), "LOG_LEVEL (%q) must be one of: %s", c.Level, strings.Join(logLevels, ", "))
	p.check(oneOf(c.Format, logFormats), "LOG_FORMAT (%q) must be one of: %s", c.Format, strings.Join(logFormats, ", "))
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}

// String returns a loggable summary of the config with API keys masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {Host: %q, Port: %d}, "+
		"Upload: {MaxFileSize: %d, MaxConcurrent: %d}, "+
		"Import: {SessionTTL: %s, MaxSessions: %d, PhoneRegion: %q}, "+
		"Rate: {Enabled: %v, RequestsPerMinute: %d, UploadLimit: %d}, "+
		"Security: {RequireAPIKey: %v, APIKeys: [MASKED x%d]}, "+
		"Logging: {Level: %q, Format: %q}}",
		c.Server.Host, c.Server.Port,
		c.Upload.MaxFileSize, c.Upload.MaxConcurrent,
		c.Import.SessionTTL, c.Import.MaxSessions, c.Import.PhoneRegion,
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.UploadLimit,
		c.Security.RequireAPIKey, len(c.Security.APIKeys),
		c.Logging.Level, c.Logging.Format,
	)
}
