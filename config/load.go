package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. CINEMATCH_SERVER_PORT.
const EnvPrefix = "CINEMATCH_"

// PathEnvVar names a config file when no path is given explicitly.
const PathEnvVar = "CINEMATCH_CONFIG"

// DefaultPaths are searched in order when no config file is named.
var DefaultPaths = []string{
	"cinematch.yaml",
	"cinematch.yml",
	"/etc/cinematch/config.yaml",
}

// keys lists every configuration key reachable from the environment.
var keys = []string{
	"catalogue.path",
	"catalogue.retry_attempts",
	"catalogue.retry_delay",
	"embedding.host",
	"embedding.model",
	"embedding.api_token",
	"embedding.batch_size",
	"embedding.pool_size",
	"embedding.breaker_failures",
	"embedding.breaker_timeout",
	"cache.enabled",
	"cache.path",
	"cache.ttl",
	"recommend.top_n",
	"recommend.max_top_n",
	"recommend.overfetch",
	"recommend.title_cutoff",
	"recommend.like_cutoff",
	"server.host",
	"server.port",
	"server.request_timeout",
	"server.shutdown_timeout",
	"server.cors_origins",
	"server.rate_limit",
	"server.rate_window",
	"logging.level",
}

// legacyEnv maps the unprefixed variable names the service has always
// honoured. Prefixed variables take precedence.
var legacyEnv = map[string]string{
	"movies_csv": "catalogue.path",
	"model_name": "embedding.model",
	"top_n":      "recommend.top_n",
	"port":       "server.port",
}

// sliceKeys accept comma-separated values from the environment.
var sliceKeys = []string{"server.cors_origins"}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Load builds the configuration from defaults, then the YAML file at path
// (or the first of DefaultPaths that exists), then the environment.
// A path that is named explicitly must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", legacyEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", prefixedEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, len(fieldErrs))
			for i, fe := range fieldErrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func findConfigFile(path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnvVar)
		explicit = path != ""
	}
	if explicit {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return "", fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
		return path, nil
	}

	for _, candidate := range DefaultPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// legacyEnvKey maps MOVIES_CSV and friends. Everything else, and empty
// values, are ignored.
func legacyEnvKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return legacyEnv[strings.ToLower(name)], value
}

// prefixedEnvKey maps CINEMATCH_SERVER_REQUEST_TIMEOUT to
// server.request_timeout. Unknown names and empty values are ignored.
func prefixedEnvKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, key := range keys {
		if strings.ReplaceAll(key, ".", "_") == name {
			return key, value
		}
	}
	return "", nil
}

func splitSliceFields(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				values = append(values, p)
			}
		}
		if err := k.Set(key, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}
