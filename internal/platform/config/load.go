package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type loader struct {
	dir     string
	prefix  string
	dotEnvs []string
}

// Option adjusts where Load looks for configuration.
type Option func(*loader)

// WithDir reads base.yaml and the profile file from dir instead of configs/.
func WithDir(dir string) Option {
	return func(l *loader) { l.dir = dir }
}

// WithEnvPrefix replaces the APP_ environment prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

// WithDotEnv replaces the .env files exported before the environment is read.
// Pass no paths to skip them.
func WithDotEnv(paths ...string) Option {
	return func(l *loader) { l.dotEnvs = paths }
}

// Load builds the configuration for profile. Later layers win:
//
//  1. built-in defaults
//  2. configs/base.yaml
//  3. configs/{profile}.yaml
//  4. APP_ environment variables, after exporting .env
//
// Missing files are skipped. An environment variable names its key with
// underscores for both nesting and word breaks, so APP_SERVER_READ_TIMEOUT
// sets server.read_timeout. Comma-separated values fill list keys.
func Load(profile string, opts ...Option) (*Config, error) {
	l := &loader{dir: "configs", prefix: "APP_", dotEnvs: []string{".env"}}
	for _, opt := range opts {
		opt(l)
	}

	if err := LoadDotEnv(l.dotEnvs...); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), ""), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	layers := []string{"base"}
	if profile != "" {
		layers = append(layers, profile)
	}
	for _, name := range layers {
		path := filepath.Join(l.dir, name+".yaml")
		if err := loadYAML(k, path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(l.prefix, ".", l.envKey(k)), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// envKey maps a variable to a known key by comparing both with every
// separator turned into an underscore. Unknown variables are skipped.
func (l *loader) envKey(k *koanf.Koanf) func(string, string) (string, any) {
	known := make(map[string]string)
	for _, key := range k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(name, value string) (string, any) {
		key, ok := known[strings.ToLower(strings.TrimPrefix(name, l.prefix))]
		if !ok {
			return "", nil
		}

		switch k.Get(key).(type) {
		case []any, []string:
			return key, splitList(value)
		default:
			return key, value
		}
	}
}

func splitList(v string) []string {
	out := []string{}
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

func loadYAML(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// LoadDotEnv exports the variables of each existing file without overriding
// what the environment already sets.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	return nil
}
