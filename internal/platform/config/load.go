package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// Option adjusts how Load reads configuration.
type Option func(*options)

type options struct {
	configDir string
}

// WithConfigDir points Load at a different YAML directory. The default is
// "configs" under the working directory.
func WithConfigDir(dir string) Option {
	return func(o *options) {
		o.configDir = dir
	}
}

// Load assembles the configuration from three layers, later layers winning:
// {configDir}/base.yaml, then {configDir}/{profile}.yaml, then APP_-prefixed
// environment variables. The merged result is unmarshalled into Config and
// validated.
//
// Env var names map onto dotted koanf keys by matching against the keys the
// YAML layers already defined, which disambiguates underscores inside field
// names from nesting separators:
//
//	APP_SERVER_PORT         -> server.port
//	APP_SERVER_READ_TIMEOUT -> server.read_timeout
//	APP_DOCUSEAL_API_TOKEN  -> docuseal.api_token
//	APP_SMTP_PASSWORD       -> smtp.password
//	APP_WEBHOOK_SECRET      -> webhook.secret
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	o := &options{configDir: defaultConfigDir}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.configDir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	if err := applyEnv(k); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// applyEnv overlays APP_-prefixed environment variables onto the YAML
// layers. Every env-settable key must already exist in YAML (secrets are
// declared there as empty placeholders); the index built from those keys is
// what resolves APP_SERVER_READ_TIMEOUT to "server.read_timeout" rather than
// "server.read.timeout".
func applyEnv(k *koanf.Koanf) error {
	index := envKeyIndex(k.Keys())

	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

			if dotted, ok := index[key]; ok {
				return dotted, value
			}

			// Unknown key: best-effort underscore-to-dot split.
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil)
}

// checkProfile rejects profile names that could escape the config directory.
func checkProfile(profile string) error {
	if strings.TrimSpace(profile) == "" {
		return errors.New("profile must not be empty")
	}
	if strings.ContainsAny(profile, `/\`) {
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	}
	if strings.Contains(profile, "..") {
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// envKeyIndex maps each dotted koanf key to its flattened env spelling, e.g.
// "server.read_timeout" is reachable as "server_read_timeout".
func envKeyIndex(keys []string) map[string]string {
	index := make(map[string]string, len(keys))
	for _, key := range keys {
		index[strings.ReplaceAll(key, ".", "_")] = key
	}
	return index
}
