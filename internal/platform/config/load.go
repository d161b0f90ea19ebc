package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	kfs "github.com/knadh/koanf/providers/fs"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	defaultConfigDir = "configs"
)

// layerExtensions lists the file extensions tried for each config layer, in
// order.
var layerExtensions = []string{".yaml", ".yml", ".json"}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fsys         fs.FS
	overrideFile string
}

// WithConfigDir reads the base and profile layers from dir instead of
// ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.fsys = os.DirFS(dir)
	}
}

// WithFS reads the base and profile layers from fsys, for example an
// embedded or in-memory file system.
func WithFS(fsys fs.FS) Option {
	return func(o *loadOptions) {
		o.fsys = fsys
	}
}

// WithOverrideFile loads one extra YAML or JSON file after the profile
// layer, typically a mounted secret. An empty path is ignored.
func WithOverrideFile(p string) Option {
	return func(o *loadOptions) {
		o.overrideFile = p
	}
}

// Load builds the gateway configuration. Later layers win:
//
//  1. built-in defaults
//  2. base.{yaml,yml,json}
//  3. {profile}.{yaml,yml,json}
//  4. the override file, when set
//  5. APP_* environment variables
//
// Environment keys are matched against the keys already loaded, so
// underscores inside a field name survive:
//
//	APP_SERVER_READ_TIMEOUT        -> server.read_timeout
//	APP_CLIENT_RETRY_MAX_ATTEMPTS  -> client.retry.max_attempts
//	APP_CLIENT_INFO_TIME_ZONE      -> client_info.time_zone
//	APP_AUTH_SECRET                -> auth.secret
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{fsys: os.DirFS(defaultConfigDir)}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	for _, layer := range []string{"base", profile} {
		if err := loadLayer(k, o.fsys, layer); err != nil {
			return nil, err
		}
	}

	if o.overrideFile != "" {
		parser, err := parserFor(o.overrideFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(o.overrideFile), parser); err != nil {
			return nil, fmt.Errorf("loading override config %s: %w", o.overrideFile, err)
		}
	}

	envKeys := buildEnvLookup(k.Keys())
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			if dotted, ok := envKeys[key]; ok {
				return dotted, value
			}
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
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

// loadLayer loads the first of name.yaml, name.yml, name.json found in fsys.
func loadLayer(k *koanf.Koanf, fsys fs.FS, name string) error {
	for _, ext := range layerExtensions {
		p := name + ext
		if _, err := fs.Stat(fsys, p); err != nil {
			continue
		}
		parser, err := parserFor(p)
		if err != nil {
			return err
		}
		if err := k.Load(kfs.Provider(fsys, p), parser); err != nil {
			return fmt.Errorf("loading %s config %s: %w", name, p, err)
		}
		return nil
	}
	return fmt.Errorf("loading %s config: no %s.yaml, %s.yml or %s.json found: %w", name, name, name, name, fs.ErrNotExist)
}

func parserFor(p string) (koanf.Parser, error) {
	switch strings.ToLower(path.Ext(filepath.ToSlash(p))) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", filepath.Ext(p))
	}
}

// validateProfile rejects empty profile names and names that could escape
// the config directory.
func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// buildEnvLookup maps "server_read_timeout" style keys back to their dotted
// koanf form.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}
