package config

import (
	"os"
	"sort"

	"github.com/spf13/viper"

	"github.com/coe-tools/idremap/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Flags holds the values of command-line flags the user actually set,
// keyed by configuration key.
type Flags map[string]any

// defaultValues returns DefaultConfig as configuration keys.
func defaultValues() map[string]any {
	cfg := DefaultConfig()
	return map[string]any{
		"inventoryKey":   cfg.InventoryKey,
		"idKey":          cfg.IDKey,
		"backup":         cfg.Backup,
		"jobs":           cfg.Jobs,
		"report":         cfg.Report,
		"log.timestamps": *cfg.Log.Timestamps,
	}
}

// Resolve layers flags, environment, config file and defaults with that
// precedence, and validates the result. The returned values record the
// source of every key that has a value and the values it shadowed.
//
// Load must be called first for the config file layer to apply.
func (l *Loader) Resolve(flags Flags) (*Config, []ResolvedValue, error) {
	defaults := defaultValues()
	merged := viper.New()

	var resolved []ResolvedValue
	for _, key := range keys {
		flagValue, inFlags := flags[key]
		defValue, hasDefault := defaults[key]

		layers := []struct {
			source ConfigSource
			value  any
			ok     bool
		}{
			{SourceFlag, flagValue, inFlags},
			{SourceEnv, l.env.Get(key), l.env.IsSet(key)},
			{SourceConfig, l.v.Get(key), l.v.IsSet(key)},
			{SourceDefault, defValue, hasDefault},
		}

		rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
		for _, layer := range layers {
			if !layer.ok {
				continue
			}
			if rv.Source == "" {
				rv.Source = layer.source
				rv.Value = layer.value
				continue
			}
			rv.Shadowed[layer.source] = layer.value
		}
		if rv.Source == "" {
			continue
		}

		merged.Set(key, rv.Value)
		resolved = append(resolved, rv)
	}

	var cfg Config
	if err := merged.Unmarshal(&cfg); err != nil {
		return nil, resolved, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, resolved, err
	}
	return &cfg, resolved, nil
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) IDREMAP_CONFIG env, (3) ~/.idremap/config.yaml default
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(envPrefix + "_CONFIG")

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case flagValue != "":
		result.ConfigPath = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)

		sources := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			sources = append(sources, string(source))
		}
		sort.Strings(sources)
		for _, source := range sources {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", v.Shadowed[ConfigSource(source)],
			)
		}
	}
}
