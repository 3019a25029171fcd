package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for idremap configuration.
const envPrefix = "IDREMAP"

// keys lists every configuration key in resolution order.
var keys = []string{
	"oldCatalog",
	"newCatalog",
	"dataDir",
	"outDir",
	"inventoryKey",
	"idKey",
	"backup",
	"jobs",
	"report",
	"log.timestamps",
}

// envVar returns the environment variable bound to key,
// e.g. oldCatalog -> IDREMAP_OLD_CATALOG.
func envVar(key string) string {
	var b strings.Builder
	b.WriteString(envPrefix)
	b.WriteByte('_')
	for i, r := range key {
		switch {
		case r == '.':
			b.WriteByte('_')
			continue
		case r >= 'A' && r <= 'Z' && i > 0 && key[i-1] != '.':
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Loader reads the config file and the environment as separate layers so
// the resolver can tell them apart.
type Loader struct {
	v   *viper.Viper
	env *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	env := viper.New()
	for _, key := range keys {
		_ = env.BindEnv(key, envVar(key))
	}

	return &Loader{v: viper.New(), env: env}
}

// Load reads configFile. A missing file is not an error. Environment
// variables are not applied here; Resolve layers them on top.
func (l *Loader) Load(configFile string) (*Config, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the file the loader read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
