// Package releaseconfig loads the optional .mono.toml configuration file,
// scaled down from the reference codebase's viper-based singleton config
// loader (internal/config) to this domain's single [scopes] table.
package releaseconfig

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config exposes the settings loaded from .mono.toml.
type Config struct {
	v *viper.Viper
}

// LoadConfig searches startDir and its ancestors for .mono.toml, the same
// upward-walk pattern the reference codebase uses for its own dotfile, with
// MONO_-prefixed environment variable overrides. A missing file is not an
// error: LoadConfig returns a Config exposing an empty extra-scope set.
func LoadConfig(startDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".mono")
	v.SetConfigType("toml")

	for _, dir := range ancestorsOf(startDir) {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("MONO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{v: v}, nil
}

// ExtraScopes returns the [scopes] table as a name -> path map, consumed by
// changeset.New per §4.3.
func (c *Config) ExtraScopes() map[string]string {
	raw := c.v.GetStringMapString("scopes")
	out := make(map[string]string, len(raw))
	for name, path := range raw {
		out[name] = path
	}
	return out
}

func ancestorsOf(dir string) []string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	var dirs []string
	cur := abs
	for {
		dirs = append(dirs, cur)
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	return dirs
}
