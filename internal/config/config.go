package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = "catmgr.json"

// ResolvePath picks the settings path: an explicit flag value wins, then
// CATMGR_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv("CATMGR_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the settings file at path. A missing file is not an error and
// yields the built-in defaults; a malformed one is.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("user", "")
	v.SetDefault("password", "")

	v.SetEnvPrefix("CATMGR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")

	found := true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		found = false
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	s.Path = path
	s.Found = found
	return &s, nil
}

// WriteYAML renders the settings with the password masked.
func WriteYAML(w io.Writer, s *Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}
