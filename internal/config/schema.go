package config

// DefaultServerURL is used when no setting overrides the service location.
const DefaultServerURL = "http://localhost:10777/"

// Settings is the catmgr session configuration.
type Settings struct {
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	User      string `mapstructure:"user" yaml:"user,omitempty"`
	Password  string `mapstructure:"password" yaml:"password,omitempty"`

	// Path is the settings file that was consulted, whether or not it existed.
	Path string `mapstructure:"-" yaml:"-"`
	// Found reports whether Path was present on disk.
	Found bool `mapstructure:"-" yaml:"-"`
}

// HasUser reports whether a default credential identity is configured.
func (s *Settings) HasUser() bool { return s.User != "" }

// HasPassword reports whether a default credential secret is configured.
func (s *Settings) HasPassword() bool { return s.Password != "" }

// Redacted returns a copy safe for display: the password is masked.
func (s Settings) Redacted() Settings {
	if s.Password != "" {
		s.Password = "********"
	}
	return s
}
