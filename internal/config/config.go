// Package config loads the client configuration from a JSON file
// and from the environment.
package config

import (
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/postmarkgo/postmark/internal/hujsonx"
	"github.com/postmarkgo/postmark/internal/model"
	"github.com/postmarkgo/postmark/internal/netxlite"
	"github.com/postmarkgo/postmark/pkg/postmark"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// EnvPrefix is the prefix of the environment variables we read
// (e.g., POSTMARK_SERVER_TOKEN).
const EnvPrefix = "POSTMARK"

// Duration is a [time.Duration] written as a string (e.g., "30s") both
// in the config file and in the environment.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	return d.Decode(strings.Trim(string(data), `"`))
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config is the client configuration.
//
// Every field is OPTIONAL in the file and in the environment, but you
// need ServerToken to send email and AccountToken to manage servers.
type Config struct {
	// AccountToken is the account-scoped API token.
	AccountToken string `json:"account_token,omitempty" envconfig:"ACCOUNT_TOKEN"`

	// BaseURL overrides [postmark.DefaultBaseURL].
	BaseURL string `json:"base_url,omitempty" envconfig:"BASE_URL"`

	// ProxyURL is the http, https, or socks5 proxy to use.
	ProxyURL string `json:"proxy_url,omitempty" envconfig:"PROXY_URL"`

	// ServerToken is the server-scoped API token.
	ServerToken string `json:"server_token,omitempty" envconfig:"SERVER_TOKEN"`

	// Timeout is the overall timeout of each API call.
	Timeout Duration `json:"timeout,omitempty" envconfig:"TIMEOUT"`

	// UserAgent overrides the default User-Agent.
	UserAgent string `json:"user_agent,omitempty" envconfig:"USER_AGENT"`
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locating the config directory")
	}
	return filepath.Join(dir, "postmark", "config.json"), nil
}

// Parse parses a config file, which may contain comments and
// trailing commas.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := hujsonx.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return &c, nil
}

// Read reads the config file at path, holding a read lock on it
// while reading.
func Read(path string) (*Config, error) {
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return Parse(data)
}

// Load reads the file at path, or at [DefaultPath] when path is empty,
// and then applies the environment, which takes precedence. A missing
// default file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	c, err := Read(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		c = &Config{}
	default:
		return nil, err
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyEnv overrides the fields whose environment variable is set.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Wrap(err, "processing environment")
	}
	return nil
}

// ErrInvalidBaseURL indicates that the base URL is not an absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("config: base URL must be an absolute http or https URL")

// Validate checks the URLs and the timeout.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		URL, err := url.Parse(c.BaseURL)
		if err != nil {
			return errors.Wrap(err, "parsing base URL")
		}
		if (URL.Scheme != "http" && URL.Scheme != "https") || URL.Host == "" {
			return ErrInvalidBaseURL
		}
	}
	if c.ProxyURL != "" {
		URL, err := url.Parse(c.ProxyURL)
		if err != nil {
			return errors.Wrap(err, "parsing proxy URL")
		}
		switch URL.Scheme {
		case "http", "https", "socks5":
		default:
			return netxlite.ErrProxyUnsupportedScheme
		}
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout must not be negative")
	}
	return nil
}

// NewTransport validates the config and builds a [*postmark.HTTPTransport]
// using it. The logger may be nil.
func (c *Config) NewTransport(logger model.Logger) (*postmark.HTTPTransport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	clientConfig := &netxlite.HTTPClientConfig{Timeout: time.Duration(c.Timeout)}
	if c.ProxyURL != "" {
		clientConfig.ProxyURL, _ = url.Parse(c.ProxyURL) // checked by Validate
	}
	client, err := netxlite.NewHTTPClient(clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "creating HTTP client")
	}
	txp := postmark.NewHTTPTransport(c.ServerToken)
	txp.AccountToken = c.AccountToken
	txp.Client = client
	txp.Logger = model.ValidLoggerOrDefault(logger)
	if c.BaseURL != "" {
		txp.BaseURL = c.BaseURL
	}
	if c.UserAgent != "" {
		txp.UserAgent = c.UserAgent
	}
	return txp, nil
}
