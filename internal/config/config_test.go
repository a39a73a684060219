package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/postmarkgo/postmark/internal/netxlite"
	"github.com/postmarkgo/postmark/pkg/postmark"
)

const sampleConfig = `{
	// copied from the dashboard
	"server_token": "server-token",
	"account_token": "account-token",
	"base_url": "http://127.0.0.1:8080/",
	"timeout": "30s", // per call
}`

func TestParse(t *testing.T) {
	t.Run("with comments and trailing commas", func(t *testing.T) {
		c, err := Parse([]byte(sampleConfig))
		if err != nil {
			t.Fatal(err)
		}
		expect := &Config{
			AccountToken: "account-token",
			BaseURL:      "http://127.0.0.1:8080/",
			ServerToken:  "server-token",
			Timeout:      Duration(30 * time.Second),
		}
		if diff := cmp.Diff(expect, c); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with an invalid timeout", func(t *testing.T) {
		if _, err := Parse([]byte(`{"timeout": 30}`)); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("with invalid JSON", func(t *testing.T) {
		if _, err := Parse([]byte(`{`)); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestDuration(t *testing.T) {
	data, err := Duration(90 * time.Second).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1m30s"` {
		t.Fatal("unexpected JSON", string(data))
	}
	var d Duration
	if err := d.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Fatal("unexpected duration", time.Duration(d))
	}
}

func TestLoad(t *testing.T) {
	t.Run("the environment overrides the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("POSTMARK_SERVER_TOKEN", "env-token")
		t.Setenv("POSTMARK_TIMEOUT", "5s")

		c, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		expect := &Config{
			AccountToken: "account-token",
			BaseURL:      "http://127.0.0.1:8080/",
			ServerToken:  "env-token",
			Timeout:      Duration(5 * time.Second),
		}
		if diff := cmp.Diff(expect, c); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("a missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("a missing default file is fine", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("POSTMARK_ACCOUNT_TOKEN", "from-env")
		c, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(&Config{AccountToken: "from-env"}, c); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("an invalid environment value is an error", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("POSTMARK_TIMEOUT", "soon")
		if _, err := Load(""); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestValidate(t *testing.T) {
	type testcase struct {
		name   string
		config *Config
		expect error
		fails  bool
	}

	cases := []testcase{{
		name:   "with the zero value",
		config: &Config{},
	}, {
		name:   "with a valid base URL and socks5 proxy",
		config: &Config{BaseURL: "https://api.example.com/", ProxyURL: "socks5://127.0.0.1:9050"},
	}, {
		name:   "with a relative base URL",
		config: &Config{BaseURL: "/api"},
		expect: ErrInvalidBaseURL,
		fails:  true,
	}, {
		name:   "with an ftp base URL",
		config: &Config{BaseURL: "ftp://example.com/"},
		expect: ErrInvalidBaseURL,
		fails:  true,
	}, {
		name:   "with an unparsable base URL",
		config: &Config{BaseURL: "\t"},
		fails:  true,
	}, {
		name:   "with an unsupported proxy",
		config: &Config{ProxyURL: "ftp://127.0.0.1:21"},
		expect: netxlite.ErrProxyUnsupportedScheme,
		fails:  true,
	}, {
		name:   "with a negative timeout",
		config: &Config{Timeout: Duration(-time.Second)},
		fails:  true,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if (err != nil) != tc.fails {
				t.Fatal("unexpected error", err)
			}
			if tc.expect != nil && !errors.Is(err, tc.expect) {
				t.Fatal("expected", tc.expect, "got", err)
			}
		})
	}
}

func TestNewTransport(t *testing.T) {
	t.Run("with a complete config", func(t *testing.T) {
		c := &Config{
			AccountToken: "account-token",
			BaseURL:      "http://127.0.0.1:8080/",
			ProxyURL:     "http://127.0.0.1:3128",
			ServerToken:  "server-token",
			Timeout:      Duration(10 * time.Second),
			UserAgent:    "custom/1.0",
		}
		txp, err := c.NewTransport(nil)
		if err != nil {
			t.Fatal(err)
		}
		if txp.ServerToken != "server-token" || txp.AccountToken != "account-token" {
			t.Fatal("unexpected tokens")
		}
		if txp.BaseURL != "http://127.0.0.1:8080/" || txp.UserAgent != "custom/1.0" {
			t.Fatal("unexpected base URL or user agent")
		}
		if txp.Client == nil || txp.Logger == nil {
			t.Fatal("expected a client and a logger")
		}
	})

	t.Run("with the zero value", func(t *testing.T) {
		txp, err := (&Config{}).NewTransport(nil)
		if err != nil {
			t.Fatal(err)
		}
		if txp.BaseURL != postmark.DefaultBaseURL {
			t.Fatal("unexpected base URL", txp.BaseURL)
		}
	})

	t.Run("with an invalid config", func(t *testing.T) {
		if _, err := (&Config{ProxyURL: "ftp://x"}).NewTransport(nil); err == nil {
			t.Fatal("expected an error")
		}
	})
}
