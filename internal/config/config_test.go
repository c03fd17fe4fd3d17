package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("INDEXDECK_SERVER", "")
	t.Setenv("INDEXDECK_TOKEN", "")
	t.Setenv("INDEXDECK_CATALOG", "")

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.URL != DefaultServerURL {
		t.Errorf("expected default server URL, got %q", cfg.Server.URL)
	}
	if cfg.Catalog.Path != filepath.Join(dir, "indexdeck", "catalog.db") {
		t.Errorf("unexpected catalog path %q", cfg.Catalog.Path)
	}
	if cfg.Server.Timeout() != DefaultRequestTimeout*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Server.Timeout())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
url = "https://deck.example/ "
token = "secret"
request_timeout = 5

[catalog]
path = "` + filepath.Join(dir, "cat.db") + `"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INDEXDECK_SERVER", "")
	t.Setenv("INDEXDECK_TOKEN", "from-env")
	t.Setenv("INDEXDECK_CATALOG", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.URL != "https://deck.example" {
		t.Errorf("expected trimmed URL, got %q", cfg.Server.URL)
	}
	if cfg.Server.Token != "from-env" {
		t.Errorf("expected env token override, got %q", cfg.Server.Token)
	}
	if cfg.Server.Timeout() != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Server.Timeout())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "relative server url",
			content: "[server]\nurl = \"deck.local\"\n",
			errMsg:  "absolute URL",
		},
		{
			name:    "bad scheme",
			content: "[server]\nurl = \"ftp://deck.local\"\n",
			errMsg:  "http or https",
		},
		{
			name:    "bad log level",
			content: "[logging]\nlevel = \"chatty\"\n",
			errMsg:  "logging.level",
		},
		{
			name:    "malformed toml",
			content: "[server\n",
			errMsg:  "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("XDG_DATA_HOME", dir)
			t.Setenv("INDEXDECK_SERVER", "")
			path := filepath.Join(dir, "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestWriteSample(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INDEXDECK_SERVER", "")
	path := filepath.Join(dir, "nested", "config.toml")

	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Error("expected refusal to overwrite")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
	if cfg.Server.URL != DefaultServerURL {
		t.Errorf("unexpected server URL %q", cfg.Server.URL)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/deck/catalog.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "deck", "catalog.db") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got, _ := ExpandPath(""); got != "" {
		t.Errorf("expected empty path unchanged, got %q", got)
	}
}
