package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.MailTo != "skadi@asu.edu" {
		t.Errorf("expected default mail_to, got %q", cfg.MailTo)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.AdminEnabled() {
		t.Error("admin should be disabled without credentials")
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	data := []byte("port: 9000\nmail_to: hello@example.com\nwatch_content: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORTFOLIO_RESUME_NAME", "cv.pdf")
	t.Setenv("PORT", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("port: got %d, want 9000", cfg.Port)
	}
	if cfg.MailTo != "hello@example.com" {
		t.Errorf("mail_to: got %q", cfg.MailTo)
	}
	if !cfg.WatchContent {
		t.Error("watch_content should be true")
	}
	if cfg.ResumeName != "cv.pdf" {
		t.Errorf("resume_name: got %q, want cv.pdf", cfg.ResumeName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.ResumeName != Default().ResumeName {
		t.Errorf("expected default resume name, got %q", cfg.ResumeName)
	}
}

func TestLoadPortVariable(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("addr: got %q, want :3000", cfg.Addr())
	}

	t.Setenv("PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Port = 70000 }, true},
		{"bad mode", func(c *Config) { c.Mode = "prod" }, true},
		{"bad mail", func(c *Config) { c.MailTo = "not an address" }, true},
		{"no resume name", func(c *Config) { c.ResumeName = "" }, true},
		{"password without user", func(c *Config) { c.AdminPassword = "x" }, true},
		{"admin pair", func(c *Config) { c.AdminUsername = "a"; c.AdminPassword = "b" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
