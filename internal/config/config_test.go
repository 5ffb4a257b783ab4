package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "barcoder.yaml")
	content := "api_url: https://codes.example.edu/api\ntimeout: 5s\nport: \"9000\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "https://codes.example.edu/api" {
		t.Errorf("Expected file api_url, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}

	t.Setenv(EnvAPIURL, "http://10.0.0.5:8000/api")
	t.Setenv(EnvTimeout, "2s")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:8000/api" {
		t.Errorf("Expected env api url, got %s", cfg.APIURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Expected 2s timeout, got %s", cfg.Timeout)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvTimeout, "")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}

	t.Setenv(EnvTimeout, "soon")
	if _, err := Load(""); err == nil {
		t.Error("Expected an error for an invalid timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Default()},
		{name: "https", cfg: Config{APIURL: "https://svc.example.edu/api", Timeout: time.Second}},
		{name: "empty", cfg: Config{Timeout: time.Second}, wantErr: true},
		{name: "relative", cfg: Config{APIURL: "/api", Timeout: time.Second}, wantErr: true},
		{name: "ftp", cfg: Config{APIURL: "ftp://svc/api", Timeout: time.Second}, wantErr: true},
		{name: "zero timeout", cfg: Config{APIURL: DefaultAPIURL}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
