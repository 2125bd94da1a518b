package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Name: "documents"},
		Services: ServicesConfig{
			Enrichment: ServiceConfig{Host: "localhost", Port: 4222},
			Similarity: ServiceConfig{Host: "localhost", Port: 4223},
			Retrieval:  ServiceConfig{Host: "localhost", Port: 4224},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseName(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Name = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database name")
	}
}

func TestValidate_MissingServiceHost(t *testing.T) {
	cfg := validConfig()
	cfg.Services.Similarity.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing similarity host")
	}

	expected := "services.similarity.host is required"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_InvalidServicePort(t *testing.T) {
	cfg := validConfig()
	cfg.Services.Retrieval.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for out-of-range retrieval port")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("expected Database.Host=127.0.0.1, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected Database.Port=5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.User != "postgres" {
		t.Errorf("expected Database.User=postgres, got %q", cfg.Database.User)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected AllowedOrigins=[*], got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Host: "db.internal", Port: 6432, User: "gateway"},
		CORS:     CORSConfig{AllowedOrigins: []string{"https://app.example.com"}},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected Database.Host=db.internal, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 6432 {
		t.Errorf("expected Database.Port=6432, got %d", cfg.Database.Port)
	}
	if cfg.CORS.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("expected custom origin preserved, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCGATE_TEST_HOST", "db.test")

	tests := []struct {
		input    string
		expected string
	}{
		{"host: ${DOCGATE_TEST_HOST}", "host: db.test"},
		{"host: ${DOCGATE_TEST_UNSET:-fallback}", "host: fallback"},
		{"host: plain", "host: plain"},
	}

	for _, tc := range tests {
		got := string(expandEnvVars([]byte(tc.input)))
		if got != tc.expected {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
