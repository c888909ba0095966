package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
service_name = "snowball-pricing"

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/test"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http port = %d, want default 8080", cfg.HTTP.Port)
	}
	if cfg.Pricing.DefaultSimulations != 10000 {
		t.Fatalf("default simulations = %d, want 10000", cfg.Pricing.DefaultSimulations)
	}
	if cfg.Pricing.MaxSimulations != 1000000 {
		t.Fatalf("max simulations = %d, want 1000000", cfg.Pricing.MaxSimulations)
	}
	if cfg.Kafka.Topic != "pricing-events" {
		t.Fatalf("kafka topic = %q, want pricing-events", cfg.Kafka.Topic)
	}
	if cfg.Environment != "dev" {
		t.Fatalf("environment = %q, want dev", cfg.Environment)
	}
}

func TestLoadRejectsMissingServiceName(t *testing.T) {
	path := writeConfig(t, `
[database]
dsn = "root:root@tcp(127.0.0.1:3306)/test"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing service_name")
	}
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	path := writeConfig(t, `
service_name = "snowball-pricing"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing database DSN")
	}
}

func TestLoadRejectsInconsistentSimulationLimits(t *testing.T) {
	path := writeConfig(t, `
service_name = "snowball-pricing"

[database]
dsn = "root:root@tcp(127.0.0.1:3306)/test"

[pricing]
default_simulations = 5000
max_simulations = 1000
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for default_simulations > max_simulations")
	}
}
