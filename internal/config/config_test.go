package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ingest.Schema != SchemaJustJoin {
		t.Errorf("Schema = %q, want %q", cfg.Ingest.Schema, SchemaJustJoin)
	}
	if cfg.Ingest.MaxBatchBytes != 4*1024*1024 {
		t.Errorf("MaxBatchBytes = %d, want 4 MiB", cfg.Ingest.MaxBatchBytes)
	}
	if cfg.Analytics.TopSkills != 20 || cfg.Analytics.Granularity != "month" {
		t.Errorf("analytics defaults = %+v", cfg.Analytics)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis cache enabled by default, want disabled")
	}
	if cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.Redis.CacheTTL)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
ingest:
  schema: api
  max_rejection_reasons: 3
analytics:
  top_skills: 10
  granularity: day
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Ingest.Schema != SchemaAPI {
		t.Errorf("Schema = %q, want %q", cfg.Ingest.Schema, SchemaAPI)
	}
	if cfg.Ingest.MaxRejectionReasons != 3 {
		t.Errorf("MaxRejectionReasons = %d, want 3", cfg.Ingest.MaxRejectionReasons)
	}
	if cfg.Analytics.TopSkills != 10 || cfg.Analytics.Granularity != "day" {
		t.Errorf("analytics = %+v", cfg.Analytics)
	}
	// Untouched sections keep their defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("INGEST_SCHEMA", SchemaAPI)
	t.Setenv("ANALYTICS_TOP_SKILLS", "7")
	t.Setenv("REDIS_CACHE_ENABLED", "true")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Ingest.Schema != SchemaAPI {
		t.Errorf("Schema = %q, want %q", cfg.Ingest.Schema, SchemaAPI)
	}
	if cfg.Analytics.TopSkills != 7 {
		t.Errorf("TopSkills = %d, want 7", cfg.Analytics.TopSkills)
	}
	if !cfg.Redis.Enabled {
		t.Error("Redis cache not enabled by REDIS_CACHE_ENABLED")
	}
}

func TestLoadConfig_RejectsUnknownSchema(t *testing.T) {
	t.Setenv("INGEST_SCHEMA", "linkedin")

	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig() = nil error for unknown ingest schema")
	}
}

func TestLoadConfig_ExpandsEnvVarsInYAML(t *testing.T) {
	t.Setenv("TEST_REDIS_URL", "redis://cache.internal:6379")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "redis:\n  url: ${TEST_REDIS_URL}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Redis.URL != "redis://cache.internal:6379" {
		t.Errorf("Redis.URL = %q, want expanded value", cfg.Redis.URL)
	}
}
