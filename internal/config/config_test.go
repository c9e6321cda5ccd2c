package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Regions) != 7 {
		t.Errorf("expected 7 regions, got %d", len(cfg.Regions))
	}
	if cfg.Regions[0].ID != "africa" {
		t.Errorf("expected africa first, got %q", cfg.Regions[0].ID)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Server.Port)
	}
	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("expected 120s TTL, got %v", cfg.CacheTTL())
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Errorf("expected 60s refresh, got %v", cfg.RefreshInterval())
	}
	if cfg.Stream.BatchSize != 3 || cfg.StreamInterval() != 30*time.Millisecond {
		t.Errorf("unexpected stream settings: %+v", cfg.Stream)
	}
	if cfg.Fetch.UserAgent != "WorldNews/1.0" {
		t.Errorf("unexpected user agent %q", cfg.Fetch.UserAgent)
	}
}

func TestParseMinimalConfigInheritsRegions(t *testing.T) {
	data := []byte(`
server:
  port: 9000
cache:
  ttl_seconds: 30
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Errorf("expected 30s TTL, got %v", cfg.CacheTTL())
	}
	// Defaults should still be set for unspecified fields
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Errorf("expected default fetch timeout, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if len(cfg.Regions) != 7 {
		t.Errorf("expected default regions to be inherited, got %d", len(cfg.Regions))
	}
}

func TestParseCustomRegions(t *testing.T) {
	data := []byte(`
regions:
  - id: testland
    feeds:
      - name: Test Feed
        url: https://example.com/rss
        logo: TF
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}
	if len(cfg.Regions) != 1 || cfg.Regions[0].ID != "testland" {
		t.Errorf("custom regions should replace defaults, got %+v", cfg.Regions)
	}
	if cfg.Regions[0].Feeds[0].Logo != "TF" {
		t.Errorf("unexpected feed: %+v", cfg.Regions[0].Feeds[0])
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Regions) != 7 {
		t.Errorf("expected 7 regions, got %d", len(cfg.Regions))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSourceRegions(t *testing.T) {
	cfg := Default()
	regions := cfg.SourceRegions()
	if len(regions) != 7 {
		t.Fatalf("expected 7 registry regions, got %d", len(regions))
	}
	if regions[3].ID != "north_america" || len(regions[3].Sources) != 3 {
		t.Errorf("unexpected region entry: %+v", regions[3])
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for explicit missing path")
	}
}
