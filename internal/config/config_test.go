package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BLOCKSEARCH_TARGET_LEVEL", "")
	t.Setenv("BLOCKSEARCH_JOB_TTL", "")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "")

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.TargetLevel != 3 {
		t.Errorf("expected default target level 3, got %d", cfg.TargetLevel)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected default job TTL 1h, got %v", cfg.JobTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BLOCKSEARCH_ROOT", "/corpus")
	t.Setenv("BLOCKSEARCH_TARGET_LEVEL", "2")
	t.Setenv("BLOCKSEARCH_INCLUDE_PATH", "true")
	t.Setenv("BLOCKSEARCH_JOB_TTL", "30m")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port: %q", cfg.Port)
	}
	if cfg.SearchRoot != "/corpus" {
		t.Errorf("root: %q", cfg.SearchRoot)
	}
	if cfg.TargetLevel != 2 {
		t.Errorf("target level: %d", cfg.TargetLevel)
	}
	if !cfg.IncludePath {
		t.Error("include path not set")
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("job ttl: %v", cfg.JobTTL)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BLOCKSEARCH_TARGET_LEVEL", "zero")
	t.Setenv("BLOCKSEARCH_JOB_TTL", "sometimes")

	cfg := Load()
	if cfg.TargetLevel != 3 {
		t.Errorf("expected fallback target level 3, got %d", cfg.TargetLevel)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected fallback TTL 1h, got %v", cfg.JobTTL)
	}
}

func TestLoad_NonPositiveTargetClamped(t *testing.T) {
	t.Setenv("BLOCKSEARCH_TARGET_LEVEL", "-1")
	cfg := Load()
	if cfg.TargetLevel != 3 {
		t.Errorf("expected clamp to 3, got %d", cfg.TargetLevel)
	}
}

func TestValidate_RequiresRoot(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty search root")
	}
	cfg.SearchRoot = "."
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TemplateMustExist(t *testing.T) {
	cfg := Config{SearchRoot: ".", TemplatePath: "/no/such/template.bdoc"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing template")
	}
}
