package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// API auth (optional; empty disables auth)
	APIKey string

	// Search corpus
	SearchRoot  string
	IncludePath bool

	// Splitting defaults
	TargetLevel       int
	OutputDir         string
	TemplatePath      string
	PreserveHierarchy bool
	CreateArchive     bool

	// Settings database
	SettingsDBPath string

	// Split job state
	JobTTL time.Duration

	// PDF import
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BLOCKSEARCH_API_KEY"),

		SearchRoot:  envOr("BLOCKSEARCH_ROOT", "."),
		IncludePath: envBool("BLOCKSEARCH_INCLUDE_PATH", false),

		TargetLevel:       envInt("BLOCKSEARCH_TARGET_LEVEL", 3),
		OutputDir:         envOr("BLOCKSEARCH_OUTPUT_DIR", "sections"),
		TemplatePath:      os.Getenv("BLOCKSEARCH_TEMPLATE"),
		PreserveHierarchy: envBool("BLOCKSEARCH_HIERARCHY", false),
		CreateArchive:     envBool("BLOCKSEARCH_ARCHIVE", false),

		SettingsDBPath: envOr("BLOCKSEARCH_SETTINGS_DB", defaultSettingsPath()),

		JobTTL: envDuration("BLOCKSEARCH_JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.TargetLevel <= 0 {
		cfg.TargetLevel = 3
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.SearchRoot == "" {
		return fmt.Errorf("BLOCKSEARCH_ROOT is required")
	}
	if c.TemplatePath != "" {
		if _, err := os.Stat(c.TemplatePath); err != nil {
			return fmt.Errorf("template document not found: %s", c.TemplatePath)
		}
	}
	return nil
}

func defaultSettingsPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "blocksearch", "settings.db")
	}
	return "blocksearch-settings.db"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
