package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.AppPort != "8080" || cfg.DBDriver != "postgres" || cfg.RateLimitPerMinute != 30 {
		t.Fatalf("defaults = port %q driver %q rate %d", cfg.AppPort, cfg.DBDriver, cfg.RateLimitPerMinute)
	}
	if cfg.UploadDir != filepath.Join("public", "uploads") {
		t.Fatalf("UploadDir = %q", cfg.UploadDir)
	}
	if cfg.AdminSecretKey != "" {
		t.Fatalf("AdminSecretKey has a default: %q", cfg.AdminSecretKey)
	}
	if cfg.RemoteStorageEnabled() {
		t.Fatalf("remote storage enabled without settings")
	}
}

func TestLoadFromPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"AppPort":"9000","DBDriver":"mysql","AdminSecretKey":"from-json","AllowedOrigins":["https://a.example"]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ADMIN_SECRET_KEY", "from-env")
	t.Setenv("ALLOWED_ORIGINS", " https://b.example, ,https://c.example ")
	t.Setenv("CLEANUP_ORPHANED_MEDIA", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("STORAGE_URL", "https://storage.example.com")
	t.Setenv("STORAGE_ACCESS_KEY", "ak")
	t.Setenv("STORAGE_SECRET_KEY", "sk")
	t.Setenv("STORAGE_BUCKET", "media")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.AppPort != "9000" || cfg.DBDriver != "mysql" {
		t.Fatalf("json values lost: port %q driver %q", cfg.AppPort, cfg.DBDriver)
	}
	if cfg.AdminSecretKey != "from-env" {
		t.Fatalf("AdminSecretKey = %q, want env override", cfg.AdminSecretKey)
	}
	if want := []string{"https://b.example", "https://c.example"}; !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.CleanupOrphanedMedia {
		t.Fatalf("CleanupOrphanedMedia not applied")
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Fatalf("RateLimitPerMinute = %d, want default kept", cfg.RateLimitPerMinute)
	}
	if !cfg.RemoteStorageEnabled() {
		t.Fatalf("remote storage disabled with every setting present")
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("LoadFrom() accepted invalid JSON")
	}
}

func TestInitDatabaseSQLite(t *testing.T) {
	cfg := AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "nested", "app.sqlite"),
		LogLevel:    "silent",
	}
	type probe struct {
		ID   uint
		Name string
	}
	db, err := InitDatabase(cfg, &probe{})
	if err != nil {
		t.Fatalf("InitDatabase() error = %v", err)
	}
	if !db.Migrator().HasTable(&probe{}) {
		t.Fatalf("probe table not migrated")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func TestInitDatabaseUnknownDriver(t *testing.T) {
	if _, err := InitDatabase(AppConfig{DBDriver: "oracle"}); err == nil {
		t.Fatalf("InitDatabase() accepted unknown driver")
	}
}
