package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds environment driven configuration values.
// Secrets have no defaults in code and must come from config.json, .env or the environment.
type AppConfig struct {
	AppPort            string   `json:"AppPort"`
	GinMode            string   `json:"GinMode"`
	GinPath            string   `json:"GinPath"`
	AllowedOrigins     []string `json:"AllowedOrigins"`
	RateLimitPerMinute int      `json:"RateLimitPerMinute"`

	// Record store
	DBDriver    string `json:"DBDriver"`
	DatabaseURI string `json:"DatabaseURI"`
	DBHost      string `json:"DBHost"`
	DBPort      string `json:"DBPort"`
	DBUser      string `json:"DBUser"`
	DBPassword  string `json:"DBPassword"`
	DBName      string `json:"DBName"`

	// Storage sink. Remote storage needs URL, both keys and bucket.
	StorageURL           string `json:"StorageURL"`
	StorageAccessKey     string `json:"StorageAccessKey"`
	StorageSecretKey     string `json:"StorageSecretKey"`
	StorageBucket        string `json:"StorageBucket"`
	StoragePublicURL     string `json:"StoragePublicURL"`
	UploadDir            string `json:"UploadDir"`
	CleanupOrphanedMedia bool   `json:"CleanupOrphanedMedia"`

	// Access gate
	AdminSecretKey string `json:"AdminSecretKey"`

	// Redis list cache, disabled when RedisHost is empty
	RedisHost        string `json:"RedisHost"`
	RedisPort        int    `json:"RedisPort"`
	RedisDB          int    `json:"RedisDB"`
	RedisPassword    string `json:"RedisPassword"`
	ListCacheSeconds int    `json:"ListCacheSeconds"`

	// Logging configuration
	LogLevel      string `json:"LogLevel"`
	LogPath       string `json:"LogPath"`
	LogMaxSizeMB  int    `json:"LogMaxSizeMB"`
	LogMaxBackups int    `json:"LogMaxBackups"`
	LogMaxAgeDays int    `json:"LogMaxAgeDays"`
	LogCompress   bool   `json:"LogCompress"`
}

// RemoteStorageEnabled reports whether every bucket setting is present.
func (c AppConfig) RemoteStorageEnabled() bool {
	return c.StorageURL != "" && c.StorageAccessKey != "" && c.StorageSecretKey != "" && c.StorageBucket != ""
}

// Load reads configuration once during boot.
// Precedence: config/config.json -> defaults -> .env -> environment variables.
func Load() (AppConfig, error) {
	return LoadFrom(filepath.Join("config", "config.json"))
}

// LoadFrom is Load with an explicit JSON path. A missing file is not an error.
func LoadFrom(path string) (AppConfig, error) {
	var cfg AppConfig
	if err := loadJSONConfig(path, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)

	// .env only fills variables that are not already exported
	_ = godotenv.Load()
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// loadJSONConfig reads JSON file into cfg if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return json.Unmarshal(b, out)
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/gin.log"
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 30
	}
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBUser == "" {
		c.DBUser = "postgres"
	}
	if c.DBName == "" {
		c.DBName = "civicreport"
	}
	if c.UploadDir == "" {
		c.UploadDir = filepath.Join("public", "uploads")
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.ListCacheSeconds == 0 {
		c.ListCacheSeconds = 60
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/app.log"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) {
	setString(&c.AppPort, "APP_PORT")
	setString(&c.GinMode, "GIN_MODE")
	setString(&c.GinPath, "GIN_PATH")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	setInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")

	setString(&c.DBDriver, "DB_DRIVER")
	setString(&c.DatabaseURI, "DATABASE_URI")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")

	setString(&c.StorageURL, "STORAGE_URL")
	setString(&c.StorageAccessKey, "STORAGE_ACCESS_KEY")
	setString(&c.StorageSecretKey, "STORAGE_SECRET_KEY")
	setString(&c.StorageBucket, "STORAGE_BUCKET")
	setString(&c.StoragePublicURL, "STORAGE_PUBLIC_URL")
	setString(&c.UploadDir, "UPLOAD_DIR")
	setBool(&c.CleanupOrphanedMedia, "CLEANUP_ORPHANED_MEDIA")

	setString(&c.AdminSecretKey, "ADMIN_SECRET_KEY")

	setString(&c.RedisHost, "REDIS_HOST")
	setInt(&c.RedisPort, "REDIS_PORT")
	setInt(&c.RedisDB, "REDIS_DB")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.ListCacheSeconds, "LIST_CACHE_SECONDS")

	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogPath, "LOG_PATH")
	setInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	setInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	setInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	setBool(&c.LogCompress, "LOG_COMPRESS")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// setInt ignores values that do not parse.
func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
