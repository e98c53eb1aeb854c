package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables at startup. Components receive the sub-struct they need through
// their constructors; nothing reads the process environment after Load.
type Config struct {
	Port string
	Env  string

	DB         DatabaseConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Catalog    CatalogConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters for the product cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CloudinaryConfig contains CDN credentials. URL takes precedence; otherwise
// the individual credentials are used.
type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string

	// UploadFolder is the bucket-level folder all product uploads live under.
	UploadFolder string
}

// CatalogConfig contains catalog pipeline options: where static pages are
// written and the default delivery-time transformation sizes.
type CatalogConfig struct {
	StaticPagesDir string
	SiteName       string

	MainImageWidth  int
	MainImageHeight int
	ThumbWidth      int
	ThumbHeight     int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it is loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that
	// production environments relying solely on real environment variables
	// keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3000")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Cloudinary
	cfg.Cloudinary = CloudinaryConfig{
		URL:          getEnv("CLOUDINARY_URL", ""),
		CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "plwg-creative-apparel/products"),
	}

	// Catalog pipeline
	cfg.Catalog = CatalogConfig{
		StaticPagesDir:  getEnv("STATIC_PAGES_DIR", "pages/products"),
		SiteName:        getEnv("SITE_NAME", "PlwgsCreativeApparel"),
		MainImageWidth:  getEnvInt("MAIN_IMAGE_WIDTH", 800),
		MainImageHeight: getEnvInt("MAIN_IMAGE_HEIGHT", 800),
		ThumbWidth:      getEnvInt("THUMB_WIDTH", 300),
		ThumbHeight:     getEnvInt("THUMB_HEIGHT", 120),
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.Catalog.MainImageWidth <= 0 || cfg.Catalog.MainImageHeight <= 0 ||
		cfg.Catalog.ThumbWidth <= 0 || cfg.Catalog.ThumbHeight <= 0 {
		return nil, fmt.Errorf("image transformation sizes must be positive")
	}

	return cfg, nil
}

// Configured reports whether CDN credentials are present; when they are not,
// uploads are skipped and products keep their inline placeholders.
func (c *CloudinaryConfig) Configured() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a
// default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
