package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	OCR     OCRConfig
	Extract ExtractConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// FetchConfig holds settings for downloading remote documents.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OCRConfig holds tesseract settings.
type OCRConfig struct {
	Tesseract     string `mapstructure:"tesseract"`
	Language      string `mapstructure:"language"`
	TessdataDir   string `mapstructure:"tessdata_dir"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
}

// ExtractConfig holds text extraction settings.
type ExtractConfig struct {
	WrapWidth int `mapstructure:"wrap_width"`
}

// S3Config holds AWS S3 settings used for s3:// document references.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the POEXTRACT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Fetch defaults
	v.SetDefault("fetch.timeout", "60s")
	v.SetDefault("fetch.user_agent", "poextract/1.0")

	// OCR defaults
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.max_concurrent", 2)

	v.SetDefault("extract.wrap_width", 120)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "POEXTRACT_SERVER_PORT",
		"server.read_timeout":  "POEXTRACT_SERVER_READ_TIMEOUT",
		"server.write_timeout": "POEXTRACT_SERVER_WRITE_TIMEOUT",
		"server.environment":   "POEXTRACT_SERVER_ENVIRONMENT",
		"fetch.timeout":        "POEXTRACT_FETCH_TIMEOUT",
		"fetch.user_agent":     "POEXTRACT_FETCH_USER_AGENT",
		"ocr.tesseract":        "POEXTRACT_OCR_TESSERACT",
		"ocr.language":         "POEXTRACT_OCR_LANGUAGE",
		"ocr.tessdata_dir":     "POEXTRACT_OCR_TESSDATA_DIR",
		"ocr.max_concurrent":   "POEXTRACT_OCR_MAX_CONCURRENT",
		"extract.wrap_width":   "POEXTRACT_EXTRACT_WRAP_WIDTH",
		"s3.region":            "POEXTRACT_S3_REGION",
		"s3.endpoint":          "POEXTRACT_S3_ENDPOINT",
		"s3.access_key":        "POEXTRACT_S3_ACCESS_KEY",
		"s3.secret_key":        "POEXTRACT_S3_SECRET_KEY",
		"log.level":            "POEXTRACT_LOG_LEVEL",
		"log.format":           "POEXTRACT_LOG_FORMAT",
		"cors.allowed_origins": "POEXTRACT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a bare PORT env var. Use it unless POEXTRACT_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("POEXTRACT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Fetch = FetchConfig{
		Timeout:   v.GetDuration("fetch.timeout"),
		UserAgent: v.GetString("fetch.user_agent"),
	}
	cfg.OCR = OCRConfig{
		Tesseract:     v.GetString("ocr.tesseract"),
		Language:      v.GetString("ocr.language"),
		TessdataDir:   v.GetString("ocr.tessdata_dir"),
		MaxConcurrent: v.GetInt("ocr.max_concurrent"),
	}
	cfg.Extract = ExtractConfig{
		WrapWidth: v.GetInt("extract.wrap_width"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in the production environment.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}
