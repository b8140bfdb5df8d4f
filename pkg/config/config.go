package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcriber and sentiment providers
const (
	TranscriberWhisper    = "whisper"
	TranscriberAssemblyAI = "assemblyai"

	SentimentHTTP = "http"
	SentimentGroq = "groq"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Upload      UploadConfig
	Transcriber TranscriberConfig
	Sentiment   SentimentConfig
	Assembly    AssemblyAIConfig
	Groq        GroqConfig
	Metrics     MetricsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string
	File       string // optional, rotated with lumberjack when set
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// UploadConfig bounds audio uploads
type UploadConfig struct {
	MaxSize    string // echo body-limit notation, e.g. "50M"
	TempDir    string
	Extensions []string
}

// TranscriberConfig selects and configures the ASR provider
type TranscriberConfig struct {
	Provider   string
	WhisperURL string
	Timeout    time.Duration
	MaxRetry   time.Duration
}

// SentimentConfig selects and configures the sentiment classifier
type SentimentConfig struct {
	Provider    string
	URL         string
	MaxChars    int
	Concurrency int
	Timeout     time.Duration
	MaxRetry    time.Duration
}

// AssemblyAIConfig holds AssemblyAI credentials
type AssemblyAIConfig struct {
	APIKey       string
	LanguageCode string
}

// GroqConfig holds Groq credentials
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// MetricsConfig holds the heuristic thresholds of the metrics engine.
// Read with envconfig under the CALL prefix, e.g. CALL_GAP_THRESHOLD.
type MetricsConfig struct {
	GapThreshold       float64 `envconfig:"GAP_THRESHOLD" default:"0.8"`
	DominanceThreshold float64 `envconfig:"DOMINANCE_THRESHOLD" default:"0.7"`
	MinQuestions       int     `envconfig:"MIN_QUESTIONS" default:"3"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
		},
		Database: DatabaseConfig{
			Enabled:     getEnvAsBool("DB_ENABLED", false),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "call_analyzer"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("REDIS_TTL", "24h"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "call-audio"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Upload: UploadConfig{
			MaxSize:    getEnv("UPLOAD_MAX_SIZE", "50M"),
			TempDir:    getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
			Extensions: getEnvAsSlice("UPLOAD_EXTENSIONS", []string{".wav", ".mp3", ".m4a"}),
		},
		Transcriber: TranscriberConfig{
			Provider:   getEnv("TRANSCRIBER_PROVIDER", TranscriberWhisper),
			WhisperURL: getEnv("WHISPER_URL", "http://localhost:9001"),
			Timeout:    getEnvAsDuration("TRANSCRIBER_TIMEOUT", "5m"),
			MaxRetry:   getEnvAsDuration("TRANSCRIBER_MAX_RETRY", "30s"),
		},
		Sentiment: SentimentConfig{
			Provider:    getEnv("SENTIMENT_PROVIDER", SentimentHTTP),
			URL:         getEnv("SENTIMENT_URL", "http://localhost:9002"),
			MaxChars:    getEnvAsInt("SENTIMENT_MAX_CHARS", 512),
			Concurrency: getEnvAsInt("SENTIMENT_CONCURRENCY", 4),
			Timeout:     getEnvAsDuration("SENTIMENT_TIMEOUT", "30s"),
			MaxRetry:    getEnvAsDuration("SENTIMENT_MAX_RETRY", "10s"),
		},
		Assembly: AssemblyAIConfig{
			APIKey:       getEnv("ASSEMBLYAI_API_KEY", ""),
			LanguageCode: getEnv("ASSEMBLYAI_LANGUAGE_CODE", "en"),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_API_URL", "https://api.groq.com"),
			Model:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		},
	}

	if err := envconfig.Process("CALL", &config.Metrics); err != nil {
		return nil, fmt.Errorf("failed to read metrics thresholds: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Transcriber.Provider {
	case TranscriberWhisper:
		if c.Transcriber.WhisperURL == "" {
			return fmt.Errorf("WHISPER_URL is required for the whisper transcriber")
		}
	case TranscriberAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required for the assemblyai transcriber")
		}
	default:
		return fmt.Errorf("unknown TRANSCRIBER_PROVIDER %q", c.Transcriber.Provider)
	}

	switch c.Sentiment.Provider {
	case SentimentHTTP:
		if c.Sentiment.URL == "" {
			return fmt.Errorf("SENTIMENT_URL is required for the http sentiment provider")
		}
	case SentimentGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq sentiment provider")
		}
	default:
		return fmt.Errorf("unknown SENTIMENT_PROVIDER %q", c.Sentiment.Provider)
	}

	if c.Metrics.GapThreshold < 0 || c.Metrics.DominanceThreshold <= 0 || c.Metrics.DominanceThreshold > 1 ||
		c.Metrics.MinQuestions < 0 {
		return fmt.Errorf("invalid metrics thresholds: gap=%v dominance=%v min_questions=%d",
			c.Metrics.GapThreshold, c.Metrics.DominanceThreshold, c.Metrics.MinQuestions)
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
