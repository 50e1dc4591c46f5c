package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. It is built once in main and passed
// by reference to the components that need it; nothing mutates it afterwards.
type Config struct {
	AppName string
	Port    string

	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	JWTCfg      JWTConfig
	UploadCfg   UploadConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
	AICfg       AIConfig

	CORSOrigins []string
	LogLevel    string
	LogFile     string

	AdminEmail    string
	AdminPassword string
}

type PostgresConfig struct {
	DBName   string
	Username string
	Password string
	Host     string
	Port     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	Algorithm     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type UploadConfig struct {
	// Backend is either "local" or "minio".
	Backend     string
	Dir         string
	MaxSize     int64
	AllowedExts []string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Location  string
	Secure    bool
	// ResourceURL is the public base URL objects are served from.
	ResourceURL string
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type AIConfig struct {
	BaseURL string
	Timeout time.Duration
}

func New() *Config {
	// .env is optional; real deployments set everything in the environment.
	_ = godotenv.Load()

	return &Config{
		AppName: getEnv("APP_NAME", "shobarkhamar"),
		Port:    getEnv("PORT", "8000"),
		PostgresCfg: PostgresConfig{
			DBName:   getEnv("DB_NAME", "shobarkhamar"),
			Username: getEnv("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PWD"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWTCfg: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET_KEY"),
			Algorithm:     getEnv("JWT_ALGORITHM", "HS256"),
			AccessExpiry:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
			RefreshExpiry: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRE_DAYS", 7)) * 24 * time.Hour,
		},
		UploadCfg: UploadConfig{
			Backend:     getEnv("STORAGE_BACKEND", "local"),
			Dir:         getEnv("UPLOAD_DIR", "./uploads"),
			MaxSize:     int64(getEnvInt("MAX_UPLOAD_SIZE", 10485760)),
			AllowedExts: splitAndTrim(getEnv("ALLOWED_IMAGE_EXTENSIONS", ".jpg,.jpeg,.png,.gif")),
		},
		MinioCfg: MinioConfig{
			Endpoint:    os.Getenv("MINIO_URL"),
			AccessKey:   os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:   os.Getenv("MINIO_SECRET_KEY"),
			Bucket:      getEnv("MINIO_BUCKET", "diagnosis-images"),
			Location:    getEnv("MINIO_LOCATION", "us-east-1"),
			Secure:      getEnvBool("MINIO_SECURE", false),
			ResourceURL: os.Getenv("MINIO_RESOURCE_URL"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			Username: getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PWD", "guest"),
		},
		AICfg: AIConfig{
			BaseURL: os.Getenv("API_BASE_URL"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT", 30)) * time.Second,
		},
		CORSOrigins:   splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFile:       getEnv("LOG_FILE", "logs/app.log"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
