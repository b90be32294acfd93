package utils

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application configuration
	AppPort          string `yaml:"APP_PORT"`
	AppURL           string `yaml:"APP_URL"`
	CORSAllowOrigins string `yaml:"CORS_ALLOW_ORIGINS"`
	CookieSecure     bool   `yaml:"COOKIE_SECURE"`
	LogFile          string `yaml:"LOG_FILE"`
	RateLimitMax     string `yaml:"RATE_LIMIT_MAX"`
	RateLimitWindow  string `yaml:"RATE_LIMIT_WINDOW"`

	// Database configuration
	DBDriver       string `yaml:"DB_DRIVER"`
	DBUser         string `yaml:"DB_USER"`
	DBName         string `yaml:"DB_NAME"`
	DBPassword     string `yaml:"DB_PASSWORD"`
	DBPort         string `yaml:"DB_PORT"`
	DBHost         string `yaml:"DB_HOST"`
	DBSQLitePath   string `yaml:"DB_SQLITE_PATH"`
	DBMaxOpenConns string `yaml:"DB_MAX_OPEN_CONNS"`

	// JWT configuration
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTTTL    string `yaml:"JWT_TTL"`

	// Recipe provider configuration
	FatSecretClientID     string `yaml:"FATSECRET_CLIENT_ID"`
	FatSecretClientSecret string `yaml:"FATSECRET_CLIENT_SECRET"`
	FatSecretTokenURL     string `yaml:"FATSECRET_TOKEN_URL"`
	FatSecretAPIURL       string `yaml:"FATSECRET_API_URL"`
	FatSecretTimeout      string `yaml:"FATSECRET_TIMEOUT"`
	FatSecretMaxRetries   string `yaml:"FATSECRET_MAX_RETRIES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
)

var defaults = map[string]string{
	"APP_PORT":              "8080",
	"APP_URL":               "http://localhost:3000",
	"CORS_ALLOW_ORIGINS":    "http://localhost:3000",
	"LOG_FILE":              "./logs/app.log",
	"RATE_LIMIT_MAX":        "100",
	"RATE_LIMIT_WINDOW":     "1m",
	"DB_DRIVER":             "postgres",
	"DB_PORT":               "5432",
	"DB_SQLITE_PATH":        "./data/meal-planner.db",
	"DB_MAX_OPEN_CONNS":     "20",
	"JWT_TTL":               "2h",
	"FATSECRET_TOKEN_URL":   "https://oauth.fatsecret.com/connect/token",
	"FATSECRET_API_URL":     "https://platform.fatsecret.com/rest",
	"FATSECRET_TIMEOUT":     "10s",
	"FATSECRET_MAX_RETRIES": "2",
}

// LoadConfig reads config.yaml, then .env, then lets process environment override any key.
// It runs once; later calls are no-ops.
func LoadConfig() {
	configOnce.Do(func() {
		file, err := os.ReadFile("config.yaml")
		if err != nil {
			log.Warnw("config.yaml not loaded", "error", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Errorw("config.yaml could not be parsed", "error", err)
		}

		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warnw(".env not loaded", "error", err)
		}
	})
}

func fromFile(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "CORS_ALLOW_ORIGINS":
		return config.CORSAllowOrigins
	case "COOKIE_SECURE":
		if config.CookieSecure {
			return "true"
		}
		return ""
	case "LOG_FILE":
		return config.LogFile
	case "RATE_LIMIT_MAX":
		return config.RateLimitMax
	case "RATE_LIMIT_WINDOW":
		return config.RateLimitWindow
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_SQLITE_PATH":
		return config.DBSQLitePath
	case "DB_MAX_OPEN_CONNS":
		return config.DBMaxOpenConns
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL":
		return config.JWTTTL
	case "FATSECRET_CLIENT_ID":
		return config.FatSecretClientID
	case "FATSECRET_CLIENT_SECRET":
		return config.FatSecretClientSecret
	case "FATSECRET_TOKEN_URL":
		return config.FatSecretTokenURL
	case "FATSECRET_API_URL":
		return config.FatSecretAPIURL
	case "FATSECRET_TIMEOUT":
		return config.FatSecretTimeout
	case "FATSECRET_MAX_RETRIES":
		return config.FatSecretMaxRetries
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfig resolves key from the environment, then config.yaml, then the built-in default.
func GetConfig(key string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	if value := fromFile(key); value != "" {
		return value
	}
	return defaults[key]
}

func GetConfigInt(key string) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		fallback, _ := strconv.Atoi(defaults[key])
		return fallback
	}
	return value
}

func GetConfigDuration(key string) time.Duration {
	value, err := time.ParseDuration(GetConfig(key))
	if err != nil {
		fallback, _ := time.ParseDuration(defaults[key])
		return fallback
	}
	return value
}

func GetConfigBool(key string) bool {
	value, err := strconv.ParseBool(GetConfig(key))
	return err == nil && value
}
