package config

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr               string
	DB                 DatabaseConfig
	SessionKey         []byte
	CookieSecure       bool
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Driver string
	// Path is the sqlite database file.
	Path string
	// URL, when set, is used as the postgres DSN as is.
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := Config{
		Addr:               getEnv("ADDR", ":8080"),
		DB:                 LoadDatabaseConfig(),
		CookieSecure:       getBool("COOKIE_SECURE", false),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	key, err := sessionKey(getEnv("SESSION_KEY", ""))
	if err != nil {
		return Config{}, err
	}
	cfg.SessionKey = key

	if err := cfg.DB.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", DriverSQLite),
		Path:     getEnv("DB_PATH", "quiz.db"),
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "quizhub"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("config: DB_PATH is required for %s", DriverSQLite)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Driver)
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		if c.URL != "" {
			return c.URL
		}
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
}

func sessionKey(raw string) ([]byte, error) {
	if raw == "" {
		log.Println("config: SESSION_KEY is empty, sessions will not survive a restart")
		return securecookie.GenerateRandomKey(32), nil
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("config: SESSION_KEY must be hex encoded: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("config: SESSION_KEY must be at least 32 bytes, got %d", len(key))
	}
	return key, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
