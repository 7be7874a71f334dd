package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Overlap policy names accepted in OVERLAP_POLICY. The existence policy
// is the production default; the window policy keeps the legacy
// date-window reconciliation available for compatibility testing.
const (
	OverlapPolicyExistence = "existence"
	OverlapPolicyWindow    = "window"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Strings for identifiers and paths, ints
// for costs and durations.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	DBMaxOpenConns   int    // connection pool: max open connections
	DBMaxIdleConns   int    // connection pool: max idle connections
	DBConnMaxLifeMin int    // connection pool: max connection lifetime in minutes
	BcryptCost       int    // bcrypt cost for password hashing
	SessionTTLMin    int    // session lifetime in minutes
	OverlapPolicy    string // "existence" or "window"
	FeedbackDir      string // directory holding the per-day feedback files
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must(); missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		DBMaxOpenConns:   envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifeMin: envInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		BcryptCost:       mustInt("BCRYPT_COST"),
		SessionTTLMin:    mustInt("SESSION_TTL_MIN"),
		OverlapPolicy:    getenv("OVERLAP_POLICY", OverlapPolicyExistence),
		FeedbackDir:      getenv("FEEDBACK_DIR", "feedback"),
	}
	if cfg.OverlapPolicy != OverlapPolicyExistence && cfg.OverlapPolicy != OverlapPolicyWindow {
		log.Fatalf("invalid OVERLAP_POLICY: %q", cfg.OverlapPolicy)
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
