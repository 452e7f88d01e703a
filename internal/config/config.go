package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. JWT_SECRET is required because the server
// cannot issue or verify a single token without it; the Gemini key is
// optional so the planner keeps working when AI features are not set up.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign bearer tokens
	TokenTTLDays  int    // bearer token time-to-live in days
	BcryptCost    int    // bcrypt cost for password hashing
	GeminiAPIKey  string // API key for the Gemini backend; empty fails AI requests only
	GeminiBaseURL string // override for the Gemini endpoint, used in tests

	// OwnerOnlySubresources tightens guest/task mutations to the event
	// owner. Off by default: historically any authenticated user could
	// manage guests and tasks on any event, and clients may rely on it.
	OwnerOnlySubresources bool
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:                   must("APP_ENV"),
		Port:                  must("APP_PORT"),
		DBUser:                must("DB_USER"),
		DBPass:                os.Getenv("DB_PASS"), // empty allowed
		DBHost:                must("DB_HOST"),
		DBPort:                must("DB_PORT"),
		DBName:                must("DB_NAME"),
		JWTSecret:             must("JWT_SECRET"),
		TokenTTLDays:          atoi(getenv("TOKEN_TTL_DAYS", "30")),
		BcryptCost:            mustInt("BCRYPT_COST"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:         os.Getenv("GEMINI_BASE_URL"),
		OwnerOnlySubresources: getenv("OWNER_ONLY_SUBRESOURCES", "false") == "true",
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
