package config // package config loads application configuration from environment variables

import (
	"crypto/rand"  // random fallback signing key
	"encoding/hex" // hex encoding of the fallback key
	"log"          // log is used to report configuration errors and halt execution
	"os"           // os provides access to environment variables
	"time"         // token lifetime

	"github.com/joho/godotenv" // optional .env file support
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Values are resolved once at startup and treated
// as read-only afterwards.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBDriver        string        // "mysql", "sqlite3" or "memory"
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	DBPath          string        // sqlite database file
	JWTSecret       string        // secret used to sign JWTs
	EphemeralSecret bool          // true when JWTSecret was generated at startup
	TokenTTL        time.Duration // access token lifetime
	BcryptCost      int           // bcrypt cost for password hashing
	UploadDir       string        // root directory for generated and uploaded artifacts
	AdminName       string        // seeded admin display name
	AdminEmail      string        // seeded admin email
	AdminPassword   string        // seeded admin password
	LogLevel        string        // zerolog level
	LogFormat       string        // "json" or "console"
	AMQPURL         string        // RabbitMQ URL; empty disables booking events
	BookingLogPath  string        // file the booking event consumer appends to
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when present.
// When neither JWT_SECRET nor SESSION_SECRET is set a random key is generated
// and EphemeralSecret is set; tokens signed with it do not survive a restart.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8000"),
		DBDriver:       getenv("DB_DRIVER", "sqlite3"),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         getenv("DB_HOST", "127.0.0.1"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "booking"),
		DBPath:         getenv("DB_PATH", "booking.db"),
		TokenTTL:       envDur("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		AdminName:      getenv("ADMIN_NAME", "Admin User"),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@booking.com"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "admin123"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
		AMQPURL:        firstEnv("RABBITMQ_URL", "AMQP_URL"),
		BookingLogPath: getenv("BOOKING_LOG_PATH", "logs/booking.log"),
	}

	cfg.JWTSecret = firstEnv("JWT_SECRET", "SESSION_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		cfg.EphemeralSecret = true
	}
	if cfg.DBDriver == "mysql" && cfg.DBUser == "" {
		log.Fatalf("missing required env var: DB_USER")
	}
	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate signing key: %v", err)
	}
	return hex.EncodeToString(buf)
}
