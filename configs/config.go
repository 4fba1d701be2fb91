package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAIAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash-latest:generateContent"

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Port string

	MongoURI              string
	MongoDatabase         string
	MongoBoardsCollection string
	MongoTimeout          time.Duration

	// Redis - board cache is disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	BoardCacheTTL time.Duration

	GoogleAPIKey string
	AIAPIURL     string
	AITimeout    time.Duration

	CORSOrigins string
	DemoUserID  string

	// Consul - registration is skipped when ConsulAddress is empty
	ConsulAddress string
	ServiceHost   string

	Debug bool
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                  getenv("PORT", "4000"),
		MongoURI:              getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:         getenv("MONGO_DATABASE", "aidea"),
		MongoBoardsCollection: getenv("MONGO_BOARDS_COLLECTION", "boards"),
		MongoTimeout:          getenvDuration("MONGO_TIMEOUT", 10*time.Second),
		RedisAddr:             getenv("REDIS_ADDR", ""),
		RedisPassword:         getenv("REDIS_PASSWORD", ""),
		BoardCacheTTL:         getenvDuration("BOARD_CACHE_TTL", 5*time.Minute),
		GoogleAPIKey:          getenv("GOOGLE_API_KEY", ""),
		AIAPIURL:              getenv("AI_API_URL", defaultAIAPIURL),
		AITimeout:             getenvDuration("AI_TIMEOUT", 30*time.Second),
		CORSOrigins:           getenv("CORS_ORIGINS", "https://aidea-board.netlify.app"),
		DemoUserID:            getenv("DEMO_USER_ID", "user123"),
		ConsulAddress:         getenv("CONSUL_ADDRESS", ""),
		ServiceHost:           getenv("SERVICE_HOST", "localhost"),
		Debug:                 getenvBool("DEBUG", false),
	}
}

func (c Config) ListenAddr() string {
	return ":" + c.Port
}

func (c Config) PortNumber() int {
	n, err := strconv.Atoi(c.Port)
	if err != nil {
		return 0
	}
	return n
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
