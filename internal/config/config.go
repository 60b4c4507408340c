package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	HTTPPort  string
	MongoURI  string
	MongoDB   string
	RedisAddr string
	JWTSecret string

	// OTPEchoEnabled echoes the issued OTP back in the request response.
	// Development convenience only; it defaults to off and must never be
	// enabled in a hardened deployment.
	OTPEchoEnabled bool
	OTPTTL         time.Duration
	ResendCooldown time.Duration
	AuthFlowTTL    time.Duration
}

// Load reads configuration from the environment, with a .env file picked
// up in development when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "soulcare"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		OTPEchoEnabled: getBool("OTP_ECHO_ENABLED", false),
		OTPTTL:         getDuration("OTP_TTL", 5*time.Minute),
		ResendCooldown: getDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
		AuthFlowTTL:    getDuration("AUTH_FLOW_TTL", 10*time.Minute),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
