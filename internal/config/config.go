// internal/config/config.go
//
// Environment-driven configuration for the server.
// A .env file in the working directory is loaded first when present
// (development convenience); real environment variables win.
//
// Environment variables:
//   PORT              listen port (default 5175)
//   LOG_LEVEL         zerolog level (default info)
//   LOG_FORMAT        "json" (default) or "console"
//   DB_PATH           SQLite file; empty keeps rounds in memory
//   JWT_SECRET        HS256 secret (default dev_secret_change_me)
//   JWT_EXPIRES_DAYS  token lifetime (default 14)
//   COOKIE_NAME       auth cookie (default buttons_token)
//   CLIENT_ORIGIN     CORS origin (default http://localhost:5175)
//   NODE_ENV          "production" turns on Secure cookies
//   TRUST_PROXY       "true" behind a reverse proxy: client IPs come from X-Forwarded-For
//   DAILY_SALT        daily challenge seed salt
//   MAX_BUTTONS       largest accepted button count (default 100, 0 = no cap)
//   SHUFFLE_ROUNDS    shuffle peeks per round (default 3)
//   SHUFFLE_DISPLAY   peek duration, Go duration syntax (default 2s)
//   MEMORIZE_PER_BUTTON  initial display per button (default 1s)
//   BUTTON_WIDTH, BUTTON_HEIGHT  button size in px (default 160x80)

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
	DBPath    string

	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool
	TrustProxy     bool

	DailySalt string

	MaxButtons        int
	ShuffleRounds     int
	ShuffleDisplay    time.Duration
	MemorizePerButton time.Duration
	ButtonWidth       float64
	ButtonHeight      float64
}

// Load reads .env (if any) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "5175"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DBPath:    os.Getenv("DB_PATH"),

		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "buttons_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5175"),
		Production:     os.Getenv("NODE_ENV") == "production",
		TrustProxy:     envBool("TRUST_PROXY"),

		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),

		MaxButtons:        envIntMin("MAX_BUTTONS", 100, 0), // 0 = no cap
		ShuffleRounds:     envInt("SHUFFLE_ROUNDS", 3),
		ShuffleDisplay:    envDuration("SHUFFLE_DISPLAY", 2*time.Second),
		MemorizePerButton: envDuration("MEMORIZE_PER_BUTTON", time.Second),
		ButtonWidth:       envFloat("BUTTON_WIDTH", 160),
		ButtonHeight:      envFloat("BUTTON_HEIGHT", 80),
	}

	if cfg.JWTSecret == "dev_secret_change_me" && cfg.Production {
		log.Warn().Msg("JWT_SECRET is the development default in production")
	}
	return cfg
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int { return envIntMin(k, def, 1) }

// envIntMin parses k as an integer no smaller than lowest.
func envIntMin(k string, def, lowest int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lowest {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid integer")
		return def
	}
	return n
}

func envBool(k string) bool {
	v := os.Getenv(k)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid boolean")
		return false
	}
	return b
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid number")
		return def
	}
	return f
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring invalid duration")
		return def
	}
	return d
}
