package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBURL string

	RedisURL      string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string

	ReminderCron      string
	ReminderDaysAhead int

	CORSOrigins []string
}

// Load reads the configuration from the environment. godotenv has already
// been applied by main.
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBURL:                getEnv("DB_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		StatsCacheTTL:        time.Duration(getEnvAsInt("STATS_CACHE_TTL_SECONDS", 300)) * time.Second,
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTExpiry:            time.Duration(getEnvAsInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		TwilioAccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:    getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		ReminderCron:         getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderDaysAhead:    getEnvAsInt("REMINDER_DAYS_AHEAD", 1),
		CORSOrigins:          splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
