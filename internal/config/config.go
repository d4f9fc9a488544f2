package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	JWTSecret     string
	DBPath        string
	LMSBaseURL    string
	RecordsDir    string
	TimeUnit      time.Duration
	RateLimit     float64 // 초당 허용 명령 수
	RateBurst     int
	MetricsKey    string
	TTSLanguage   string
	TTSVoice      string
	GoogleCreds   string // 비어 있으면 음성 안내 비활성화
	Debug         bool
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config.Load(): no .env file loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET_KEY"),
		DBPath:      getEnv("DB_PATH", "./awareness_simulator.db"),
		LMSBaseURL:  getEnv("LMS_BASE_URL", "http://localhost:8000/api"),
		RecordsDir:  getEnv("RECORDS_DIR", "data/records"),
		TimeUnit:    getDuration("TIME_UNIT", time.Second),
		RateLimit:   getFloat("RATE_LIMIT", 5),
		RateBurst:   getInt("RATE_BURST", 10),
		MetricsKey:  os.Getenv("METRICS_KEY"),
		TTSLanguage: getEnv("TTS_LANGUAGE", "ru-RU"),
		TTSVoice:    getEnv("TTS_VOICE", "ru-RU-Wavenet-A"),
		Debug:       getBool("DEBUG", false),
	}
	cfg.GoogleCreds = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("config: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
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
