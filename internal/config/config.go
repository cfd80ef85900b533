package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port     string
	RedisURL string

	AIProvider  string
	GeminiKey   string
	GeminiModel string
	OpenAIKey   string
	OpenAIModel string

	YouTubeKey string

	UploadDir string

	MetadataTimeoutSecs  int
	AITimeoutSecs        int
	MetadataCacheTTLSecs int
	UploadMaxAgeSecs     int
}

func Load() *Config {
	cfg := &Config{
		GeminiKey:  os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:  os.Getenv("OPENAI_API_KEY"),
		YouTubeKey: os.Getenv("YOUTUBE_API_KEY"),
		RedisURL:   os.Getenv("REDIS_URL"),
	}

	if cfg.GeminiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set, analyses will use the fallback generator")
	}
	if cfg.YouTubeKey == "" {
		log.Println("Warning: YOUTUBE_API_KEY not set, metadata limited to oEmbed fields")
	}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "3001"
	}

	cfg.AIProvider = strings.ToLower(strings.TrimSpace(os.Getenv("AI_PROVIDER")))
	if cfg.AIProvider == "" {
		cfg.AIProvider = "gemini"
	}

	cfg.GeminiModel = strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-1.5-flash"
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.UploadDir = os.Getenv("UPLOAD_DIR")
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./temp"
	}

	cfg.MetadataTimeoutSecs = intEnv("METADATA_TIMEOUT_SECS", 10)
	cfg.AITimeoutSecs = intEnv("AI_TIMEOUT_SECS", 30)
	cfg.MetadataCacheTTLSecs = intEnv("METADATA_CACHE_TTL_SECS", 600)
	cfg.UploadMaxAgeSecs = intEnv("UPLOAD_MAX_AGE_SECS", 3600)

	return cfg
}

func intEnv(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
