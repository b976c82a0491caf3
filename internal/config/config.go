package config

import (
	"os"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"

	"github.com/muhammadolammi/careerreadiness/internal/gemini"
	"github.com/muhammadolammi/careerreadiness/internal/storage"
)

type Config struct {
	Port    string
	GinMode string

	// APIKey is the Gemini key. The proxy reports a server error without it.
	APIKey        string
	GeminiBaseURL string
	ProxyModel    string
	AgentModel    string

	RabbitMQURL string
	R2          storage.R2Config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		klog.Warningf("⚠️ could not read .env: %v", err)
	}

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "debug"),
		APIKey:        getenv("MY_SECRET_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiBaseURL: getenv("GEMINI_API_BASE", gemini.DefaultBaseURL),
		ProxyModel:    getenv("GEMINI_MODEL", gemini.DefaultModel),
		AgentModel:    getenv("AGENT_MODEL", "gemini-2.5-flash"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		R2: storage.R2Config{
			AccountID: os.Getenv("R2_ACCCOUNT_ID"),
			Bucket:    os.Getenv("R2_BUCKET"),
			AccessKey: os.Getenv("R2_ACCESS_KEY"),
			SecretKey: os.Getenv("R2_SECRET_KEY"),
			PublicURL: os.Getenv("R2_PUBLIC_URL"),
		},
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		klog.Warningf("unknown GIN_MODE %q, using debug", cfg.GinMode)
		cfg.GinMode = "debug"
	}
	if cfg.APIKey == "" {
		klog.Warning("empty MY_SECRET_API_KEY and GOOGLE_API_KEY in env; report generation is disabled")
	}
	return cfg
}
