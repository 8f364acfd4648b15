package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Paths     PathConfig
	Converter ConverterConfig
	Uploads   UploadConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionMaxAgeHours int
}

type PathConfig struct {
	CatalogPath string
	SessionsDir string
	OutputDir   string
}

type ConverterConfig struct {
	Command        string
	Script         string
	Layout         string
	TimeoutSeconds int
}

type UploadConfig struct {
	MaxImageSizeMB    int
	AllowedExtensions []string
}

type AIConfig struct {
	Provider      string // "ollama" or "openai"
	Model         string // e.g. "llama3", "gpt-5-mini"
	OllamaBaseURL string
	OpenAIAPIKey  string
	MaxRetries    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			SessionMaxAgeHours: getEnvAsInt("SESSION_MAX_AGE_HOURS", 24),
		},
		Paths: PathConfig{
			CatalogPath: getEnv("CATALOG_PATH", "data/visualisation_store/catalog.json"),
			SessionsDir: getEnv("SESSIONS_DIR", "sessions"),
			OutputDir:   getEnv("OUTPUT_DIR", "output"),
		},
		Converter: ConverterConfig{
			Command:        getEnv("CONVERTER_COMMAND", "node"),
			Script:         getEnv("CONVERTER_SCRIPT", "js/html2pptx/cli.cjs"),
			Layout:         getEnv("CONVERTER_LAYOUT", "LAYOUT_16x9"),
			TimeoutSeconds: getEnvAsInt("CONVERTER_TIMEOUT_SECONDS", 120),
		},
		Uploads: UploadConfig{
			MaxImageSizeMB:    getEnvAsInt("MAX_IMAGE_SIZE_MB", 10),
			AllowedExtensions: getEnvAsList("ALLOWED_IMAGE_EXTENSIONS", ".png,.jpg,.jpeg,.gif,.svg,.webp"),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "ollama"),
			Model:         getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			MaxRetries:    getEnvAsInt("LLM_MAX_RETRIES", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
