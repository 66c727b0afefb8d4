package config

import (
	"os"
	"strconv"
)

// Strategy names accepted by REFINE_STRATEGY.
const (
	StrategyCurated  = "curated"
	StrategyPerLabel = "perlabel"
	StrategyKeyword  = "keyword"
)

type Config struct {
	AppEnv string
	Port   string

	// Local classifiers
	ModelDir         string
	TopK             int
	SentimentBackend string // "onnx" or "vader"

	// Remote refinement (Groq, OpenAI-compatible)
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
	Strategy    string

	// Optional infrastructure
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool
	KafkaBrokers   string
	KafkaTopic     string
}

func FromEnv() Config {
	return Config{
		AppEnv:           getEnv("APP_ENV", "dev"),
		Port:             getEnv("PORT", "8080"),
		ModelDir:         getEnv("MODEL_DIR", "./models"),
		TopK:             getEnvInt("ANALYZER_TOP_K", 5),
		SentimentBackend: getEnv("SENTIMENT_BACKEND", "onnx"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:        getEnv("GROQ_MODEL", "llama3-8b-8192"),
		Strategy:         getEnv("REFINE_STRATEGY", StrategyCurated),
		ValkeyAddr:       os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:   os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:        os.Getenv("VALKEY_TLS") == "true",
		KafkaBrokers:     os.Getenv("KAFKA_BOOTSTRAP_SERVERS"),
		KafkaTopic:       getEnv("KAFKA_ANALYSIS_TOPIC", "analysis-results"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}
