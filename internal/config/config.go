package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DataPath string // Snapshot document location

	// Scraper settings
	ScrapeInterval    time.Duration // Delay between scheduled runs
	ScrapeConcurrency int           // Titles scraped at the same time
	FetchTimeout      time.Duration // Per-request timeout

	// Site origins, overridable for local testing
	IMDbURL           string
	RottenTomatoesURL string
	MetaCriticURL     string
}

func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DataPath: getEnv("DATA_PATH", "./data/movie-scores.json"),

		ScrapeInterval:    getEnvDuration("SCRAPE_INTERVAL", time.Hour),
		ScrapeConcurrency: getEnvInt("SCRAPE_CONCURRENCY", 2),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		IMDbURL:           getEnv("IMDB_URL", "https://www.imdb.com"),
		RottenTomatoesURL: getEnv("ROTTEN_TOMATOES_URL", "https://www.rottentomatoes.com"),
		MetaCriticURL:     getEnv("METACRITIC_URL", "https://www.metacritic.com"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}
