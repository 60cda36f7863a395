package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_PATH", "SCRAPE_INTERVAL", "SCRAPE_CONCURRENCY", "FETCH_TIMEOUT", "IMDB_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/movie-scores.json", cfg.DataPath)
	assert.Equal(t, time.Hour, cfg.ScrapeInterval)
	assert.Equal(t, 2, cfg.ScrapeConcurrency)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "https://www.imdb.com", cfg.IMDbURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_PATH", "/tmp/scores.json")
	t.Setenv("SCRAPE_INTERVAL", "15m")
	t.Setenv("SCRAPE_CONCURRENCY", "5")
	t.Setenv("METACRITIC_URL", "http://localhost:9999")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/scores.json", cfg.DataPath)
	assert.Equal(t, 15*time.Minute, cfg.ScrapeInterval)
	assert.Equal(t, 5, cfg.ScrapeConcurrency)
	assert.Equal(t, "http://localhost:9999", cfg.MetaCriticURL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SCRAPE_INTERVAL", "hourly")
	t.Setenv("SCRAPE_CONCURRENCY", "-1")
	t.Setenv("FETCH_TIMEOUT", "0s")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.ScrapeInterval)
	assert.Equal(t, 2, cfg.ScrapeConcurrency)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
}
