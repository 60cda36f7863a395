package scraper

import (
	"github.com/rs/zerolog"
)

// Origins holds the scheme and host of every scored site.
type Origins struct {
	IMDb           string
	RottenTomatoes string
	MetaCritic     string
}

// NewSources returns one Source per site in output order.
func NewSources(fetcher Fetcher, origins Origins, log zerolog.Logger) []Source {
	return []Source{
		NewIMDb(fetcher, origins.IMDb, log),
		NewRottenTomatoes(fetcher, origins.RottenTomatoes, log),
		NewMetaCritic(fetcher, origins.MetaCritic, log),
	}
}
