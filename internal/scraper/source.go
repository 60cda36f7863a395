package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

var (
	// ErrNotFound means the search listing had no exact title and year match.
	ErrNotFound = errors.New("no matching title in search results")
	// ErrNoScore means the detail page was fetched but carried no usable score.
	ErrNoScore = errors.New("score not found on detail page")
)

// Fetcher loads a page by absolute URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Source scores one title against one site. Score never fails: every error
// is logged and reported as an absent score.
type Source interface {
	Name() models.Source
	Score(ctx context.Context, title models.Title) models.Score
}

type lookupFunc func(ctx context.Context, title models.Title) (models.Score, error)

func resolve(ctx context.Context, log zerolog.Logger, title models.Title, lookup lookupFunc) (score models.Score) {
	log = log.With().Str("title", title.Name).Int("year", title.Year).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scrape panicked")
			score = models.Absent()
		}
	}()

	score, err := lookup(ctx, title)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoScore):
		log.Warn().Err(err).Msg("score unavailable")
		return models.Absent()
	case err != nil:
		log.Error().Err(err).Msg("scrape failed")
		return models.Absent()
	}

	log.Debug().Str("score", score.String()).Msg("score found")
	return score
}

// candidate is one entry of a search listing.
type candidate struct {
	name string
	year string
	link string
}

// firstMatch returns the link of the first candidate whose name and year
// equal the title exactly.
func firstMatch(doc *goquery.Document, selector string, title models.Title, parse func(*goquery.Selection) (candidate, bool)) (string, error) {
	year := title.YearString()
	var link string

	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		c, ok := parse(s)
		if !ok {
			return true
		}
		if c.name == title.Name && c.year == year && c.link != "" {
			link = c.link
			return false
		}
		return true
	})

	if link == "" {
		return "", ErrNotFound
	}
	return link, nil
}

func fetchDocument(ctx context.Context, f Fetcher, pageURL string) (*goquery.Document, error) {
	body, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// siteURL prefixes a site-relative path with the site origin.
func siteURL(origin, path string) (string, error) {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return "", fmt.Errorf("expected site-relative link, got %q", path)
	}
	return strings.TrimRight(origin, "/") + path, nil
}

// absoluteURL validates a link that the listing already gives as absolute.
func absoluteURL(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", link, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("expected absolute link, got %q", link)
	}
	return link, nil
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
