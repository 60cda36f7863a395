package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

const (
	mcResultSelector = "a.c-pageSiteSearch-results-item"
	mcTitleSelector  = "p.g-text-medium-fluid"
	mcYearSelector   = "span.u-text-uppercase"
	mcTypeSelector   = "span.c-tagList_button"
	mcScoreSelector  = "div.c-siteReviewScore_background div.c-siteReviewScore"

	mcMovieType = "movie"
)

// MetaCritic scores titles by their metascore, e.g. "74/100".
type MetaCritic struct {
	fetcher Fetcher
	origin  string
	log     zerolog.Logger
}

func NewMetaCritic(fetcher Fetcher, origin string, log zerolog.Logger) *MetaCritic {
	return &MetaCritic{
		fetcher: fetcher,
		origin:  strings.TrimRight(origin, "/"),
		log:     log.With().Str("source", string(models.SourceMetaCritic)).Logger(),
	}
}

func (s *MetaCritic) Name() models.Source {
	return models.SourceMetaCritic
}

func (s *MetaCritic) Score(ctx context.Context, title models.Title) models.Score {
	return resolve(ctx, s.log, title, s.lookup)
}

func (s *MetaCritic) searchURL(title models.Title) string {
	return s.origin + "/search/" + url.PathEscape(title.Name)
}

func (s *MetaCritic) lookup(ctx context.Context, title models.Title) (models.Score, error) {
	doc, err := fetchDocument(ctx, s.fetcher, s.searchURL(title))
	if err != nil {
		return models.Absent(), fmt.Errorf("search: %w", err)
	}

	link, err := firstMatch(doc, mcResultSelector, title, func(sel *goquery.Selection) (candidate, bool) {
		// search mixes movies, shows and games
		if text(sel.Find(mcTypeSelector).First()) != mcMovieType {
			return candidate{}, false
		}
		return candidate{
			name: text(sel.Find(mcTitleSelector).First()),
			year: text(sel.Find(mcYearSelector).First()),
			link: strings.TrimSpace(sel.AttrOr("href", "")),
		}, true
	})
	if err != nil {
		return models.Absent(), err
	}

	detailURL, err := siteURL(s.origin, link)
	if err != nil {
		return models.Absent(), err
	}

	detail, err := fetchDocument(ctx, s.fetcher, detailURL)
	if err != nil {
		return models.Absent(), fmt.Errorf("detail: %w", err)
	}

	raw := text(detail.Find(mcScoreSelector).First().Find("span"))
	score := NormalizeMetaCritic(raw)
	if score.IsAbsent() {
		return score, fmt.Errorf("%w: metascore %q", ErrNoScore, raw)
	}
	return score, nil
}
