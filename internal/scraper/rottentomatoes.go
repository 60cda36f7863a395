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
	rtResultSelector = `search-page-media-row[data-qa="data-row"]`
	rtTitleSelector  = `a[data-qa="info-name"]`
	rtScoreSelector  = `rt-button[slot="criticsScore"]`
)

// RottenTomatoes scores titles by the Tomatometer critics score, e.g. "81/100".
type RottenTomatoes struct {
	fetcher Fetcher
	origin  string
	log     zerolog.Logger
}

func NewRottenTomatoes(fetcher Fetcher, origin string, log zerolog.Logger) *RottenTomatoes {
	return &RottenTomatoes{
		fetcher: fetcher,
		origin:  strings.TrimRight(origin, "/"),
		log:     log.With().Str("source", string(models.SourceRottenTomatoes)).Logger(),
	}
}

func (s *RottenTomatoes) Name() models.Source {
	return models.SourceRottenTomatoes
}

func (s *RottenTomatoes) Score(ctx context.Context, title models.Title) models.Score {
	return resolve(ctx, s.log, title, s.lookup)
}

func (s *RottenTomatoes) searchURL(title models.Title) string {
	return s.origin + "/search?search=" + url.QueryEscape(title.Name)
}

func (s *RottenTomatoes) lookup(ctx context.Context, title models.Title) (models.Score, error) {
	doc, err := fetchDocument(ctx, s.fetcher, s.searchURL(title))
	if err != nil {
		return models.Absent(), fmt.Errorf("search: %w", err)
	}

	link, err := firstMatch(doc, rtResultSelector, title, func(sel *goquery.Selection) (candidate, bool) {
		anchor := sel.Find(rtTitleSelector).First()
		return candidate{
			name: text(anchor),
			year: strings.TrimSpace(sel.AttrOr("releaseyear", "")),
			link: strings.TrimSpace(anchor.AttrOr("href", "")),
		}, true
	})
	if err != nil {
		return models.Absent(), err
	}

	// Listing links point at the full movie URL already.
	detailURL, err := absoluteURL(link)
	if err != nil {
		return models.Absent(), err
	}

	detail, err := fetchDocument(ctx, s.fetcher, detailURL)
	if err != nil {
		return models.Absent(), fmt.Errorf("detail: %w", err)
	}

	raw := text(detail.Find(rtScoreSelector).First())
	score := NormalizeRottenTomatoes(raw)
	if score.IsAbsent() {
		return score, fmt.Errorf("%w: critics score %q", ErrNoScore, raw)
	}
	return score, nil
}
