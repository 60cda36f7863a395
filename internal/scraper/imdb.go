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
	imdbResultSelector = ".ipc-metadata-list-summary-item__c"
	imdbTitleSelector  = "a.ipc-metadata-list-summary-item__t"
	imdbYearSelector   = "span.ipc-metadata-list-summary-item__li"
	imdbRatingSelector = `div[data-testid="hero-rating-bar__aggregate-rating__score"]`
)

// IMDb scores titles by their aggregate user rating, e.g. "8.1/10".
type IMDb struct {
	fetcher Fetcher
	origin  string
	log     zerolog.Logger
}

func NewIMDb(fetcher Fetcher, origin string, log zerolog.Logger) *IMDb {
	return &IMDb{
		fetcher: fetcher,
		origin:  strings.TrimRight(origin, "/"),
		log:     log.With().Str("source", string(models.SourceIMDb)).Logger(),
	}
}

func (s *IMDb) Name() models.Source {
	return models.SourceIMDb
}

func (s *IMDb) Score(ctx context.Context, title models.Title) models.Score {
	return resolve(ctx, s.log, title, s.lookup)
}

func (s *IMDb) searchURL(title models.Title) string {
	q := url.Values{}
	q.Set("q", title.Name)
	q.Set("s", "tt")
	q.Set("ttype", "ft")
	q.Set("ref_", "fn_ft")
	return s.origin + "/find/?" + q.Encode()
}

func (s *IMDb) lookup(ctx context.Context, title models.Title) (models.Score, error) {
	doc, err := fetchDocument(ctx, s.fetcher, s.searchURL(title))
	if err != nil {
		return models.Absent(), fmt.Errorf("search: %w", err)
	}

	link, err := firstMatch(doc, imdbResultSelector, title, func(sel *goquery.Selection) (candidate, bool) {
		anchor := sel.Find(imdbTitleSelector).First()
		href, _ := anchor.Attr("href")
		return candidate{
			name: text(anchor),
			year: text(sel.Find(imdbYearSelector).First()),
			link: href,
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

	spans := detail.Find(imdbRatingSelector).First().Find("span")
	if spans.Length() < 2 {
		return models.Absent(), fmt.Errorf("%w: rating bar has %d spans", ErrNoScore, spans.Length())
	}

	score := NormalizeIMDb(spans.First().Text(), spans.Last().Text())
	if score.IsAbsent() {
		return score, ErrNoScore
	}
	return score, nil
}
