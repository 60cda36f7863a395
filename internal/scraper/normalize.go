package scraper

import (
	"strconv"
	"strings"

	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

// NormalizeIMDb joins the displayed rating and scale, e.g. "8.1" + "/10".
func NormalizeIMDb(rating, scale string) models.Score {
	rating = strings.TrimSpace(rating)
	scale = strings.TrimSpace(scale)
	if rating == "" || scale == "" {
		return models.Absent()
	}
	return models.Found(rating + scale)
}

// NormalizeRottenTomatoes turns a "81%" critics score into "81/100".
func NormalizeRottenTomatoes(raw string) models.Score {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.Absent()
	}
	return models.Found(strconv.Itoa(n) + "/100")
}

// NormalizeMetaCritic turns a metascore such as "74" into "74/100".
func NormalizeMetaCritic(raw string) models.Score {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.Absent()
	}
	return models.Found(strconv.Itoa(n) + "/100")
}
