package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

func TestNormalizeIMDb(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		scale  string
		want   models.Score
	}{
		{"rating and scale", "8.1", "/10", models.Found("8.1/10")},
		{"surrounding whitespace", " 7.3 ", "\n/10 ", models.Found("7.3/10")},
		{"missing rating", "", "/10", models.Absent()},
		{"missing scale", "8.1", "", models.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIMDb(tt.rating, tt.scale))
		})
	}
}

func TestNormalizeRottenTomatoes(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Score
	}{
		{"81%", models.Found("81/100")},
		{" 100% ", models.Found("100/100")},
		{"0%", models.Found("0/100")},
		{"abc%", models.Absent()},
		{"%", models.Absent()},
		{"", models.Absent()},
		{"- -", models.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRottenTomatoes(tt.raw))
		})
	}
}

func TestNormalizeMetaCritic(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Score
	}{
		{"74", models.Found("74/100")},
		{" 52\n", models.Found("52/100")},
		{"+74", models.Found("74/100")},
		{"074", models.Found("74/100")},
		{"", models.Absent()},
		{"tbd", models.Absent()},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMetaCritic(tt.raw))
		})
	}
}
