package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Title struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func (t Title) YearString() string {
	return strconv.Itoa(t.Year)
}

// DefaultTitles is the fixed list of movies scored on every run.
var DefaultTitles = []Title{
	{Name: "Casper", Year: 1995},
	{Name: "Drop Dead Fred", Year: 1991},
	{Name: "Dumb and Dumber", Year: 1994},
	{Name: "Stand by Me", Year: 1986},
	{Name: "Toy Story", Year: 1995},
}

// Source identifies a scoring site
type Source string

const (
	SourceIMDb           Source = "imdb"
	SourceRottenTomatoes Source = "rottenTomatoes"
	SourceMetaCritic     Source = "metaCritic"
)

// Sources lists every site in document order.
var Sources = []Source{SourceIMDb, SourceRottenTomatoes, SourceMetaCritic}

// Score is either a normalized score string or absent. The zero value is absent.
type Score struct {
	value string
	found bool
}

func Found(value string) Score {
	return Score{value: value, found: true}
}

func Absent() Score {
	return Score{}
}

func (s Score) Value() (string, bool) {
	return s.value, s.found
}

func (s Score) IsAbsent() bool {
	return !s.found
}

func (s Score) String() string {
	if !s.found {
		return "<absent>"
	}
	return s.value
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.found {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Absent()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Found(v)
	return nil
}

type MovieScores struct {
	IMDb           Score `json:"imdb"`
	RottenTomatoes Score `json:"rottenTomatoes"`
	MetaCritic     Score `json:"metaCritic"`
}

// With returns a copy of m with the score for src replaced.
func (m MovieScores) With(src Source, score Score) MovieScores {
	switch src {
	case SourceIMDb:
		m.IMDb = score
	case SourceRottenTomatoes:
		m.RottenTomatoes = score
	case SourceMetaCritic:
		m.MetaCritic = score
	}
	return m
}

func (m MovieScores) Get(src Source) Score {
	switch src {
	case SourceIMDb:
		return m.IMDb
	case SourceRottenTomatoes:
		return m.RottenTomatoes
	case SourceMetaCritic:
		return m.MetaCritic
	}
	return Absent()
}

// Snapshot maps Title.Name to the scores gathered in one run.
type Snapshot map[string]MovieScores
