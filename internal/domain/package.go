package domain

import "strings"

// Package is a bookable travel itinerary offering. Records are assembled
// once at startup from the catalog seed file and are immutable afterwards.
type Package struct {
	ID             string         `json:"id" yaml:"id"`
	Title          string         `json:"title" yaml:"title"`
	Destination    string         `json:"destination" yaml:"destination"`
	Country        string         `json:"country" yaml:"country"`
	Continent      string         `json:"continent" yaml:"continent"`
	Duration       string         `json:"duration" yaml:"duration"`
	Price          float64        `json:"price" yaml:"price"`
	Image          string         `json:"image" yaml:"image"`
	Gallery        []string       `json:"gallery" yaml:"gallery"`
	Rating         float64        `json:"rating" yaml:"rating"`
	ReviewCount    int            `json:"review_count" yaml:"review_count"`
	Themes         []string       `json:"themes" yaml:"themes"`
	Difficulty     string         `json:"difficulty" yaml:"difficulty"`
	Highlights     []string       `json:"highlights" yaml:"highlights"`
	Inclusions     []string       `json:"inclusions" yaml:"inclusions"`
	Exclusions     []string       `json:"exclusions" yaml:"exclusions"`
	Itinerary      []ItineraryDay `json:"itinerary" yaml:"itinerary"`
	AvailableDates []string       `json:"available_dates" yaml:"available_dates"`
}

type ItineraryDay struct {
	Day         int    `json:"day" yaml:"day"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

const (
	DifficultyEasy     = "Easy"
	DifficultyModerate = "Moderate"
	DifficultyHard     = "Hard"
)

// HasDate reports whether the given ISO date is a valid departure for the
// package.
func (p *Package) HasDate(date string) bool {
	for _, d := range p.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

// HasTheme reports whether the package carries the given theme id. Theme
// ids compare case-insensitively.
func (p *Package) HasTheme(theme string) bool {
	for _, t := range p.Themes {
		if strings.EqualFold(t, theme) {
			return true
		}
	}
	return false
}
