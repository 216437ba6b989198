package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wandertrails/wandertrails-api/internal/domain"
)

// Duration buckets, chosen on the leading integer of the duration field.
const (
	DurationAll    = "all"
	DurationShort  = "short"  // <= 5 days
	DurationMedium = "medium" // 6-10 days
	DurationLong   = "long"   // > 10 days
)

const (
	SortRating       = "rating"
	SortPriceAsc     = "price-asc"
	SortPriceDesc    = "price-desc"
	SortDurationAsc  = "duration-asc"
	SortDurationDesc = "duration-desc"
)

// AutocompleteLimit caps search suggestions for the storefront's search box.
const AutocompleteLimit = 8

// Criteria is the ephemeral filter state of a listing request. Zero values
// mean "no constraint": an empty Sort keeps catalog order, and unrecognized
// duration, difficulty, or sort values degrade to no constraint or the
// rating fallback rather than erroring.
type Criteria struct {
	Query      string
	PriceMin   float64
	PriceMax   float64
	Duration   string
	Difficulty string
	Theme      string
	Sort       string
	Limit      int
}

// Filter applies criteria to a package list and returns a fresh, ordered
// slice. It never mutates the input and performs no I/O; ties keep catalog
// order.
func Filter(packages []domain.Package, criteria Criteria) []domain.Package {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	difficulty := strings.TrimSpace(criteria.Difficulty)
	theme := strings.TrimSpace(criteria.Theme)
	duration := normalizeDuration(criteria.Duration)

	out := make([]domain.Package, 0, len(packages))
	for _, pkg := range packages {
		if query != "" && !matchesQuery(&pkg, query) {
			continue
		}
		if criteria.PriceMin > 0 && pkg.Price < criteria.PriceMin {
			continue
		}
		if criteria.PriceMax > 0 && pkg.Price > criteria.PriceMax {
			continue
		}
		if duration != DurationAll && durationBucket(pkg.Duration) != duration {
			continue
		}
		if difficulty != "" && !strings.EqualFold(pkg.Difficulty, difficulty) {
			continue
		}
		if theme != "" && !pkg.HasTheme(theme) {
			continue
		}
		out = append(out, pkg)
	}

	sortPackages(out, criteria.Sort)

	if criteria.Limit > 0 && len(out) > criteria.Limit {
		out = out[:criteria.Limit]
	}
	return out
}

// Search is the autocomplete entry point: free-text only, capped at
// AutocompleteLimit matches in catalog order.
func Search(packages []domain.Package, query string) []domain.Package {
	return Filter(packages, Criteria{Query: query, Limit: AutocompleteLimit})
}

func matchesQuery(pkg *domain.Package, query string) bool {
	if strings.Contains(strings.ToLower(pkg.Title), query) ||
		strings.Contains(strings.ToLower(pkg.Destination), query) ||
		strings.Contains(strings.ToLower(pkg.Country), query) {
		return true
	}
	for _, h := range pkg.Highlights {
		if strings.Contains(strings.ToLower(h), query) {
			return true
		}
	}
	return false
}

func normalizeDuration(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case DurationShort:
		return DurationShort
	case DurationMedium:
		return DurationMedium
	case DurationLong:
		return DurationLong
	default:
		return DurationAll
	}
}

// durationBucket classifies a duration string by its leading integer. A
// value with no leading integer belongs to no specific bucket.
func durationBucket(duration string) string {
	days, ok := leadingInt(duration)
	if !ok {
		return ""
	}
	switch {
	case days <= 5:
		return DurationShort
	case days <= 10:
		return DurationMedium
	default:
		return DurationLong
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func sortPackages(packages []domain.Package, key string) {
	var less func(a, b *domain.Package) bool
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		// No sort requested; catalog order stands.
		return
	case SortPriceAsc:
		less = func(a, b *domain.Package) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *domain.Package) bool { return a.Price > b.Price }
	case SortDurationAsc:
		less = func(a, b *domain.Package) bool { return durationDays(a) < durationDays(b) }
	case SortDurationDesc:
		less = func(a, b *domain.Package) bool { return durationDays(a) > durationDays(b) }
	default:
		// SortRating and unknown keys: rating descending.
		less = func(a, b *domain.Package) bool { return a.Rating > b.Rating }
	}
	sort.SliceStable(packages, func(i, j int) bool {
		return less(&packages[i], &packages[j])
	})
}

func durationDays(pkg *domain.Package) int {
	days, _ := leadingInt(pkg.Duration)
	return days
}
