package domain

import (
	"sort"
	"strings"
)

// Sort order constants for review queries.
const (
	SortByRecent  = "recent"
	SortByRating  = "rating"
	SortByHelpful = "helpful"
)

// Filter wildcard accepted by the category and rating filters.
const FilterAll = "all"

// ReviewQuery describes one read of the review collection. Zero values match
// everything, so an empty query returns all reviews sorted by recency.
type ReviewQuery struct {
	SearchTerm     string `json:"search_term"`
	CategoryFilter string `json:"category_filter"`
	RatingFilter   string `json:"rating_filter"`
	SortBy         string `json:"sort_by"`
}

// ValidSortByValues returns the set of valid sort orders.
func ValidSortByValues() []string {
	return []string{SortByRecent, SortByRating, SortByHelpful}
}

// IsValidSortBy checks whether the given sort order is valid. The empty string
// is valid and means "recent".
func IsValidSortBy(sortBy string) bool {
	if sortBy == "" {
		return true
	}
	for _, v := range ValidSortByValues() {
		if v == sortBy {
			return true
		}
	}
	return false
}

// ValidRatingFilters returns the set of valid rating filter values.
func ValidRatingFilters() []string {
	return []string{FilterAll, "5", "4", "3"}
}

// IsValidRatingFilter checks whether the given rating filter is valid. The
// empty string is valid and means "all".
func IsValidRatingFilter(filter string) bool {
	if filter == "" {
		return true
	}
	for _, v := range ValidRatingFilters() {
		if v == filter {
			return true
		}
	}
	return false
}

// matches reports whether the review passes every predicate of the query.
func (q ReviewQuery) matches(r Review) bool {
	// The raw term is matched as-is, whitespace included. A term of spaces
	// only matches texts containing those spaces.
	if term := strings.ToLower(q.SearchTerm); term != "" {
		if !strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Content), term) &&
			!strings.Contains(strings.ToLower(r.Category), term) {
			return false
		}
	}

	// Category matching is a case-insensitive substring check, deliberately
	// loose so "Roads" matches "Roads & Transport".
	if q.CategoryFilter != "" && q.CategoryFilter != FilterAll {
		if !strings.Contains(strings.ToLower(r.Category), strings.ToLower(q.CategoryFilter)) {
			return false
		}
	}

	switch q.RatingFilter {
	case "", FilterAll:
	case "5":
		if r.Rating != 5 {
			return false
		}
	case "4":
		if r.Rating != 4 {
			return false
		}
	case "3":
		// The "3" bucket absorbs every rating at or below 3. Product has
		// confirmed this is intentional, not disjoint bands.
		if r.Rating > 3 {
			return false
		}
	default:
		return false
	}

	return true
}

// ApplyQuery filters the reviews by the query predicates (combined with AND)
// and orders the survivors by the selected sort key, descending. Ties keep
// the original collection order, so results are deterministic across calls.
func ApplyQuery(reviews []Review, q ReviewQuery) []Review {
	filtered := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		if q.matches(r) {
			filtered = append(filtered, r)
		}
	}

	switch q.SortBy {
	case SortByRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	case SortByHelpful:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Helpful > filtered[j].Helpful
		})
	default: // SortByRecent
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}
