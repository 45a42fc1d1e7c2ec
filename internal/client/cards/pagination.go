package cards

import "github.com/bcardapp/bcard/internal/client/models"

const (
	// DefaultPageSize is how many cards a listing page shows.
	DefaultPageSize = 8

	// pageWindow is the width of the sliding page-number strip.
	pageWindow = 5
)

// Gap marks a collapsed range ("…") in a page-number strip.
const Gap = -1

// TotalPages returns ceil(total/pageSize); zero when the collection is empty.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageSlice returns the cards visible on the given 1-based page, or nil when
// the page is out of range. Rejecting out-of-range page requests is the
// caller's job; the derivation just has nothing to show for them.
func PageSlice(cards []models.Card, page, pageSize int) []models.Card {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(cards) {
		return nil
	}
	end := start + pageSize
	if end > len(cards) {
		end = len(cards)
	}
	return cards[start:end]
}

// PageNumbers computes the page-number strip for the current page: a sliding
// window of up to pageWindow numbers near current, clamped to [1, total],
// with the first and last page always present and Gap entries where the
// window does not touch them.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= pageWindow {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := start + pageWindow - 1
	if end > total {
		end = total
	}
	if end-start+1 < pageWindow {
		start = end - pageWindow + 1
		if start < 1 {
			start = 1
		}
	}

	var pages []int
	if start > 1 {
		pages = append(pages, 1)
		if start > 2 {
			pages = append(pages, Gap)
		}
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total {
		if end < total-1 {
			pages = append(pages, Gap)
		}
		pages = append(pages, total)
	}
	return pages
}
