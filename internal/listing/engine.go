// Package listing derives the visible page of products from the full
// catalog: category/price filtering, price sorting, fixed-size pagination.
package listing

import (
	"sort"

	"ThreadLine/internal/catalog"
)

// PageSize matches the storefront grid: three rows of three.
const PageSize = 9

type Sort string

const (
	SortFeatured  Sort = "featured" // catalog order
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// FilterState is one complete set of browse controls. An empty Categories
// slice means all categories; the price range is inclusive on both ends.
type FilterState struct {
	Categories []string
	MinCents   int64
	MaxCents   int64
	Sort       Sort
	Page       int // 1-indexed
}

type Result struct {
	Products   []catalog.Product // the requested page, at most PageSize long
	Total      int               // filtered count across all pages
	TotalPages int
	Page       int // the page actually served, after clamping
}

// Apply filters, sorts, and paginates products. An empty filtered set is a
// valid outcome: Total and TotalPages are 0 and Page settles at 1. An
// out-of-range page request clamps to the nearest valid page.
func Apply(products []catalog.Product, f FilterState) Result {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !categoryMatch(p.Category, f.Categories) {
			continue
		}
		if p.PriceCents < f.MinCents || p.PriceCents > f.MaxCents {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriceCents < filtered[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].PriceCents > filtered[j].PriceCents
		})
	}

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	// an empty result still settles on page 1
	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Products:   filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

// PriceBounds returns the catalog's price span rounded out to whole dollars,
// the default range for the price slider. Zero bounds for an empty catalog.
func PriceBounds(products []catalog.Product) (minCents, maxCents int64) {
	if len(products) == 0 {
		return 0, 0
	}

	minCents, maxCents = products[0].PriceCents, products[0].PriceCents
	for _, p := range products[1:] {
		if p.PriceCents < minCents {
			minCents = p.PriceCents
		}
		if p.PriceCents > maxCents {
			maxCents = p.PriceCents
		}
	}

	minCents = (minCents / 100) * 100        // floor to whole dollar
	maxCents = ((maxCents + 99) / 100) * 100 // ceil to whole dollar
	return minCents, maxCents
}

// Categories returns the distinct category names in sorted order.
func Categories(products []catalog.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

func categoryMatch(category string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, c := range selected {
		if c == category {
			return true
		}
	}
	return false
}
