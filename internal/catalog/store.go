package catalog

import (
	"context"
	"strings"
)

// Query narrows a catalog listing. Zero-value fields are ignored; set fields
// are AND-composed.
type Query struct {
	Category string // exact category match
	Trending bool   // only trending products
	Search   string // case-insensitive substring over title, category, id
}

type Store interface {
	Ping(ctx context.Context) error

	// List returns matching products in catalog order.
	List(ctx context.Context, q Query) ([]Product, error)

	Get(ctx context.Context, id string) (Product, bool, error)
}

// Match reports whether p satisfies every set predicate of q.
func Match(p Product, q Query) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Trending && !p.Trending {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) &&
			!strings.Contains(strings.ToLower(p.ID), needle) {
			return false
		}
	}
	return true
}
