package listing

import (
	"math"
	"net/http"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"ThreadLine/internal/catalog"
	"ThreadLine/pkg/kit"
	"ThreadLine/pkg/money"
)

// Server exposes the browse endpoint: the listing engine applied to the
// full catalog in one request.
type Server struct {
	Store catalog.Store
	Log   *zap.Logger
}

type browsePayload struct {
	Products   []catalog.ProductPayload `json:"products"`
	Total      int                      `json:"total"`
	TotalPages int                      `json:"total_pages"`
	Page       int                      `json:"page"`
	Categories []string                 `json:"categories"`
	MinPrice   string                   `json:"min_price"`
	MaxPrice   string                   `json:"max_price"`
}

func (s *Server) BrowseHandler() http.HandlerFunc { return s.browse }

// browse accepts repeated category params, min_price/max_price in display
// dollars, sort (featured|price_asc|price_desc), and a 1-indexed page.
// Malformed numeric params fall back to defaults; they never fail the
// request.
func (s *Server) browse(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context(), catalog.Query{})
	if err != nil {
		if s.Log != nil {
			s.Log.Error("browse list failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	f := filterStateFromQuery(r)
	res := Apply(products, f)

	boundsMin, boundsMax := PriceBounds(products)
	payload := browsePayload{
		Products:   catalog.PayloadsFor(res.Products),
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
		Categories: Categories(products),
		MinPrice:   money.Format(boundsMin),
		MaxPrice:   money.Format(boundsMax),
	}

	kit.WriteList(w, http.StatusOK, payload, len(res.Products))
}

func filterStateFromQuery(r *http.Request) FilterState {
	params := r.URL.Query()

	f := FilterState{
		Categories: params["category"],
		MinCents:   0,
		MaxCents:   math.MaxInt64,
		Sort:       SortFeatured,
		Page:       1,
	}

	if v := params.Get("min_price"); v != "" {
		f.MinCents = money.ParseDisplay(v)
	}
	if v := params.Get("max_price"); v != "" {
		if cents := money.ParseDisplay(v); cents > 0 {
			f.MaxCents = cents
		}
	}

	switch Sort(params.Get("sort")) {
	case SortPriceAsc:
		f.Sort = SortPriceAsc
	case SortPriceDesc:
		f.Sort = SortPriceDesc
	}

	if page := cast.ToInt(params.Get("page")); page > 0 {
		f.Page = page
	}

	return f
}
