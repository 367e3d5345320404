package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"ThreadLine/pkg/kit"
	"ThreadLine/pkg/money"
)

// ProductPayload is the wire form of a Product: cents plus the formatted
// display price the storefront renders directly.
type ProductPayload struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Image              string   `json:"image"`
	Rating             float64  `json:"rating"`
	Price              string   `json:"price"`
	PriceCents         int64    `json:"price_cents"`
	OriginalPrice      string   `json:"original_price,omitempty"`
	OriginalPriceCents int64    `json:"original_price_cents,omitempty"`
	Discount           string   `json:"discount,omitempty"`
	Category           string   `json:"category"`
	IsTrending         bool     `json:"is_trending"`
	Sizes              []string `json:"sizes"`
}

func PayloadFor(p Product) ProductPayload {
	out := ProductPayload{
		ID:                 p.ID,
		Title:              p.Title,
		Image:              p.Image,
		Rating:             p.Rating,
		Price:              money.Format(p.PriceCents),
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Discount:           p.Discount,
		Category:           p.Category,
		IsTrending:         p.Trending,
		Sizes:              p.Sizes,
	}
	if p.OriginalPriceCents > 0 {
		out.OriginalPrice = money.Format(p.OriginalPriceCents)
	}
	return out
}

func PayloadsFor(products []Product) []ProductPayload {
	out := make([]ProductPayload, 0, len(products))
	for _, p := range products {
		out = append(out, PayloadFor(p))
	}
	return out
}

func (pp ProductPayload) product() Product {
	return Product{
		ID:                 pp.ID,
		Title:              pp.Title,
		Image:              pp.Image,
		Rating:             pp.Rating,
		PriceCents:         pp.PriceCents,
		OriginalPriceCents: pp.OriginalPriceCents,
		Discount:           pp.Discount,
		Category:           pp.Category,
		Trending:           pp.IsTrending,
		Sizes:              pp.Sizes,
	}
}

// Server exposes the catalog read API. The delays reproduce the upstream
// feed's latency so the storefront's loading states stay honest; both are
// zero in tests.
type Server struct {
	Store Store
	Log   *zap.Logger

	ListDelay time.Duration
	ItemDelay time.Duration
}

func (s *Server) ListHandler() http.HandlerFunc { return s.list }
func (s *Server) GetHandler() http.HandlerFunc  { return s.get }

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	if err := simulateDelay(r.Context(), s.ListDelay); err != nil {
		return // client gave up during the delay
	}

	params := r.URL.Query()
	q := Query{
		Category: params.Get("category"),
		Trending: cast.ToBool(params.Get("trending")),
		Search:   params.Get("search"),
	}

	products, err := s.Store.List(r.Context(), q)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to fetch products", err.Error())
		return
	}

	kit.WriteList(w, http.StatusOK, PayloadsFor(products), len(products))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	if err := simulateDelay(r.Context(), s.ItemDelay); err != nil {
		return
	}

	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "Failed to fetch product", err.Error())
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "no product found with id: "+id)
		return
	}

	kit.WriteData(w, http.StatusOK, PayloadFor(p))
}

func simulateDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
