package catalog

import (
	"context"
	"sync"
)

// MemStore is the default catalog backend: the fixed demo collection held in
// insertion order.
type MemStore struct {
	mu       sync.RWMutex
	products []Product
	byID     map[string]int
}

func NewMemStore() *MemStore {
	return NewMemStoreWith(demoCatalog())
}

func NewMemStoreWith(products []Product) *MemStore {
	s := &MemStore{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context, q Query) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if Match(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func demoCatalog() []Product {
	return []Product{
		{
			ID:                 "selvedge-denim-jacket",
			Title:              "Selvedge Denim Jacket",
			Image:              "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&w=800&q=80",
			Rating:             4.8,
			PriceCents:         19800,
			OriginalPriceCents: 23000,
			Discount:           "15% off",
			Category:           "Outerwear",
			Trending:           true,
			Sizes:              []string{"S", "M", "L", "XL"},
		},
		{
			ID:                 "merino-crew-sweater",
			Title:              "Merino Crew Sweater",
			Image:              "https://images.unsplash.com/photo-1483985988355-763728e1935b?auto=format&fit=crop&w=800&q=80",
			Rating:             4.6,
			PriceCents:         14500,
			OriginalPriceCents: 17200,
			Discount:           "16% off",
			Category:           "Knitwear",
			Trending:           true,
			Sizes:              []string{"S", "M", "L", "XL"},
		},
		{
			ID:                 "heritage-oxford-shirt",
			Title:              "Heritage Oxford Shirt",
			Image:              "https://images.unsplash.com/photo-1503341455253-b2e723bb3dbb?auto=format&fit=crop&w=800&q=80",
			Rating:             4.5,
			PriceCents:         9200,
			OriginalPriceCents: 10800,
			Discount:           "15% off",
			Category:           "Shirts",
			Trending:           false,
			Sizes:              []string{"S", "M", "L", "XL", "XXL"},
		},
		{
			ID:                 "tailored-wool-blazer",
			Title:              "Tailored Wool Blazer",
			Image:              "https://images.unsplash.com/photo-1503342217505-b0a15ec3261c?auto=format&fit=crop&w=800&q=80",
			Rating:             4.6,
			PriceCents:         32000,
			OriginalPriceCents: 40000,
			Discount:           "20% off",
			Category:           "Tailoring",
			Trending:           true,
			Sizes:              []string{"38", "40", "42", "44"},
		},
		{
			ID:                 "pleated-wool-trousers",
			Title:              "Pleated Wool Trousers",
			Image:              "https://images.unsplash.com/photo-1489987707025-afc232f7ea0f?auto=format&fit=crop&w=800&q=80",
			Rating:             4.4,
			PriceCents:         21000,
			OriginalPriceCents: 24800,
			Discount:           "15% off",
			Category:           "Trousers",
			Trending:           false,
			Sizes:              []string{"30", "32", "34", "36"},
		},
		{
			ID:                 "linen-resort-shirt",
			Title:              "Linen Resort Shirt",
			Image:              "https://images.unsplash.com/photo-1487222477894-8943e31ef7b2?auto=format&fit=crop&w=800&q=80",
			Rating:             4.3,
			PriceCents:         12800,
			OriginalPriceCents: 15000,
			Discount:           "15% off",
			Category:           "Shirts",
			Trending:           false,
			Sizes:              []string{"S", "M", "L"},
		},
		{
			ID:                 "cashmere-shawl-cardigan",
			Title:              "Cashmere Shawl Cardigan",
			Image:              "https://images.unsplash.com/photo-1509783236416-c9ad59bae472?auto=format&fit=crop&w=800&q=80",
			Rating:             4.7,
			PriceCents:         26500,
			OriginalPriceCents: 31200,
			Discount:           "15% off",
			Category:           "Knitwear",
			Trending:           true,
			Sizes:              []string{"M", "L", "XL"},
		},
		{
			ID:         "garment-dyed-chinos",
			Title:      "Garment-Dyed Chinos",
			Image:      "https://images.unsplash.com/photo-1473966968600-fa801b869a1a?auto=format&fit=crop&w=800&q=80",
			Rating:     4.2,
			PriceCents: 11800,
			Category:   "Trousers",
			Trending:   false,
			Sizes:      []string{"30", "32", "34", "36", "38"},
		},
		{
			ID:         "suede-chukka-boots",
			Title:      "Suede Chukka Boots",
			Image:      "https://images.unsplash.com/photo-1520639888713-7851133b1ed0?auto=format&fit=crop&w=800&q=80",
			Rating:     4.5,
			PriceCents: 24500,
			Category:   "Footwear",
			Trending:   true,
			Sizes:      []string{"8", "9", "10", "11", "12"},
		},
		{
			ID:                 "brushed-flannel-overshirt",
			Title:              "Brushed Flannel Overshirt",
			Image:              "https://images.unsplash.com/photo-1434389677669-e08b4cac3105?auto=format&fit=crop&w=800&q=80",
			Rating:             4.4,
			PriceCents:         13400,
			OriginalPriceCents: 15800,
			Discount:           "15% off",
			Category:           "Outerwear",
			Trending:           false,
			Sizes:              []string{"S", "M", "L", "XL"},
		},
		{
			ID:         "ribbed-beanie",
			Title:      "Ribbed Lambswool Beanie",
			Image:      "https://images.unsplash.com/photo-1576871337632-b9aef4c17ab9?auto=format&fit=crop&w=800&q=80",
			Rating:     4.1,
			PriceCents: 4800,
			Category:   "Accessories",
			Trending:   false,
			Sizes:      []string{"OS"},
		},
		{
			ID:         "leather-derby-shoes",
			Title:      "Leather Derby Shoes",
			Image:      "https://images.unsplash.com/photo-1449505278894-297fdb3edbc1?auto=format&fit=crop&w=800&q=80",
			Rating:     4.6,
			PriceCents: 28900,
			Category:   "Footwear",
			Trending:   false,
			Sizes:      []string{"8", "9", "10", "11"},
		},
	}
}
