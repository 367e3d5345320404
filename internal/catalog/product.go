package catalog

// Product is a single catalog record. Products are loaded once at startup
// and never mutated; prices live in minor-unit cents and are formatted for
// display only at the HTTP boundary.
type Product struct {
	ID                 string
	Title              string
	Image              string
	Rating             float64
	PriceCents         int64
	OriginalPriceCents int64 // 0 when the product was never marked down
	Discount           string
	Category           string
	Trending           bool
	Sizes              []string
}

func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
