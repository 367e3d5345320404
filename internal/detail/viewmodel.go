// Package detail models the product detail view: one product resolved by
// id, a selected size, and a quantity feeding the cart.
package detail

import (
	"context"
	"errors"

	"ThreadLine/internal/catalog"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateNotFound // the id has no match; expected, not a failure
	StateFailed   // fetch failed; caller may retry Load
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

var (
	ErrNotLoaded      = errors.New("no product loaded")
	ErrNoSize         = errors.New("select a size first")
	ErrSizeNotOffered = errors.New("size not offered")
)

// CartAdder is the slice of the cart the view model needs.
type CartAdder interface {
	Add(p catalog.Product, size string, qty int) error
}

type ViewModel struct {
	client *catalog.Client
	cart   CartAdder

	state   State
	loadErr error
	product catalog.Product
	size    string
	qty     int
}

func NewViewModel(client *catalog.Client, cart CartAdder) *ViewModel {
	return &ViewModel{client: client, cart: cart, qty: MinQuantity}
}

// Load resolves the product. On success the first offered size is
// preselected and the quantity resets to 1. A failed load keeps the view in
// StateFailed so the caller can prompt for a retry; there is no automatic
// retry.
func (v *ViewModel) Load(ctx context.Context, id string) error {
	v.state = StateLoading
	v.loadErr = nil

	p, err := v.client.Product(ctx, id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		v.state = StateNotFound
		return nil
	case err != nil:
		v.state = StateFailed
		v.loadErr = err
		return err
	}

	v.product = p
	v.state = StateReady
	v.size = ""
	if len(p.Sizes) > 0 {
		v.size = p.Sizes[0]
	}
	v.qty = MinQuantity
	return nil
}

func (v *ViewModel) State() State { return v.state }

func (v *ViewModel) Err() error { return v.loadErr }

func (v *ViewModel) Product() (catalog.Product, bool) {
	return v.product, v.state == StateReady
}

func (v *ViewModel) SelectedSize() string { return v.size }

func (v *ViewModel) SelectSize(size string) error {
	if v.state != StateReady {
		return ErrNotLoaded
	}
	if !v.product.HasSize(size) {
		return ErrSizeNotOffered
	}
	v.size = size
	return nil
}

func (v *ViewModel) Quantity() int { return v.qty }

// AdjustQuantity shifts the quantity by delta, clamped to [1, 10], and
// returns the resulting value.
func (v *ViewModel) AdjustQuantity(delta int) int {
	v.qty = clamp(v.qty+delta, MinQuantity, MaxQuantity)
	return v.qty
}

// AddToCart pushes the current selection into the cart. Without a selected
// size it is rejected and nothing changes.
func (v *ViewModel) AddToCart() error {
	if v.state != StateReady {
		return ErrNotLoaded
	}
	if v.size == "" {
		return ErrNoSize
	}
	return v.cart.Add(v.product, v.size, v.qty)
}

// ReviewCount derives a stable display count from the product id, in the
// range [50, 249].
func (v *ViewModel) ReviewCount() int {
	if v.state != StateReady {
		return 0
	}

	var h int32
	for _, r := range v.product.ID {
		h = (h << 5) - h + int32(r)
	}
	if h < 0 {
		h = -h
	}
	return 50 + int(h%200)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
