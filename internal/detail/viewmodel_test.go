package detail_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ThreadLine/internal/cart"
	"ThreadLine/internal/catalog"
	"ThreadLine/internal/detail"
)

var jacket = catalog.Product{
	ID:         "selvedge-denim-jacket",
	Title:      "Selvedge Denim Jacket",
	Category:   "Outerwear",
	PriceCents: 19800,
	Sizes:      []string{"S", "M", "L"},
}

func newViewModel(t *testing.T) (*detail.ViewModel, *cart.Cart) {
	t.Helper()

	s := &catalog.Server{
		Store: catalog.NewMemStoreWith([]catalog.Product{jacket}),
		Log:   zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Get("/products/{id}", s.GetHandler())
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	c := cart.New()
	return detail.NewViewModel(catalog.NewClient(ts.URL), c), c
}

func TestLoad_ReadyStateWithDefaults(t *testing.T) {
	vm, _ := newViewModel(t)

	require.NoError(t, vm.Load(context.Background(), "selvedge-denim-jacket"))

	assert.Equal(t, detail.StateReady, vm.State())
	p, ok := vm.Product()
	require.True(t, ok)
	assert.Equal(t, "Selvedge Denim Jacket", p.Title)

	// first offered size preselected, quantity reset
	assert.Equal(t, "S", vm.SelectedSize())
	assert.Equal(t, 1, vm.Quantity())
}

func TestLoad_NotFoundIsDistinctFromFailure(t *testing.T) {
	vm, _ := newViewModel(t)

	require.NoError(t, vm.Load(context.Background(), "ghost"))
	assert.Equal(t, detail.StateNotFound, vm.State())
	assert.NoError(t, vm.Err())

	_, ok := vm.Product()
	assert.False(t, ok)
}

func TestLoad_FetchFailure(t *testing.T) {
	c := cart.New()
	vm := detail.NewViewModel(catalog.NewClient("http://127.0.0.1:1"), c)

	err := vm.Load(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, detail.StateFailed, vm.State())
	assert.ErrorIs(t, vm.Err(), catalog.ErrUnavailable)
}

func TestSelectSize(t *testing.T) {
	vm, _ := newViewModel(t)
	require.NoError(t, vm.Load(context.Background(), jacket.ID))

	require.NoError(t, vm.SelectSize("L"))
	assert.Equal(t, "L", vm.SelectedSize())

	assert.ErrorIs(t, vm.SelectSize("XXL"), detail.ErrSizeNotOffered)
	assert.Equal(t, "L", vm.SelectedSize())
}

func TestAdjustQuantity_ClampsToOneThroughTen(t *testing.T) {
	vm, _ := newViewModel(t)
	require.NoError(t, vm.Load(context.Background(), jacket.ID))

	assert.Equal(t, 1, vm.AdjustQuantity(-5))
	assert.Equal(t, 10, vm.AdjustQuantity(42))
	assert.Equal(t, 9, vm.AdjustQuantity(-1))
}

func TestAddToCart(t *testing.T) {
	vm, c := newViewModel(t)
	require.NoError(t, vm.Load(context.Background(), jacket.ID))

	vm.AdjustQuantity(2) // quantity 3
	require.NoError(t, vm.AddToCart())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, jacket.ID, lines[0].ProductID)
	assert.Equal(t, "S", lines[0].Size)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddToCart_RejectedWithoutProductOrSize(t *testing.T) {
	vm, c := newViewModel(t)

	// nothing loaded yet
	assert.ErrorIs(t, vm.AddToCart(), detail.ErrNotLoaded)
	assert.Zero(t, c.Len())
}

func TestAddToCart_RejectedWithoutSize(t *testing.T) {
	s := &catalog.Server{
		Store: catalog.NewMemStoreWith([]catalog.Product{{
			ID: "gift-card", Title: "Gift Card", Category: "Accessories", PriceCents: 5000,
		}}),
		Log: zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Get("/products/{id}", s.GetHandler())
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	c := cart.New()
	vm := detail.NewViewModel(catalog.NewClient(ts.URL), c)
	require.NoError(t, vm.Load(context.Background(), "gift-card"))

	// a product with no sizes never gets a default selection
	assert.Empty(t, vm.SelectedSize())
	assert.ErrorIs(t, vm.AddToCart(), detail.ErrNoSize)
	assert.Zero(t, c.Len())
}

func TestReviewCount_StablePerProduct(t *testing.T) {
	vm, _ := newViewModel(t)
	require.NoError(t, vm.Load(context.Background(), jacket.ID))

	n := vm.ReviewCount()
	assert.GreaterOrEqual(t, n, 50)
	assert.LessOrEqual(t, n, 249)
	assert.Equal(t, n, vm.ReviewCount())
}
