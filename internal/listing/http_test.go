package listing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ThreadLine/internal/catalog"
	"ThreadLine/internal/listing"
)

func newBrowseTS(t *testing.T, products []catalog.Product) *httptest.Server {
	t.Helper()

	s := &listing.Server{
		Store: catalog.NewMemStoreWith(products),
		Log:   zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Get("/products/browse", s.BrowseHandler())

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func browse(t *testing.T, url string) map[string]any {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)
	return env.Data
}

func browseCatalog() []catalog.Product {
	return []catalog.Product{
		product("oxford", "Shirts", 9200),
		product("blazer", "Tailoring", 32000),
		product("linen", "Shirts", 12800),
		product("chinos", "Trousers", 11800),
	}
}

func ids(data map[string]any) []string {
	products := data["products"].([]any)
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.(map[string]any)["id"].(string))
	}
	return out
}

func TestBrowse_Defaults(t *testing.T) {
	ts := newBrowseTS(t, browseCatalog())

	data := browse(t, ts.URL+"/products/browse")

	assert.Equal(t, float64(4), data["total"])
	assert.Equal(t, float64(1), data["total_pages"])
	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, []string{"oxford", "blazer", "linen", "chinos"}, ids(data))
	assert.Equal(t, "$92", data["min_price"])
	assert.Equal(t, "$320", data["max_price"])
}

func TestBrowse_CategoryAndPriceParams(t *testing.T) {
	ts := newBrowseTS(t, browseCatalog())

	data := browse(t, ts.URL+"/products/browse?category=Shirts&category=Trousers&max_price=120")

	// 120 dollars keeps the oxford and the chinos
	assert.Equal(t, []string{"oxford", "chinos"}, ids(data))
}

func TestBrowse_Sorting(t *testing.T) {
	ts := newBrowseTS(t, browseCatalog())

	data := browse(t, ts.URL+"/products/browse?sort=price_asc")
	assert.Equal(t, []string{"oxford", "chinos", "linen", "blazer"}, ids(data))

	data = browse(t, ts.URL+"/products/browse?sort=price_desc")
	assert.Equal(t, []string{"blazer", "linen", "chinos", "oxford"}, ids(data))
}

func TestBrowse_MalformedParamsFallBackToDefaults(t *testing.T) {
	ts := newBrowseTS(t, browseCatalog())

	data := browse(t, ts.URL+"/products/browse?page=banana&min_price=free&sort=upside-down")

	assert.Equal(t, float64(1), data["page"])
	assert.Equal(t, float64(4), data["total"])
	assert.Equal(t, []string{"oxford", "blazer", "linen", "chinos"}, ids(data))
}

func TestBrowse_PageClamping(t *testing.T) {
	products := make([]catalog.Product, 0, 12)
	for i := 0; i < 12; i++ {
		products = append(products, product(string(rune('a'+i)), "Shirts", int64(1000*(i+1))))
	}
	ts := newBrowseTS(t, products)

	data := browse(t, ts.URL+"/products/browse?page=99")
	assert.Equal(t, float64(2), data["page"])
	assert.Len(t, ids(data), 3)
}

func TestBrowse_EmptyResultIsSuccess(t *testing.T) {
	ts := newBrowseTS(t, browseCatalog())

	data := browse(t, ts.URL+"/products/browse?category=Footwear")

	assert.Equal(t, float64(0), data["total"])
	assert.Equal(t, float64(0), data["total_pages"])
	assert.Empty(t, data["products"])
}
