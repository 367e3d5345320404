package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ThreadLine/internal/cart"
	"ThreadLine/internal/catalog"
)

var (
	jacket  = catalog.Product{ID: "jacket", Title: "Jacket", PriceCents: 19800, Sizes: []string{"S", "M", "L"}}
	sweater = catalog.Product{ID: "sweater", Title: "Sweater", PriceCents: 14500, Sizes: []string{"M", "L"}}
)

func TestAdd_MergesSameProductAndSize(t *testing.T) {
	c := cart.New()

	require.NoError(t, c.Add(jacket, "M", 2))
	require.NoError(t, c.Add(jacket, "M", 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, jacket.PriceCents*5, c.TotalCents())
}

func TestAdd_SameProductDifferentSizeIsTwoLines(t *testing.T) {
	c := cart.New()

	require.NoError(t, c.Add(jacket, "M", 1))
	require.NoError(t, c.Add(jacket, "L", 1))

	assert.Equal(t, 2, c.Len())
}

func TestAdd_RejectsQuantityBelowOne(t *testing.T) {
	c := cart.New()

	assert.ErrorIs(t, c.Add(jacket, "M", 0), cart.ErrBadQuantity)
	assert.ErrorIs(t, c.Add(jacket, "M", -2), cart.ErrBadQuantity)
	assert.Zero(t, c.Len())
}

func TestRemove(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(jacket, "M", 1))
	require.NoError(t, c.Add(sweater, "L", 2))

	c.Remove("jacket", "M")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, sweater.PriceCents*2, c.TotalCents())

	c.Remove("sweater", "L")
	assert.Zero(t, c.Len())
	assert.Zero(t, c.TotalCents())

	// absent line is a no-op
	c.Remove("sweater", "L")
	assert.Zero(t, c.Len())
}

func TestSetQuantity_Overwrites(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(jacket, "M", 5))

	c.SetQuantity("jacket", "M", 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestSetQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := cart.New()
		require.NoError(t, c.Add(jacket, "M", 3))

		c.SetQuantity("jacket", "M", qty)

		assert.Zero(t, c.Len(), "qty=%d", qty)
		assert.Zero(t, c.TotalCents(), "qty=%d", qty)
	}
}

func TestSetQuantity_AbsentLineIsNoOp(t *testing.T) {
	c := cart.New()
	c.SetQuantity("jacket", "M", 4)
	assert.Zero(t, c.Len())
}

func TestClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(jacket, "M", 1))
	require.NoError(t, c.Add(sweater, "M", 1))

	c.Clear()

	assert.Zero(t, c.Len())
	assert.Zero(t, c.TotalCents())
	assert.Empty(t, c.Lines())
}

func TestLines_KeepInsertionOrder(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(sweater, "M", 1))
	require.NoError(t, c.Add(jacket, "S", 1))
	require.NoError(t, c.Add(sweater, "M", 2)) // merge must not reorder

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "sweater", lines[0].ProductID)
	assert.Equal(t, "jacket", lines[1].ProductID)
}

func TestSubscribe_NotifiedOnEveryMutation(t *testing.T) {
	c := cart.New()

	var calls [][]cart.Line
	c.Subscribe(func(lines []cart.Line) {
		calls = append(calls, lines)
	})

	require.NoError(t, c.Add(jacket, "M", 1))
	c.SetQuantity("jacket", "M", 4)
	c.Remove("jacket", "M")
	c.Clear()

	require.Len(t, calls, 4)
	assert.Equal(t, 4, calls[1][0].Quantity)
	assert.Empty(t, calls[2])
}

func TestSubscribe_NoOpMutationsDoNotNotify(t *testing.T) {
	c := cart.New()

	notified := 0
	c.Subscribe(func([]cart.Line) { notified++ })

	c.Remove("ghost", "M")
	c.SetQuantity("ghost", "M", 3)

	assert.Zero(t, notified)
}
