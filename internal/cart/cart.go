// Package cart holds one shopping cart per browsing session. A cart is an
// ordered set of lines keyed by (product id, size): the same product in two
// sizes is two distinct lines.
package cart

import (
	"errors"
	"sync"

	"ThreadLine/internal/catalog"
)

var ErrBadQuantity = errors.New("quantity must be at least 1")

type Line struct {
	Product   catalog.Product
	ProductID string
	Size      string
	Quantity  int
}

type lineKey struct {
	productID string
	size      string
}

// Cart is an explicit store object: all reads go through its methods and
// every mutation notifies subscribers. Lines keep insertion order; updating
// an existing line leaves its position unchanged.
type Cart struct {
	mu    sync.Mutex
	order []lineKey
	lines map[lineKey]*Line
	subs  []func([]Line)
}

func New() *Cart {
	return &Cart{lines: make(map[lineKey]*Line)}
}

// Subscribe registers fn to run synchronously after every mutation with a
// snapshot of the lines. Callbacks must not call back into the cart.
func (c *Cart) Subscribe(fn func([]Line)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Add merges qty into the (product, size) line, appending a new line when
// none exists. A quantity below 1 is rejected with no state change.
func (c *Cart) Add(p catalog.Product, size string, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := lineKey{productID: p.ID, size: size}
	if line, ok := c.lines[k]; ok {
		line.Quantity += qty
	} else {
		c.order = append(c.order, k)
		c.lines[k] = &Line{Product: p, ProductID: p.ID, Size: size, Quantity: qty}
	}

	c.notifyLocked()
	return nil
}

// Remove deletes the matching line; absent lines are a no-op.
func (c *Cart) Remove(productID, size string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.removeLocked(lineKey{productID: productID, size: size}) {
		c.notifyLocked()
	}
}

// SetQuantity overwrites a line's quantity; unlike Add it never merges.
// Zero or negative behaves exactly as Remove. An absent line is a no-op.
func (c *Cart) SetQuantity(productID, size string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := lineKey{productID: productID, size: size}
	if qty <= 0 {
		if c.removeLocked(k) {
			c.notifyLocked()
		}
		return
	}

	line, ok := c.lines[k]
	if !ok {
		return
	}
	line.Quantity = qty
	c.notifyLocked()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = nil
	c.lines = make(map[lineKey]*Line)
	c.notifyLocked()
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// TotalCents sums unit price times quantity over all lines.
func (c *Cart) TotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, k := range c.order {
		line := c.lines[k]
		total += line.Product.PriceCents * int64(line.Quantity)
	}
	return total
}

func (c *Cart) removeLocked(k lineKey) bool {
	if _, ok := c.lines[k]; !ok {
		return false
	}
	delete(c.lines, k)
	for i, o := range c.order {
		if o == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *Cart) snapshotLocked() []Line {
	out := make([]Line, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, *c.lines[k])
	}
	return out
}

func (c *Cart) notifyLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
}
