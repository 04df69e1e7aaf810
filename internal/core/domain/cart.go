package domain

import "fmt"

// Product is the reference a caller hands to the cart when adding an item.
// MaxQuantity is the stock known at the time of the call.
type Product struct {
	ID          string
	Name        string
	Price       float64
	MaxQuantity int
	Image       string
}

// LineItem is one product-quantity pair in the cart.
// Invariant: 1 <= Quantity <= MaxQuantity.
type LineItem struct {
	ProductID   string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"maxQuantity"`
	Image       string  `json:"image"`
}

// Subtotal is price times quantity.
func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// StockNotice is the user-facing message produced when a requested quantity
// had to be clamped to the available stock.
type StockNotice struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Message   string `json:"message"`
}

// Transition is the result of a pure cart state change: the list to commit,
// an optional notice, and the remote commands that mirror the change.
type Transition struct {
	Items  []LineItem
	Notice *StockNotice
	Sync   []SyncCommand
}

// ClampQuantity caps requested at max. A notice is returned whenever the
// value had to be reduced.
func ClampQuantity(productID string, requested, max int) (int, *StockNotice) {
	if max < 0 {
		max = 0
	}
	if requested <= max {
		return requested, nil
	}
	return max, &StockNotice{
		ProductID: productID,
		Requested: requested,
		Available: max,
		Message:   fmt.Sprintf("only %d units of this product are available", max),
	}
}

// Total sums price times quantity over items.
func Total(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func indexOf(items []LineItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

func withoutIndex(items []LineItem, idx int) []LineItem {
	out := make([]LineItem, 0, len(items))
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}

// ApplyAdd adds requested units of p. A non-positive request counts as one.
// The mirrored command always carries the requested amount, not the clamped one.
func ApplyAdd(items []LineItem, p Product, requested int) Transition {
	if requested <= 0 {
		requested = 1
	}
	tr := Transition{Sync: []SyncCommand{NewSyncCommand(SyncAdd, p.ID, requested)}}

	idx := indexOf(items, p.ID)
	if idx >= 0 {
		next := cloneItems(items)
		qty, notice := ClampQuantity(p.ID, next[idx].Quantity+requested, p.MaxQuantity)
		tr.Notice = notice
		if qty <= 0 {
			tr.Items = withoutIndex(next, idx)
			return tr
		}
		next[idx].Quantity = qty
		next[idx].MaxQuantity = p.MaxQuantity
		tr.Items = next
		return tr
	}

	qty, notice := ClampQuantity(p.ID, requested, p.MaxQuantity)
	tr.Notice = notice
	if qty <= 0 {
		tr.Items = cloneItems(items)
		return tr
	}
	tr.Items = append(cloneItems(items), LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    qty,
		MaxQuantity: p.MaxQuantity,
		Image:       p.Image,
	})
	return tr
}

// ApplyUpdateQuantity sets the quantity of an existing line. Values above the
// line's MaxQuantity are clamped; values <= 0 drop the line.
//
// Remote mirroring: an increase is sent as an add of the delta, a decrease as
// a replace, a drop as a delete. Unknown products are a no-op.
func ApplyUpdateQuantity(items []LineItem, productID string, quantity int) Transition {
	idx := indexOf(items, productID)
	if idx < 0 {
		return Transition{Items: cloneItems(items)}
	}

	current := items[idx]
	qty, notice := ClampQuantity(productID, quantity, current.MaxQuantity)
	tr := Transition{Notice: notice}

	if qty <= 0 {
		tr.Items = withoutIndex(items, idx)
		tr.Sync = []SyncCommand{NewSyncCommand(SyncDelete, productID, 0)}
		return tr
	}

	next := cloneItems(items)
	next[idx].Quantity = qty
	tr.Items = next

	switch {
	case qty > current.Quantity:
		tr.Sync = []SyncCommand{NewSyncCommand(SyncAdd, productID, qty-current.Quantity)}
	case qty < current.Quantity:
		tr.Sync = []SyncCommand{NewSyncCommand(SyncReplace, productID, qty)}
	}
	return tr
}

// ApplyRemove drops the line for productID. The remote delete is issued even
// when the line is not held locally.
func ApplyRemove(items []LineItem, productID string) Transition {
	tr := Transition{Sync: []SyncCommand{NewSyncCommand(SyncDelete, productID, 0)}}
	if idx := indexOf(items, productID); idx >= 0 {
		tr.Items = withoutIndex(items, idx)
		return tr
	}
	tr.Items = cloneItems(items)
	return tr
}
