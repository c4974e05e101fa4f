package domain

type Image struct {
	ID  int64
	URL string
}

// MenuItem is a snapshot of a catalog item as it was when the cart last saw it.
type MenuItem struct {
	ID                int64
	Name              string
	Description       string
	UnitPrice         int64
	AvailableQuantity int64
	Images            []Image
}

type CartEntry struct {
	MenuItem
	PurchaseQuantity int64
}

func (e CartEntry) LineTotal() int64 {
	return e.UnitPrice * e.PurchaseQuantity
}

// Cart keeps entries in insertion order. Uniqueness by item ID is maintained
// by the manager's mutations, never recomputed on read.
type Cart struct {
	Entries []CartEntry
}

func (c Cart) Find(id int64) (CartEntry, int, bool) {
	for i, e := range c.Entries {
		if e.ID == id {
			return e, i, true
		}
	}
	return CartEntry{}, -1, false
}

func (c Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

func (c Cart) TotalQuantity() int64 {
	var n int64
	for _, e := range c.Entries {
		n += e.PurchaseQuantity
	}
	return n
}

func (c Cart) Subtotal() int64 {
	var total int64
	for _, e := range c.Entries {
		total += e.LineTotal()
	}
	return total
}

func (c Cart) Clone() Cart {
	if c.Entries == nil {
		return Cart{}
	}
	out := make([]CartEntry, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e
		if e.Images != nil {
			out[i].Images = append([]Image(nil), e.Images...)
		}
	}
	return Cart{Entries: out}
}

// Equal compares carts structurally, entry order included.
func (c Cart) Equal(other Cart) bool {
	if len(c.Entries) != len(other.Entries) {
		return false
	}
	for i := range c.Entries {
		a, b := c.Entries[i], other.Entries[i]
		if a.ID != b.ID || a.Name != b.Name || a.Description != b.Description ||
			a.UnitPrice != b.UnitPrice || a.AvailableQuantity != b.AvailableQuantity ||
			a.PurchaseQuantity != b.PurchaseQuantity || len(a.Images) != len(b.Images) {
			return false
		}
		for j := range a.Images {
			if a.Images[j] != b.Images[j] {
				return false
			}
		}
	}
	return true
}

// ListedItem is a catalog item annotated with how many units of it are in the cart.
type ListedItem struct {
	MenuItem
	InCart   int64
	MaxedOut bool
	SoldOut  bool
}
