package domain

// CartEntry is a record at a position in the cart.
type CartEntry struct {
	Position int    `json:"position"`
	Record   Record `json:"record"`
}

// Cart is an ordered list of added records. Adding the same record twice
// produces two entries.
type Cart struct {
	items []Record
}

// NewCart returns a cart holding records in the given order.
func NewCart(records ...Record) Cart {
	c := Cart{}
	for _, r := range records {
		c.Add(r)
	}
	return c
}

// Add appends r to the end of the cart.
func (c *Cart) Add(r Record) {
	c.items = append(c.items, r)
}

// RemoveAt removes the entry at position and shifts later entries down by
// one. Positions outside [0, Len()) leave the cart unchanged and return false.
func (c *Cart) RemoveAt(position int) bool {
	if position < 0 || position >= len(c.items) {
		return false
	}
	c.items = append(c.items[:position:position], c.items[position+1:]...)
	return true
}

// Total returns the sum of all entry prices; zero for an empty cart.
func (c Cart) Total() int64 {
	var total int64
	for _, r := range c.items {
		total += r.Price
	}
	return total
}

// Len returns the number of entries.
func (c Cart) Len() int {
	return len(c.items)
}

// Entries returns the entries in cart order.
func (c Cart) Entries() []CartEntry {
	entries := make([]CartEntry, len(c.items))
	for i, r := range c.items {
		entries[i] = CartEntry{Position: i, Record: r}
	}
	return entries
}

// At returns the record at position.
func (c Cart) At(position int) (Record, bool) {
	if position < 0 || position >= len(c.items) {
		return Record{}, false
	}
	return c.items[position], true
}

// Clone returns a cart that shares no backing storage with c.
func (c Cart) Clone() Cart {
	if c.items == nil {
		return Cart{}
	}
	items := make([]Record, len(c.items))
	copy(items, c.items)
	return Cart{items: items}
}
