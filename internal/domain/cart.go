package domain

// CartLine строка корзины гостя
type CartLine struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

func (l CartLine) Total() float64 { return float64(l.Quantity) * l.UnitPrice }

// Cart черновик заказа, живёт в сессии до отправки на сервер
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges qty of item into the cart. Non-positive quantities are ignored.
func (c *Cart) Add(item MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == item.ID {
			c.Lines[i].Quantity += qty
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   qty,
	})
}

// SetQuantity replaces the quantity of a line; zero or less removes it.
func (c *Cart) SetQuantity(menuItemID int64, qty int) {
	if qty <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Remove(menuItemID int64) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.MenuItemID != menuItemID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

func (c *Cart) Clear() { c.Lines = nil }

// Deduct subtracts the quantities of lines already ordered. Lines that drop
// to zero are removed; portions added meanwhile stay.
func (c *Cart) Deduct(lines []CartLine) {
	for _, l := range lines {
		for i := range c.Lines {
			if c.Lines[i].MenuItemID == l.MenuItemID {
				c.SetQuantity(l.MenuItemID, c.Lines[i].Quantity-l.Quantity)
				break
			}
		}
	}
}

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

// Count is the number of portions, not lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c Cart) Total() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Total()
	}
	return sum
}

// Clone returns a copy that shares no slice with c.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
