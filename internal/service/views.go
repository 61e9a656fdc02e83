package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"frontdesk/internal/domain"
)

// Производные представления. Все суммы только для отображения.

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// OrderTotal sums item totals; an order without items shows the server total.
func OrderTotal(o domain.Order) float64 {
	if len(o.Items) == 0 {
		return round2(o.Total)
	}
	var sum float64
	for _, it := range o.Items {
		sum += it.LineTotal()
	}
	return round2(sum)
}

// TableSummary счётчики столиков по статусам
type TableSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Reserved  int `json:"reserved"`
	Seats     int `json:"seats"`
	FreeSeats int `json:"free_seats"`
}

func SummarizeTables(tables []domain.Table) TableSummary {
	var s TableSummary
	for _, t := range tables {
		s.Total++
		s.Seats += t.Capacity
		switch t.Status {
		case domain.TableAvailable:
			s.Available++
			s.FreeSeats += t.Capacity
		case domain.TableOccupied:
			s.Occupied++
		case domain.TableReserved:
			s.Reserved++
		}
	}
	return s
}

// SortMenu orders items in place: "price_asc", "price_desc", or by name.
func SortMenu(items []domain.MenuItem, mode string) {
	byName := func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	}
	switch mode {
	case "price_asc":
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Price != items[j].Price {
				return items[i].Price < items[j].Price
			}
			return byName(i, j)
		})
	case "price_desc":
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Price != items[j].Price {
				return items[i].Price > items[j].Price
			}
			return byName(i, j)
		})
	default:
		sort.SliceStable(items, byName)
	}
}

// MenuSection раздел меню для вывода
type MenuSection struct {
	Category domain.Category   `json:"category"`
	Items    []domain.MenuItem `json:"items"`
}

// GroupMenu splits already sorted items by category, in menu order.
// Empty categories are left out.
func GroupMenu(items []domain.MenuItem) []MenuSection {
	by := make(map[domain.Category][]domain.MenuItem)
	for _, m := range items {
		by[m.Category] = append(by[m.Category], m)
	}
	out := make([]MenuSection, 0, len(by))
	for _, c := range domain.Categories {
		if len(by[c]) > 0 {
			out = append(out, MenuSection{Category: c, Items: by[c]})
			delete(by, c)
		}
	}
	// categories the client does not know about go last
	rest := make([]string, 0, len(by))
	for c := range by {
		rest = append(rest, string(c))
	}
	sort.Strings(rest)
	for _, c := range rest {
		out = append(out, MenuSection{Category: domain.Category(c), Items: by[domain.Category(c)]})
	}
	return out
}

// Ticket позиция в очереди кухни
type Ticket struct {
	Item    domain.OrderItem `json:"item"`
	Waiting time.Duration    `json:"waiting"`
	Overdue bool             `json:"overdue"`
	// NextStatus is empty when the kitchen has nothing left to do.
	NextStatus domain.OrderItemStatus `json:"next_status,omitempty"`
}

// KitchenQueue builds tickets for pending and preparing items, oldest first.
// An item is overdue once it waited longer than its menu prep time.
func KitchenQueue(items []domain.OrderItem, menu map[int64]domain.MenuItem, now time.Time) []Ticket {
	out := make([]Ticket, 0, len(items))
	for _, it := range items {
		if it.Status != domain.ItemPending && it.Status != domain.ItemPreparing {
			continue
		}
		t := Ticket{Item: it}
		if !it.CreatedAt.IsZero() {
			t.Waiting = now.Sub(it.CreatedAt).Truncate(time.Second)
		}
		if m, ok := menu[it.MenuItemID]; ok && m.PrepTime != nil && *m.PrepTime > 0 {
			t.Overdue = t.Waiting > time.Duration(*m.PrepTime)*time.Minute
		}
		t.NextStatus, _ = it.Status.Next()
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Item, out[j].Item
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}

// Commission is rate × sum of paid orders owned by userID. Display only.
func Commission(orders []domain.Order, userID int64, rate float64) float64 {
	var sum float64
	for _, o := range orders {
		if o.UserID == userID && o.Status == domain.OrderPaid {
			sum += OrderTotal(o)
		}
	}
	return round2(sum * rate)
}

// PaidRevenue sums paid orders closed on the same day as now.
func PaidRevenue(orders []domain.Order, now time.Time) float64 {
	y, m, d := now.Date()
	var sum float64
	for _, o := range orders {
		if o.Status != domain.OrderPaid || o.ClosedAt == nil {
			continue
		}
		cy, cm, cd := o.ClosedAt.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			sum += OrderTotal(o)
		}
	}
	return round2(sum)
}

// CheckTransition allows only the next step of the item status chain.
func CheckTransition(from, to domain.OrderItemStatus) error {
	next, ok := from.Next()
	if !ok || next != to {
		return ErrInvalidTransition
	}
	return nil
}
