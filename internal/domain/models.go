package domain

import "time"

// TableStatus состояние столика
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved:
		return true
	}
	return false
}

// Table столик в зале
type Table struct {
	ID       int64       `json:"id"`
	Number   int         `json:"number"`
	Capacity int         `json:"capacity"`
	Status   TableStatus `json:"status"`
}

// Category раздел меню
type Category string

const (
	CategoryFood    Category = "food"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

// Categories in menu display order.
var Categories = []Category{CategoryFood, CategoryDrink, CategoryDessert}

// DrinkType подтип напитка
type DrinkType string

const (
	DrinkAlcoholic    DrinkType = "alcoholic"
	DrinkNonAlcoholic DrinkType = "non_alcoholic"
	DrinkHot          DrinkType = "hot"
)

// Difficulty сложность приготовления
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MenuItem позиция меню
type MenuItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    Category   `json:"category"`
	DrinkType   DrinkType  `json:"drink_type,omitempty"`
	PrepTime    *int       `json:"prep_time,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Available   *bool      `json:"available,omitempty"`
}

// IsAvailable reports availability; a missing flag means the item can be ordered.
func (m MenuItem) IsAvailable() bool {
	return m.Available == nil || *m.Available
}

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderOpen   OrderStatus = "open"
	OrderUnpaid OrderStatus = "unpaid"
	OrderPaid   OrderStatus = "paid"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderOpen, OrderUnpaid, OrderPaid:
		return true
	}
	return false
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Order заказ столика
type Order struct {
	ID            int64          `json:"id"`
	TableID       int64          `json:"table_id"`
	UserID        int64          `json:"user_id"`
	Items         []OrderItem    `json:"items"`
	Status        OrderStatus    `json:"status"`
	Total         float64        `json:"total"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"`
	ClosedAt      *time.Time     `json:"closed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// OrderItemStatus статус позиции заказа
type OrderItemStatus string

const (
	ItemPending   OrderItemStatus = "pending"
	ItemPreparing OrderItemStatus = "preparing"
	ItemReady     OrderItemStatus = "ready"
	ItemDelivered OrderItemStatus = "delivered"
)

func (s OrderItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemPreparing, ItemReady, ItemDelivered:
		return true
	}
	return false
}

// Next returns the status that follows s in the kitchen-to-table chain.
// The second result is false for delivered and unknown statuses.
func (s OrderItemStatus) Next() (OrderItemStatus, bool) {
	switch s {
	case ItemPending:
		return ItemPreparing, true
	case ItemPreparing:
		return ItemReady, true
	case ItemReady:
		return ItemDelivered, true
	}
	return "", false
}

// OrderItem позиция заказа
type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	MenuItemID   int64           `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    float64         `json:"unit_price"`
	TotalPrice   float64         `json:"total_price"`
	Status       OrderItemStatus `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LineTotal is the server's total_price, or quantity × unit price when the
// server left it empty.
func (it OrderItem) LineTotal() float64 {
	if it.TotalPrice > 0 {
		return it.TotalPrice
	}
	return float64(it.Quantity) * it.UnitPrice
}

// Role роль пользователя, определяет панель
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleKitchen  Role = "kitchen"
	RoleWaiter   Role = "waiter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleKitchen, RoleWaiter:
		return true
	}
	return false
}

// User пользователь удалённого API
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
