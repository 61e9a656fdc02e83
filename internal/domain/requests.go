package domain

// Тела запросов к удалённому API.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type TableInput struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

type TableStatusRequest struct {
	Status TableStatus `json:"status"`
}

type MenuItemInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    Category   `json:"category"`
	DrinkType   DrinkType  `json:"drink_type,omitempty"`
	PrepTime    *int       `json:"prep_time,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Available   *bool      `json:"available,omitempty"`
}

// InputOf returns the writable fields of m, used for partial edits.
func InputOf(m MenuItem) MenuItemInput {
	return MenuItemInput{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		DrinkType:   m.DrinkType,
		PrepTime:    m.PrepTime,
		Difficulty:  m.Difficulty,
		Available:   m.Available,
	}
}

type OrderCreateRequest struct {
	TableID int64 `json:"table_id"`
}

type OrderItemCreateRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type OrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type OrderItemStatusRequest struct {
	Status OrderItemStatus `json:"status"`
}

type CloseOrderRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// OrderQuery фильтр списка заказов на стороне сервера
type OrderQuery struct {
	Status  OrderStatus
	TableID int64
	UserID  int64
}
