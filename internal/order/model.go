package order

import "github.com/shopspring/decimal"

type Order struct {
	ID        string
	Customer  string
	Email     string
	Whatsapp  *string
	Address   string
	Date      string
	Amount    decimal.Decimal
	Currency  string
	Status    Status
	Timestamp int64
	Items     []Item
}

// Item is a line captured at order time. Name and Price are snapshots and
// do not follow later catalog edits.
type Item struct {
	ID        string
	ProductID *string
	Name      string
	Quantity  float64
	Price     float64
}

// CreateInput is the checkout payload. Amount wins over Total when both are
// set; Total is the legacy display string such as "LKR 12,345".
type CreateInput struct {
	ID        string           `json:"id"`
	Customer  string           `json:"customer"`
	Email     string           `json:"email"`
	Whatsapp  *string          `json:"whatsapp"`
	Address   string           `json:"address"`
	Date      string           `json:"date"`
	Total     string           `json:"total"`
	Amount    *decimal.Decimal `json:"amount"`
	Currency  string           `json:"currency"`
	Status    Status           `json:"status"`
	Timestamp int64            `json:"timestamp"`
	Items     []ItemInput      `json:"items"`
}

type ItemInput struct {
	ProductID *string `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

type ListFilter struct {
	Email string
}
