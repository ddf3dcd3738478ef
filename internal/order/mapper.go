package order

import "github.com/shopspring/decimal"

// Response is the wire shape of an order. Amount is a decimal string and
// Total the formatted display value.
type Response struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	Email     string          `json:"email"`
	Whatsapp  *string         `json:"whatsapp"`
	Address   string          `json:"address"`
	Date      string          `json:"date"`
	Total     string          `json:"total"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    Status          `json:"status"`
	Timestamp int64           `json:"timestamp"`
	Items     []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	ID        string  `json:"id"`
	ProductID *string `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

func ToResponse(o *Order) *Response {
	if o == nil {
		return nil
	}

	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse(it))
	}

	return &Response{
		ID:        o.ID,
		Customer:  o.Customer,
		Email:     o.Email,
		Whatsapp:  o.Whatsapp,
		Address:   o.Address,
		Date:      o.Date,
		Total:     FormatTotal(o.Amount, o.Currency),
		Amount:    o.Amount,
		Currency:  o.Currency,
		Status:    o.Status,
		Timestamp: o.Timestamp,
		Items:     items,
	}
}

func ToResponses(orders []Order) []*Response {
	out := make([]*Response, 0, len(orders))
	for i := range orders {
		out = append(out, ToResponse(&orders[i]))
	}
	return out
}
