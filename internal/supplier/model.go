package supplier

type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	}
	return false
}

type Supplier struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Email       string  `json:"email" db:"email"`
	Phone       string  `json:"phone" db:"phone"`
	Whatsapp    *string `json:"whatsapp" db:"whatsapp"`
	Category    string  `json:"category" db:"category"`
	Status      Status  `json:"status" db:"status"`
	Rating      float64 `json:"rating" db:"rating"`
	TotalOrders int     `json:"totalOrders" db:"total_orders"`
	Message     *string `json:"message" db:"message"`
	CreatedAt   int64   `json:"createdAt" db:"created_at"`
}

type RegisterInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Whatsapp *string `json:"whatsapp"`
	Category string  `json:"category"`
	Message  *string `json:"message"`
}
