package product

// Product is one catalog entry. Status is derived from Stock by StatusFor and
// is never taken from callers.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       float64     `json:"price"`
	Stock       float64     `json:"stock"`
	Description *string     `json:"description"`
	Status      StockStatus `json:"status"`
	Image       *string     `json:"image"`
	RatingAvg   float64     `json:"rating_avg"`
	ReviewCount int         `json:"review_count"`
}

// Input carries the writable catalog fields for create and full-record update.
type Input struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       float64 `json:"stock"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

type Review struct {
	ID        string  `json:"id" db:"id"`
	ProductID string  `json:"productId" db:"product_id"`
	UserEmail string  `json:"userEmail" db:"user_email"`
	Rating    int     `json:"rating" db:"rating"`
	Comment   *string `json:"comment" db:"comment"`
	CreatedAt int64   `json:"createdAt" db:"created_at"`
}

type ReviewInput struct {
	UserEmail string  `json:"userEmail"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
}
