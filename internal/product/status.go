package product

type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// LowStockThreshold is the largest quantity still reported as low stock.
const LowStockThreshold = 10

// StatusFor is the only place stock is mapped to a status label.
func StatusFor(stock float64) StockStatus {
	switch {
	case stock > LowStockThreshold:
		return StatusInStock
	case stock > 0:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}
