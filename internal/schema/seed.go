package schema

import "spicery-be/internal/utils"

type seedProduct struct {
	Name        string
	Category    string
	Price       float64
	Stock       float64
	Description string
}

// demoCatalog covers every stock bucket: in stock, low stock and out of stock.
var demoCatalog = []seedProduct{
	{Name: "Ceylon Cinnamon Sticks", Category: "Bark", Price: 2450, Stock: 48, Description: "True cinnamon quills from Matara, hand rolled."},
	{Name: "Black Pepper (Whole)", Category: "Seeds", Price: 1800, Stock: 120, Description: "Sun dried peppercorns from the central hills."},
	{Name: "Green Cardamom", Category: "Pods", Price: 5200, Stock: 7, Description: "Bright green pods, intensely aromatic."},
	{Name: "Turmeric Powder", Category: "Ground", Price: 950, Stock: 2.5, Description: "Stone ground, sold by the kilogram."},
	{Name: "Cloves", Category: "Buds", Price: 3100, Stock: 0, Description: "Whole hand picked clove buds."},
}

func descriptionPtr(s string) *string {
	if s == "" {
		return nil
	}
	return utils.StrPtr(s)
}
