package models

// DefaultCatalog returns the records the store is seeded with at startup.
func DefaultCatalog() []ProductFields {
	return []ProductFields{
		seed("Laptop", "Powerful laptop for work and gaming", 1200, "Electronics", true),
		seed("Mouse", "Wireless mouse with ergonomic design", 25, "Electronics", true),
		seed("Keyboard", "Mechanical keyboard with RGB lighting", 75, "Electronics", false),
		seed("Desk Chair", "Ergonomic office chair", 150, "Furniture", true),
		seed("Monitor", "4K UHD monitor", 300, "Electronics", true),
		seed("Notebook", "A simple notebook", 5, "Stationery", true),
		seed("Pen Set", "Luxury pen set", 20, "Stationery", true),
	}
}

func seed(name, description string, price float64, category string, inStock bool) ProductFields {
	return ProductFields{
		Name:        Ptr(name),
		Description: Ptr(description),
		Price:       Ptr(price),
		Category:    Ptr(category),
		InStock:     Ptr(inStock),
	}
}
