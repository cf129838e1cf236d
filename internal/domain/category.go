package domain

// UncategorizedID is the id of the sentinel category. It always exists, is
// never deletable, and is the reassignment target when a category is removed.
const UncategorizedID int32 = 9

// Category is a spending category. Color and Icon are presentation hints
// carried through aggregation output.
type Category struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// DefaultCategories returns the category set seeded into an empty ledger.
// The last entry is the uncategorized sentinel.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Alimentation", Color: "#4caf50", Icon: "restaurant"},
		{ID: 2, Name: "Logement", Color: "#2196f3", Icon: "home"},
		{ID: 3, Name: "Transport", Color: "#ff9800", Icon: "directions_car"},
		{ID: 4, Name: "Loisirs", Color: "#9c27b0", Icon: "sports_esports"},
		{ID: 5, Name: "Santé", Color: "#f44336", Icon: "local_hospital"},
		{ID: 6, Name: "Shopping", Color: "#e91e63", Icon: "shopping_bag"},
		{ID: 7, Name: "Services", Color: "#00bcd4", Icon: "miscellaneous_services"},
		{ID: 8, Name: "Revenus", Color: "#8bc34a", Icon: "payments"},
		{ID: UncategorizedID, Name: "Non catégorisé", Color: "#9e9e9e", Icon: "help"},
	}
}

// UncategorizedCategory returns a fresh copy of the sentinel category.
func UncategorizedCategory() Category {
	return Category{ID: UncategorizedID, Name: "Non catégorisé", Color: "#9e9e9e", Icon: "help"}
}
