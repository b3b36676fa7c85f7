package services

// ShopItem is a redeemable product. The catalog is a fixed list, not a
// database table: stock and pricing are managed out of band.
type ShopItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PriceRs  int    `json:"price_rs"`
	Points   int    `json:"points"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
}

var shopItems = []ShopItem{
	{ID: "segregation-set", Name: "3-Bin Segregation Set", PriceRs: 1500, Points: 300, Stock: 10, Category: "Equipment"},
	{ID: "compost-kit", Name: "Compost Kit", PriceRs: 2000, Points: 400, Stock: 5, Category: "Composting"},
	{ID: "eco-bags", Name: "Eco Bags (Set of 5)", PriceRs: 500, Points: 100, Stock: 20, Category: "Accessories"},
	{ID: "organic-fertilizer", Name: "Organic Fertilizer", PriceRs: 800, Points: 160, Stock: 15, Category: "Garden"},
	{ID: "solar-bin", Name: "Solar Waste Bin", PriceRs: 5000, Points: 1000, Stock: 3, Category: "Technology"},
	{ID: "safety-gloves", Name: "Safety Gloves", PriceRs: 300, Points: 60, Stock: 25, Category: "Safety"},
}

// ShopItems returns the catalog, optionally filtered by category.
func ShopItems(category string) []ShopItem {
	if category == "" || category == "All" {
		return shopItems
	}
	filtered := make([]ShopItem, 0, len(shopItems))
	for _, item := range shopItems {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ShopItemByID looks up a catalog item.
func ShopItemByID(id string) (ShopItem, bool) {
	for _, item := range shopItems {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}

// TrainingModule is a self-paced course that awards points on completion.
type TrainingModule struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Points          int    `json:"points"`
	Difficulty      string `json:"difficulty"`
}

var trainingModules = []TrainingModule{
	{
		ID:              "waste-classification",
		Title:           "Waste Classification & Identification",
		Description:     "Learn to identify different types of waste and their proper disposal methods",
		DurationMinutes: 30,
		Points:          50,
		Difficulty:      "Beginner",
	},
	{
		ID:              "source-segregation",
		Title:           "Source Segregation Best Practices",
		Description:     "Master the techniques of segregating waste at source for maximum efficiency",
		DurationMinutes: 45,
		Points:          75,
		Difficulty:      "Intermediate",
	},
	{
		ID:              "home-composting",
		Title:           "Home Composting Workshop",
		Description:     "Convert your kitchen waste into valuable compost for your garden",
		DurationMinutes: 60,
		Points:          100,
		Difficulty:      "Advanced",
	},
	{
		ID:              "plastic-management",
		Title:           "Plastic Waste Management",
		Description:     "Understanding plastic types, recycling codes, and creative reuse methods",
		DurationMinutes: 40,
		Points:          80,
		Difficulty:      "Intermediate",
	},
}

// TrainingModules returns all available modules.
func TrainingModules() []TrainingModule {
	return trainingModules
}

// TrainingModuleByID looks up a module.
func TrainingModuleByID(id string) (TrainingModule, bool) {
	for _, m := range trainingModules {
		if m.ID == id {
			return m, true
		}
	}
	return TrainingModule{}, false
}
