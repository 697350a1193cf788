package config

// Default settings seeded into the settings table on first start. These are
// the single source of truth for configurable price lists and checklists;
// repositories read them back from the database, never from here.

// WashPackage is a priced wash service offering.
type WashPackage struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CoffeeItem is a café menu entry.
type CoffeeItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ShopInfo is the business identity printed on receipts.
type ShopInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Settings keys.
const (
	KeyWashPackages        = "wash_packages"
	KeyArrivalChecklist    = "arrival_checklist"
	KeyCompletionChecklist = "completion_checklist"
	KeyShopInfo            = "shop_info"
	KeyCoffeeMenu          = "coffee_menu"
	KeySizeMultipliers     = "size_multipliers"
)

// DefaultSettings returns the seed values for every settings key.
func DefaultSettings() map[string]any {
	return map[string]any{
		KeyWashPackages: []WashPackage{
			{Name: "Cuci Reguler", Price: 35000},
			{Name: "Cuci Premium", Price: 50000},
			{Name: "Cuci + Wax", Price: 75000},
			{Name: "Detailing", Price: 150000},
		},
		KeyArrivalChecklist: []string{
			"STNK di kendaraan",
			"Barang berharga diamankan",
			"Kondisi body dicatat",
			"Antena dilepas",
		},
		KeyCompletionChecklist: []string{
			"Eksterior kering",
			"Interior divakum",
			"Kaca bersih",
			"Ban disemir",
		},
		KeyShopInfo: ShopInfo{
			Name:    "Prime Carwash & Cafe",
			Address: "Jl. Raya Bogor KM 30, Depok",
			Phone:   "021-8745123",
		},
		KeyCoffeeMenu: []CoffeeItem{
			{Name: "Kopi Hitam", Price: 12000},
			{Name: "Kopi Susu", Price: 18000},
			{Name: "Es Teh", Price: 8000},
			{Name: "Roti Bakar", Price: 15000},
			{Name: "Indomie Telur", Price: 14000},
		},
		KeySizeMultipliers: map[string]float64{
			"S":  1.0,
			"M":  1.1,
			"L":  1.25,
			"XL": 1.5,
		},
	}
}
