package seeder

import (
	"fmt"
	"math/rand"

	"washpos-backend/internal/repository"
)

var customerNames = []string{
	"Budi Santoso", "Siti Rahayu", "Agus Wijaya", "Dewi Lestari", "Eko Prasetyo",
	"Rina Marlina", "Joko Susilo", "Ani Kusuma", "Hendra Gunawan", "Maya Sari",
	"Rudi Hartono", "Lina Wati", "Dimas Saputra", "Fitri Handayani", "Andre Kurniawan",
	"Yuni Astuti", "Bambang Sutrisno", "Ratna Dewi", "Tono Firmansyah", "Indah Permata",
}

var vehicleTypes = []string{"Mobil", "Motor"}

var carBrands = []string{"Toyota", "Honda", "Daihatsu", "Suzuki", "Mitsubishi", "Hyundai"}
var bikeBrands = []string{"Honda", "Yamaha", "Suzuki", "Kawasaki", "Vespa"}

func brandsFor(vehicleType string) []string {
	if vehicleType == "Motor" {
		return bikeBrands
	}
	return carBrands
}

var plateRegions = []string{"B", "D", "F", "AB", "AD", "L"}

func randomPlate(rng *rand.Rand) string {
	letters := "ABCDEFGHJKLMNPRSTUVWXYZ"
	suffix := make([]byte, 2+rng.Intn(2))
	for i := range suffix {
		suffix[i] = letters[rng.Intn(len(letters))]
	}
	return fmt.Sprintf("%s %d %s", plateRegions[rng.Intn(len(plateRegions))], 1+rng.Intn(9999), suffix)
}

// uniquePlates draws n distinct plates. Deduplicating up front keeps every
// INSERT in the batch transaction conflict-free; a unique violation inside
// the transaction would abort it and sink the whole run.
func uniquePlates(rng *rand.Rand, n int) []string {
	seen := make(map[string]bool, n)
	plates := make([]string, 0, n)
	for len(plates) < n {
		p := randomPlate(rng)
		if seen[p] {
			continue
		}
		seen[p] = true
		plates = append(plates, p)
	}
	return plates
}

var arrivalChecklist = []string{
	"STNK di kendaraan",
	"Barang berharga diamankan",
	"Kondisi body dicatat",
}

var completionChecklist = []string{
	"Eksterior kering",
	"Interior divakum",
	"Kaca bersih",
}

var cafeMenu = []repository.CreateCoffeeSale{
	{Name: "Kopi Hitam", UnitPrice: 12000},
	{Name: "Kopi Susu", UnitPrice: 18000},
	{Name: "Es Teh", UnitPrice: 8000},
	{Name: "Roti Bakar", UnitPrice: 15000},
	{Name: "Indomie Telur", UnitPrice: 14000},
}

// randomCafeItems returns 0-3 café line items for a checkout.
func randomCafeItems(rng *rand.Rand) []repository.CreateCoffeeSale {
	n := rng.Intn(4)
	var items []repository.CreateCoffeeSale
	picked := map[int]bool{}
	for len(items) < n {
		idx := rng.Intn(len(cafeMenu))
		if picked[idx] {
			continue
		}
		picked[idx] = true
		item := cafeMenu[idx]
		item.Qty = 1 + rng.Intn(2)
		items = append(items, item)
	}
	return items
}

var reviewTexts = map[int][]string{
	3: {
		"Lumayan, tapi antrinya lama.",
		"Hasil cuci biasa saja.",
		"Cukup bersih, kopi agak dingin.",
	},
	4: {
		"Bersih dan cepat, harga masuk akal.",
		"Pelayanan ramah, tempat nyaman.",
		"Hasilnya bagus, kopinya enak.",
	},
	5: {
		"Mantap, mobil kinclong seperti baru!",
		"Terbaik di daerah ini, pasti balik lagi.",
		"Pelayanan luar biasa, sambil ngopi enak.",
	},
}

type employeeTemplate struct {
	Name      string
	Role      string
	DailyWage int64
	Shift     string
	Phone     string
}

var employeeTemplates = []employeeTemplate{
	{Name: "Slamet Riyadi", Role: "Penyuci", DailyWage: 120_000, Shift: "Pagi", Phone: "081234561001"},
	{Name: "Wahyu Hidayat", Role: "Penyuci", DailyWage: 120_000, Shift: "Siang", Phone: "081234561002"},
	{Name: "Putri Amelia", Role: "Kasir", DailyWage: 140_000, Shift: "Pagi", Phone: "081234561003"},
	{Name: "Rizky Ramadhan", Role: "Barista", DailyWage: 150_000, Shift: "Siang", Phone: "081234561004"},
	{Name: "Galih Pratama", Role: "Penyuci", DailyWage: 130_000, Shift: "Malam", Phone: "081234561005"},
	{Name: "Nur Aini", Role: "Kasir", DailyWage: 140_000, Shift: "Malam", Phone: "081234561006"},
}
