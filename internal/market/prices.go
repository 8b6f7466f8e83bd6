package market

import "strings"

// priceEntry pairs a lower-cased keyword with a reference unit price in BRL.
// Entries are ordered most-specific first so "dell latitude 5520" wins over
// the bare "dell" fallback.
type priceEntry struct {
	Keyword string
	Price   float64
}

// referencePrices is built from market research and past procurement data
// for common IT equipment. It stands in for a live price-survey integration.
var referencePrices = []priceEntry{
	{"dell latitude 5520", 2800},
	{"dell latitude", 2800},
	{"dell", 2800},

	{"hp elitebook 850 g8", 3200},
	{"hp elitebook", 3200},
	{"hp elite", 3200},

	{"lenovo thinkpad e15", 2900},
	{"lenovo thinkpad", 2900},
	{"lenovo", 2900},

	{"samsung galaxy tab a8", 1200},
	{"samsung galaxy tab", 1200},
	{"samsung tablet", 1200},

	{"ipad 10.9", 2800},
	{"ipad", 2800},
	{"apple ipad", 2800},

	{"samsung galaxy a54", 1800},
	{"samsung galaxy", 1800},
	{"samsung smartphone", 1800},

	{"motorola moto g73", 1400},
	{"motorola moto", 1400},
	{"motorola", 1400},

	{"hp elitedesk 800 g8", 3500},
	{"hp elitedesk", 3500},
	{"desktop hp", 3500},
	{"hp", 3000},

	{"notebook", 2800},
	{"tablet", 1500},
	{"smartphone", 1600},
	{"computador", 3500},
	{"desktop", 3500},
}

// categoryFallbacks catches descriptions with no keyword match but an
// identifiable product category.
var categoryFallbacks = []struct {
	Terms []string
	Price float64
}{
	{[]string{"notebook", "laptop"}, 2800},
	{[]string{"tablet", "ipad"}, 1500},
	{[]string{"smartphone", "celular", "moto"}, 1600},
	{[]string{"computador", "desktop", "pc"}, 3500},
}

// PriceTable resolves product descriptions to estimated fair market prices.
// It implements analysis.PriceReference.
type PriceTable struct{}

// NewPriceTable returns the built-in reference table.
func NewPriceTable() *PriceTable {
	return &PriceTable{}
}

// ReferencePrice returns the reference price for a product description, or
// ok=false when the product is unknown.
func (t *PriceTable) ReferencePrice(description string) (float64, bool) {
	desc := strings.ToLower(description)
	if desc == "" {
		return 0, false
	}

	for _, entry := range referencePrices {
		if strings.Contains(desc, entry.Keyword) {
			return entry.Price, true
		}
	}

	for _, fallback := range categoryFallbacks {
		for _, term := range fallback.Terms {
			if strings.Contains(desc, term) {
				return fallback.Price, true
			}
		}
	}

	return 0, false
}
