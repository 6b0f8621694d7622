package pricing

// Savings is the percentage saved by paying online instead of normal.
// A non-positive normal price yields 0.
func Savings(online, normal float64) int {
	if normal <= 0 {
		return 0
	}
	return int(round((normal - online) / normal * 100))
}

// DefaultDiscount is the explicit discount when one is set, otherwise the
// savings between the lowest online and lowest normal tier.
func DefaultDiscount(explicit *int, tiers []Tier) int {
	if explicit != nil {
		return *explicit
	}
	return Savings(LowestPrice(tiers, Online), LowestPrice(tiers, Normal))
}

// ApplyPriceIncrease marks price up by percentage and rounds to a whole
// amount. Zero percentage returns price untouched.
//
// Not idempotent: callers must apply it once per ingested price.
func ApplyPriceIncrease(price, percentage float64) float64 {
	if percentage == 0 {
		return price
	}
	return round(price * (1 + percentage/100))
}
