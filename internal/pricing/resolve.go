package pricing

import (
	"fmt"
	"sort"
)

// Resolve returns the tier matching quantity and type exactly. Duplicate
// (quantity, type) pairs are not rejected; the first one wins.
func Resolve(tiers []Tier, quantity int, typ PriceType) (Tier, error) {
	if err := validate(quantity, typ); err != nil {
		return Tier{}, err
	}
	for _, t := range tiers {
		if t.Quantity == quantity && t.Type == typ {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: quantity %d, type %s", ErrTierNotFound, quantity, typ)
}

// Quote is a resolved price. Exact is false when the requested quantity
// had no tier and the lowest tier of the same type was used instead.
type Quote struct {
	Tier
	Exact bool `json:"exact"`
}

// QuoteFor resolves (quantity, typ) and falls back to the lowest-priced
// tier of the same type. It fails with ErrTierNotFound when the product
// has no tier of that type at all; an absent price is never reported as 0.
func QuoteFor(tiers []Tier, quantity int, typ PriceType) (Quote, error) {
	t, err := Resolve(tiers, quantity, typ)
	if err == nil {
		return Quote{Tier: t, Exact: true}, nil
	}
	if err := validate(quantity, typ); err != nil {
		return Quote{}, err
	}
	low, ok := Lowest(tiers, typ)
	if !ok {
		return Quote{}, err
	}
	return Quote{Tier: low}, nil
}

// Lowest returns the cheapest tier of typ.
func Lowest(tiers []Tier, typ PriceType) (Tier, bool) {
	var (
		best  Tier
		found bool
	)
	for _, t := range tiers {
		if t.Type != typ {
			continue
		}
		if !found || t.Price < best.Price {
			best, found = t, true
		}
	}
	return best, found
}

// LowestPrice is Lowest for display: 0 when no tier of typ exists.
func LowestPrice(tiers []Tier, typ PriceType) float64 {
	t, ok := Lowest(tiers, typ)
	if !ok {
		return 0
	}
	return t.Price
}

// Quantities lists the distinct tier quantities in ascending order.
func Quantities(tiers []Tier) []int {
	seen := make(map[int]struct{}, len(tiers))
	var out []int
	for _, t := range tiers {
		if _, ok := seen[t.Quantity]; ok {
			continue
		}
		seen[t.Quantity] = struct{}{}
		out = append(out, t.Quantity)
	}
	sort.Ints(out)
	return out
}

func validate(quantity int, typ PriceType) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriceType, typ)
	}
	return nil
}
