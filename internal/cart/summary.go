package cart

import (
	"errors"
	"fmt"
	"strconv"

	"printshop/internal/catalog"
	"printshop/internal/pricing"
	"printshop/internal/storefront"
)

type Line struct {
	Item
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
	Priced    bool    `json:"priced"`
}

// Summary prices the cart. Items that cannot be priced are listed in
// Unpriced and left out of Subtotal instead of counting as free.
type Summary struct {
	Lines      []Line   `json:"lines"`
	TotalItems int      `json:"totalItems"`
	Subtotal   float64  `json:"subtotal"`
	Unpriced   []string `json:"unpriced,omitempty"`
}

// Summary prices every item against products, keyed by handle. The tier
// price covers the tier quantity; it is multiplied by the item quantity.
// Without tiers the selected variant's price is used. Title and image
// come from the product; a product gone from the catalog shows its handle.
func (c Cart) Summary(products map[string]catalog.Product) Summary {
	s := Summary{Lines: make([]Line, 0, len(c.Items)), TotalItems: c.TotalItems()}
	for _, it := range c.Items {
		line := Line{Item: it, Title: it.Handle}
		if p, ok := products[it.Handle]; ok {
			line.Title = p.Title
			if len(p.Images) > 0 {
				line.Image = p.Images[0]
			}
		}
		if price, ok := unitPrice(products, it); ok {
			line.UnitPrice = price
			line.Total = price * float64(it.Quantity)
			line.Priced = true
			s.Subtotal += line.Total
		} else {
			s.Unpriced = append(s.Unpriced, it.ID)
		}
		s.Lines = append(s.Lines, line)
	}
	return s
}

func unitPrice(products map[string]catalog.Product, it Item) (float64, bool) {
	p, ok := products[it.Handle]
	if !ok {
		return 0, false
	}
	if len(p.Pricing) > 0 {
		tier, err := pricing.Resolve(p.Pricing, it.Options.Quantity, it.Options.PriceType)
		if err != nil {
			return 0, false
		}
		return tier.Price, true
	}
	if v, ok := p.Variant(it.Options.VariantID); ok {
		return v.Price, true
	}
	return 0, false
}

// Attribute keys sent with every checkout line.
const (
	AttrPriceType    = "Price Type"
	AttrTurnaround   = "Turnaround"
	AttrTierQuantity = "Tier Quantity"
	AttrPaper        = "Paper"
)

// LineInputs converts the cart into storefront checkout lines.
func (c Cart) LineInputs() ([]storefront.CartLineInput, error) {
	if len(c.Items) == 0 {
		return nil, ErrEmpty
	}
	lines := make([]storefront.CartLineInput, 0, len(c.Items))
	var errs []error
	for _, it := range c.Items {
		if it.Options.VariantID == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoVariant, it.Handle))
			continue
		}
		priceType := it.Options.PriceType
		if priceType == "" {
			priceType = pricing.Online
		}
		turnaround := it.Options.Turnaround
		if turnaround == "" {
			turnaround = TurnaroundNormal
		}
		attrs := []storefront.Attribute{
			{Key: AttrPriceType, Value: string(priceType)},
			{Key: AttrTurnaround, Value: string(turnaround)},
			{Key: AttrTierQuantity, Value: strconv.Itoa(it.Options.Quantity)},
		}
		if it.Options.Paper != "" {
			attrs = append(attrs, storefront.Attribute{Key: AttrPaper, Value: it.Options.Paper})
		}
		lines = append(lines, storefront.CartLineInput{
			MerchandiseID: it.Options.VariantID,
			Quantity:      it.Quantity,
			Attributes:    attrs,
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return lines, nil
}
