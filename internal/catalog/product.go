// Package catalog turns raw storefront data into the application's product
// model and answers the browsing queries run against it.
package catalog

import "printshop/internal/pricing"

type Specifications struct {
	Material    string   `json:"material,omitempty"`
	Colors      int      `json:"colors,omitempty"`
	Sides       any      `json:"sides,omitempty"`
	Finish      string   `json:"finish,omitempty"`
	Size        string   `json:"size,omitempty"`
	PrintType   string   `json:"printType,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	Coating     string   `json:"coating,omitempty"`
	Durability  string   `json:"durability,omitempty"`
	Type        string   `json:"type,omitempty"`
	Panels      int      `json:"panels,omitempty"`
	Folding     string   `json:"folding,omitempty"`
	Shapes      string   `json:"shapes,omitempty"`
	Packaging   string   `json:"packaging,omitempty"`
	Capacity    string   `json:"capacity,omitempty"`
	Materials   []string `json:"materials,omitempty"`
	Width       string   `json:"width,omitempty"`
	Length      string   `json:"length,omitempty"`
	Adhesive    string   `json:"adhesive,omitempty"`
	Weight      string   `json:"weight,omitempty"`
	Usage       string   `json:"usage,omitempty"`
	Special     string   `json:"special,omitempty"`
}

type Turnaround struct {
	Normal           string  `json:"normal"`
	Express          string  `json:"express"`
	ExpressAvailable bool    `json:"expressAvailable"`
	ExpressCost      float64 `json:"expressCost,omitempty"`
	ExpressNote      string  `json:"expressNote,omitempty"`
}

// DefaultTurnaround is used when the turnaround metafield is missing or
// malformed.
func DefaultTurnaround() Turnaround {
	return Turnaround{
		Normal:  "1-2 business days",
		Express: "Available",
	}
}

type Variant struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Price          float64           `json:"price"`
	CompareAtPrice *float64          `json:"compareAtPrice,omitempty"`
	Available      bool              `json:"available"`
	Quantity       int               `json:"quantity"`
	SKU            string            `json:"sku"`
	Options        map[string]string `json:"options"`
}

// Product is the ingested catalog entry. Prices already include the
// product's price increase.
type Product struct {
	ID               string         `json:"id"`
	Handle           string         `json:"handle"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Category         string         `json:"category"`
	Images           []string       `json:"images"`
	Pricing          []pricing.Tier `json:"pricing"`
	Discount         *int           `json:"discount,omitempty"`
	Badge            string         `json:"badge,omitempty"`
	ProductCode      string         `json:"productCode,omitempty"`
	Features         []string       `json:"features"`
	Specifications   Specifications `json:"specifications"`
	Turnaround       Turnaround     `json:"turnaround"`
	MinOrderQuantity *int           `json:"minOrderQuantity,omitempty"`
	PaperWeights     []string       `json:"paperWeights"`
	FinishingOptions []string       `json:"finishingOptions"`
	Variants         []Variant      `json:"variants"`
	Tags             []string       `json:"tags"`
	Vendor           string         `json:"vendor"`
	AvailableForSale bool           `json:"availableForSale"`

	// PriceIncrease is the percentage already folded into every price.
	PriceIncrease float64 `json:"priceIncrease"`
}

// Featured reports whether the product should lead the default ordering.
func (p Product) Featured() bool {
	return p.Badge != "" || hasTag(p.Tags, "featured")
}

// EffectiveDiscount is the explicit discount or the online/normal savings.
func (p Product) EffectiveDiscount() int {
	return pricing.DefaultDiscount(p.Discount, p.Pricing)
}

func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

type Collection struct {
	ID           string    `json:"id"`
	Handle       string    `json:"handle"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	ProductCount int       `json:"productCount"`
	Products     []Product `json:"products,omitempty"`
	// ProductHandles is set when only product references are known.
	ProductHandles []string `json:"productHandles,omitempty"`
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Icon         string `json:"icon"`
	ProductCount int    `json:"productCount"`
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
