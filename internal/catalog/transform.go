package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"printshop/internal/logx"
	"printshop/internal/pricing"
	"printshop/internal/storefront"
)

// Metafield keys read from the "custom" namespace.
const (
	KeySpecifications   = "specifications"
	KeyPricingTiers     = "pricing_tiers"
	KeyTurnaround       = "turnaround"
	KeyBadge            = "badge"
	KeyProductCode      = "product_code"
	KeyDiscount         = "discount_percentage"
	KeyFeatures         = "features"
	KeyMinOrderQuantity = "min_order_quantity"
	KeyPaperWeights     = "paper_weights"
	KeyFinishingOptions = "finishing_options"
	KeyPriceIncrease    = "price_increase_percentage"
)

const DefaultCategory = "general"

// categoryTags are the tags that name a category when productType is empty.
var categoryTags = map[string]bool{
	"business-cards": true,
	"flyers":         true,
	"brochures":      true,
	"stickers":       true,
	"labels":         true,
	"packaging":      true,
	"marketing":      true,
}

// rawTier is the tier shape inside the pricing_tiers metafield. Numeric
// attributes are loosely typed upstream.
type rawTier struct {
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
	PerPiece any `json:"perPiece"`
	Sides    any     `json:"sides"`
	Colors   any     `json:"colors"`
	Finish   string  `json:"finish"`
	Size     string  `json:"size"`
	Material string  `json:"material"`
	Paper    string  `json:"paper"`
}

type rawPricing struct {
	Online  []rawTier `json:"online"`
	Normal  []rawTier `json:"normal"`
	Express []rawTier `json:"express"`
}

// Transformer converts raw storefront products into catalog products.
// Increase is the price-increase function applied to every tier, variant
// and compare-at price; it runs exactly once per price.
type Transformer struct {
	Increase func(price, percentage float64) float64
}

func NewTransformer() *Transformer {
	return &Transformer{Increase: pricing.ApplyPriceIncrease}
}

func (t *Transformer) Product(raw storefront.Product) Product {
	mf := metafieldMap(raw.Metafields)

	specs := ParseJSON(mf[KeySpecifications], Specifications{})
	tiers := ParseJSON(mf[KeyPricingTiers], rawPricing{})
	turnaround := ParseJSON(mf[KeyTurnaround], DefaultTurnaround())
	features := ParseList(mf[KeyFeatures])
	paperWeights := ParseList(mf[KeyPaperWeights])
	finishing := ParseList(mf[KeyFinishingOptions])
	discount := ParseInt(mf[KeyDiscount])
	minOrder := ParseInt(mf[KeyMinOrderQuantity])
	increase := ParseFloat(mf[KeyPriceIncrease])

	for key, status := range map[string]ParseStatus{
		KeySpecifications: specs.Status, KeyPricingTiers: tiers.Status, KeyTurnaround: turnaround.Status,
		KeyFeatures: features.Status, KeyPaperWeights: paperWeights.Status, KeyFinishingOptions: finishing.Status,
		KeyDiscount: discount.Status, KeyMinOrderQuantity: minOrder.Status, KeyPriceIncrease: increase.Status,
	} {
		if status == ParseMalformed {
			logx.Debug().Str("product", raw.Handle).Str("metafield", key).Msg("malformed metafield, using default")
		}
	}

	pct := increase.Value
	p := Product{
		ID:               raw.ID,
		Handle:           raw.Handle,
		Title:            raw.Title,
		Description:      raw.Description,
		Category:         category(raw),
		Images:           make([]string, 0, len(raw.Images.Edges)),
		Discount:         discount.Value,
		Badge:            mf[KeyBadge],
		ProductCode:      mf[KeyProductCode],
		Features:         features.Value,
		Specifications:   specs.Value,
		Turnaround:       turnaround.Value,
		MinOrderQuantity: minOrder.Value,
		PaperWeights:     paperWeights.Value,
		FinishingOptions: finishing.Value,
		Tags:             raw.Tags,
		Vendor:           raw.Vendor,
		AvailableForSale: raw.AvailableForSale,
		PriceIncrease:    pct,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	for _, e := range raw.Images.Edges {
		p.Images = append(p.Images, e.Node.URL)
	}

	p.Pricing = make([]pricing.Tier, 0, len(tiers.Value.Online)+len(tiers.Value.Normal)+len(tiers.Value.Express))
	for _, group := range []struct {
		typ   pricing.PriceType
		tiers []rawTier
	}{
		{pricing.Online, tiers.Value.Online},
		{pricing.Normal, tiers.Value.Normal},
		{pricing.Express, tiers.Value.Express},
	} {
		for _, rt := range group.tiers {
			tier := t.tier(rt, group.typ, pct)
			if tier.Quantity <= 0 {
				logx.Debug().Str("handle", raw.Handle).Str("type", string(group.typ)).Msg("tier without quantity, skipping")
				continue
			}
			p.Pricing = append(p.Pricing, tier)
		}
	}

	p.Variants = make([]Variant, 0, len(raw.Variants.Edges))
	for _, e := range raw.Variants.Edges {
		p.Variants = append(p.Variants, t.variant(e.Node, pct))
	}
	return p
}

// CollectionRef keeps only the product handles of raw.
func CollectionRef(raw storefront.Collection) Collection {
	c := Collection{
		ID:             raw.ID,
		Handle:         raw.Handle,
		Title:          raw.Title,
		Description:    raw.Description,
		ProductCount:   len(raw.Products.Edges),
		ProductHandles: make([]string, 0, len(raw.Products.Edges)),
	}
	if raw.Image != nil {
		c.Image = raw.Image.URL
	}
	for _, e := range raw.Products.Edges {
		c.ProductHandles = append(c.ProductHandles, e.Node.Handle)
	}
	return c
}

func (t *Transformer) tier(rt rawTier, typ pricing.PriceType, pct float64) pricing.Tier {
	return pricing.Tier{
		Quantity:     looseInt(rt.Quantity),
		Type:         typ,
		Price:        t.Increase(looseFloat(rt.Price), pct),
		PricePerUnit: looseFloat(rt.PerPiece),
		Sides:        looseInt(rt.Sides),
		Colors:       looseInt(rt.Colors),
		Finish:       rt.Finish,
		Size:         rt.Size,
		Material:     rt.Material,
		Paper:        rt.Paper,
	}
}

func (t *Transformer) variant(v storefront.Variant, pct float64) Variant {
	out := Variant{
		ID:        v.ID,
		Title:     v.Title,
		Price:     t.Increase(money(v.PriceV2), pct),
		Available: v.AvailableForSale,
		Quantity:  v.QuantityAvailable,
		SKU:       v.SKU,
		Options:   make(map[string]string, len(v.SelectedOptions)),
	}
	if v.CompareAtPriceV2 != nil {
		cmp := t.Increase(money(*v.CompareAtPriceV2), pct)
		out.CompareAtPrice = &cmp
	}
	for _, o := range v.SelectedOptions {
		out.Options[o.Name] = o.Value
	}
	return out
}

func metafieldMap(fields []*storefront.Metafield) map[string]string {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		m[f.Key] = f.Value
	}
	return m
}

func category(raw storefront.Product) string {
	if raw.ProductType != "" {
		return raw.ProductType
	}
	for _, tag := range raw.Tags {
		if categoryTags[tag] {
			return tag
		}
	}
	return DefaultCategory
}

func money(m storefront.Money) float64 {
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		logx.Debug().Str("amount", m.Amount).Msg("unparseable money amount")
		return 0
	}
	return d.InexactFloat64()
}

// looseFloat reads a JSON number or a numeric string such as "37.50".
func looseFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err == nil {
			return d.InexactFloat64()
		}
		logx.Debug().Str("value", n).Msg("unparseable tier number")
	}
	return 0
}

func looseInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if p := ParseInt(n); p.OK() {
			return *p.Value
		}
	}
	return 0
}
