package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/pricing"
	"printshop/internal/storefront"
)

func mf(key, value string) *storefront.Metafield {
	return &storefront.Metafield{Namespace: "custom", Key: key, Value: value}
}

func rawCards() storefront.Product {
	p := storefront.Product{
		ID:               "gid://shopify/Product/1",
		Handle:           "premium-business-cards",
		Title:            "Premium Business Cards",
		Description:      "Thick matte cards",
		Tags:             []string{"business-cards", "featured"},
		Vendor:           "PrintCo",
		AvailableForSale: true,
		Metafields: []*storefront.Metafield{
			mf(KeyPricingTiers, `{"online":[{"quantity":1000,"price":37},{"quantity":500,"price":25,"sides":"2"}],
				"normal":[{"quantity":1000,"price":42}]}`),
			mf(KeySpecifications, `{"material":"350gsm","colors":4,"sides":2,"finish":"matte","size":"85x55mm"}`),
			mf(KeyTurnaround, `{"normal":"2-3 business days","express":"Next day","expressAvailable":true,"expressCost":15}`),
			mf(KeyBadge, "Best Seller"),
			mf(KeyProductCode, "BC-001"),
			mf(KeyFeatures, `["Free design check", 7, "Rounded corners"]`),
			mf(KeyMinOrderQuantity, "500"),
			mf(KeyPaperWeights, `["350gsm","400gsm"]`),
			mf(KeyFinishingOptions, `not json`),
			mf(KeyPriceIncrease, "12"),
			nil,
		},
	}
	p.Images.Edges = []storefront.ImageEdge{{Node: storefront.Image{URL: "https://cdn/cards-1.jpg"}}, {Node: storefront.Image{URL: "https://cdn/cards-2.jpg"}}}
	p.Variants.Edges = []storefront.VariantEdge{
		{Node: storefront.Variant{
			ID:                "gid://shopify/ProductVariant/11",
			Title:             "1000 / Matte",
			AvailableForSale:  true,
			QuantityAvailable: 40,
			PriceV2:           storefront.Money{Amount: "37.0", CurrencyCode: "AED"},
			CompareAtPriceV2:  &storefront.Money{Amount: "42.00", CurrencyCode: "AED"},
			SelectedOptions:   []storefront.SelectedOption{{Name: "Quantity", Value: "1000 pcs"}, {Name: "Finish", Value: "Matte"}},
			SKU:               "BC-1000-M",
		}},
		{Node: storefront.Variant{
			ID:      "gid://shopify/ProductVariant/12",
			Title:   "500 / Gloss",
			PriceV2: storefront.Money{Amount: "oops"},
		}},
	}
	return p
}

func TestTransformProduct(t *testing.T) {
	p := NewTransformer().Product(rawCards())

	assert.Equal(t, "premium-business-cards", p.Handle)
	assert.Equal(t, "business-cards", p.Category)
	assert.Equal(t, []string{"https://cdn/cards-1.jpg", "https://cdn/cards-2.jpg"}, p.Images)
	assert.Equal(t, "Best Seller", p.Badge)
	assert.Equal(t, "BC-001", p.ProductCode)
	assert.Equal(t, []string{"Free design check", "Rounded corners"}, p.Features)
	assert.Equal(t, []string{"350gsm", "400gsm"}, p.PaperWeights)
	assert.Equal(t, []string{}, p.FinishingOptions)
	require.NotNil(t, p.MinOrderQuantity)
	assert.Equal(t, 500, *p.MinOrderQuantity)
	assert.Nil(t, p.Discount)
	assert.Equal(t, 12.0, p.PriceIncrease)

	assert.Equal(t, "350gsm", p.Specifications.Material)
	assert.Equal(t, 4, p.Specifications.Colors)
	assert.True(t, p.Turnaround.ExpressAvailable)
	assert.Equal(t, 15.0, p.Turnaround.ExpressCost)

	require.Len(t, p.Pricing, 3)
	assert.Equal(t, pricing.Tier{Quantity: 1000, Type: pricing.Online, Price: 41}, p.Pricing[0])
	assert.Equal(t, pricing.Tier{Quantity: 500, Type: pricing.Online, Price: 28, Sides: 2}, p.Pricing[1])
	assert.Equal(t, pricing.Tier{Quantity: 1000, Type: pricing.Normal, Price: 47}, p.Pricing[2])

	require.Len(t, p.Variants, 2)
	v := p.Variants[0]
	assert.Equal(t, 41.0, v.Price)
	require.NotNil(t, v.CompareAtPrice)
	assert.Equal(t, 47.0, *v.CompareAtPrice)
	assert.Equal(t, "1000 pcs", v.Options["Quantity"])
	assert.Equal(t, 40, v.Quantity)
	assert.Equal(t, 0.0, p.Variants[1].Price)
	assert.Nil(t, p.Variants[1].CompareAtPrice)
}

func TestTransformAppliesIncreaseOncePerPrice(t *testing.T) {
	calls := 0
	tr := &Transformer{Increase: func(price, pct float64) float64 {
		calls++
		return pricing.ApplyPriceIncrease(price, pct)
	}}

	p := tr.Product(rawCards())

	// 3 tiers + 2 variant prices + 1 compare-at price
	assert.Equal(t, 6, calls)
	assert.Equal(t, 41.0, p.Pricing[0].Price)
}

func TestTransformDefaults(t *testing.T) {
	raw := storefront.Product{
		ID:     "gid://shopify/Product/2",
		Handle: "plain",
		Metafields: []*storefront.Metafield{
			mf(KeyPricingTiers, `{"online":`),
			mf(KeyTurnaround, `[1,2]`),
			mf(KeyDiscount, "15%"),
		},
	}

	p := NewTransformer().Product(raw)

	assert.Equal(t, DefaultCategory, p.Category)
	assert.Empty(t, p.Pricing)
	assert.Equal(t, DefaultTurnaround(), p.Turnaround)
	assert.Equal(t, []string{}, p.Features)
	assert.Equal(t, []string{}, p.Tags)
	require.NotNil(t, p.Discount)
	assert.Equal(t, 15, *p.Discount)
	assert.Equal(t, 15, p.EffectiveDiscount())
	assert.Equal(t, 0.0, p.PriceIncrease)
}

func TestTransformZeroIncreaseKeepsPrices(t *testing.T) {
	raw := rawCards()
	for _, m := range raw.Metafields {
		if m != nil && m.Key == KeyPriceIncrease {
			m.Value = "0"
		}
	}
	p := NewTransformer().Product(raw)
	assert.Equal(t, 37.0, p.Pricing[0].Price)
	assert.Equal(t, 42.0, p.Pricing[2].Price)
	assert.Equal(t, 37.0, p.Variants[0].Price)
	// lowest online 25 vs lowest normal 42
	assert.Equal(t, 40, p.EffectiveDiscount())
}

func TestTransformLooseTierNumbers(t *testing.T) {
	raw := storefront.Product{
		Handle: "a5-flyers",
		Metafields: []*storefront.Metafield{
			mf(KeyPricingTiers, `{"online":[{"quantity":"500","price":"37.50","perPiece":"0.075"},{"quantity":1000,"price":60},{"quantity":"lots","price":"9"}]}`),
		},
	}

	p := NewTransformer().Product(raw)
	require.Len(t, p.Pricing, 2)
	assert.Equal(t, 500, p.Pricing[0].Quantity)
	assert.Equal(t, 37.5, p.Pricing[0].Price)
	assert.Equal(t, 0.075, p.Pricing[0].PricePerUnit)
	assert.Equal(t, 1000, p.Pricing[1].Quantity)
	assert.Equal(t, 60.0, p.Pricing[1].Price)

	assert.Equal(t, 0.0, looseFloat("n/a"))
	assert.Equal(t, 0.0, looseFloat(nil))
	assert.Equal(t, 12.25, looseFloat(" 12.25 "))
}

func TestProductTypeWinsOverTags(t *testing.T) {
	raw := rawCards()
	raw.ProductType = "stationery"
	assert.Equal(t, "stationery", NewTransformer().Product(raw).Category)
}

func TestCollectionRef(t *testing.T) {
	raw := storefront.Collection{
		ID:     "gid://shopify/Collection/5",
		Handle: "business-cards-stationery",
		Title:  "Business Cards & Stationery",
		Image:  &storefront.Image{URL: "https://cdn/col.jpg"},
	}
	raw.Products.Edges = []storefront.ProductEdge{{Node: rawCards()}}

	c := CollectionRef(raw)
	assert.Equal(t, 1, c.ProductCount)
	assert.Equal(t, "https://cdn/col.jpg", c.Image)
	assert.Empty(t, c.Products)
	assert.Equal(t, []string{"premium-business-cards"}, c.ProductHandles)

	ref := CollectionRef(storefront.Collection{Handle: "empty"})
	assert.Equal(t, "", ref.Image)
	assert.Empty(t, ref.Products)
}
