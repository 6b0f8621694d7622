package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/catalog"
	"printshop/internal/db/dbtest"
	"printshop/internal/errx"
	"printshop/internal/pricing"
	"printshop/internal/repo"
	"printshop/internal/storefront"
)

type fakeSource struct {
	products    []storefront.Product
	collections []storefront.Collection
	err         error
}

func (f *fakeSource) Products(context.Context, string) ([]storefront.Product, error) {
	return f.products, f.err
}

func (f *fakeSource) Collections(context.Context) ([]storefront.Collection, error) {
	return f.collections, nil
}

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

func rawProduct(handle string) storefront.Product {
	p := storefront.Product{
		ID:     "gid://shopify/Product/" + handle,
		Handle: handle,
		Title:  handle,
		Metafields: []*storefront.Metafield{
			{Key: catalog.KeyPricingTiers, Value: `{"online":[{"quantity":500,"price":100},{"quantity":1000,"price":180}],"normal":[{"quantity":500,"price":120}]}`},
			{Key: catalog.KeyPriceIncrease, Value: "10"},
		},
	}
	p.Variants.Edges = []storefront.VariantEdge{
		{Node: storefront.Variant{ID: "v-" + handle + "-1", PriceV2: storefront.Money{Amount: "100"}, CompareAtPriceV2: &storefront.Money{Amount: "120"}}},
		{Node: storefront.Variant{ID: "v-" + handle + "-2", PriceV2: storefront.Money{Amount: "180"}}},
	}
	return p
}

func source() *fakeSource {
	col := storefront.Collection{ID: "gid://shopify/Collection/1", Handle: "featured-products", Title: "Featured"}
	col.Products.Edges = []storefront.ProductEdge{{Node: storefront.Product{Handle: "flyers"}}}
	return &fakeSource{
		products:    []storefront.Product{rawProduct("cards"), rawProduct("flyers")},
		collections: []storefront.Collection{col},
	}
}

func TestRunAppliesIncreaseOncePerPrice(t *testing.T) {
	ctx := context.Background()
	store := repo.NewCatalog(dbtest.Open(t))
	cache := &fakeInvalidator{}

	calls := 0
	tr := &catalog.Transformer{Increase: func(price, pct float64) float64 {
		calls++
		return pricing.ApplyPriceIncrease(price, pct)
	}}
	s := New(source(), store, cache).WithTransformer(tr)

	report, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Products)
	assert.Equal(t, 1, report.Collections)
	assert.Equal(t, 1, cache.calls)

	// per product: 3 tiers, 2 variant prices, 1 compare-at price
	assert.Equal(t, 2*6, calls)

	p, err := store.ProductByHandle(ctx, "cards")
	require.NoError(t, err)
	tier, err := pricing.Resolve(p.Pricing, 500, pricing.Online)
	require.NoError(t, err)
	assert.Equal(t, 110.0, tier.Price)
	require.NotNil(t, p.Variants[0].CompareAtPrice)
	assert.Equal(t, 132.0, *p.Variants[0].CompareAtPrice)

	// reading the stored snapshot back does not transform again
	_, err = store.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2*6, calls)

	col, err := store.CollectionByHandle(ctx, "featured-products")
	require.NoError(t, err)
	require.Len(t, col.Products, 1)
	assert.Equal(t, 110.0, col.Products[0].Pricing[0].Price)

	last, err := store.LastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Products)

	// a second sync starts from raw data again
	_, err = s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4*6, calls)
	p, err = store.ProductByHandle(ctx, "cards")
	require.NoError(t, err)
	assert.Equal(t, 110.0, p.Pricing[0].Price)
}

func TestRunUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	store := repo.NewCatalog(dbtest.Open(t))
	require.NoError(t, store.ReplaceCatalog(ctx, []catalog.Product{{Handle: "old"}}, nil))

	src := source()
	src.err = errors.New("connection reset")
	_, err := New(src, store, nil).Run(ctx)
	require.Error(t, err)
	status, _ := errx.StatusOf(err)
	assert.Equal(t, 502, status)

	products, err := store.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestRunRejectsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := repo.NewCatalog(dbtest.Open(t))
	require.NoError(t, store.ReplaceCatalog(ctx, []catalog.Product{{Handle: "old"}}, nil))

	_, err := New(&fakeSource{}, store, nil).Run(ctx)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	products, err := store.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestRunCacheFailureIsNotFatal(t *testing.T) {
	store := repo.NewCatalog(dbtest.Open(t))
	cache := &fakeInvalidator{err: errors.New("redis down")}

	s := New(source(), store, cache)
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(250 * time.Millisecond)
		return tick
	}

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.calls)
	assert.Equal(t, 250*time.Millisecond, report.Duration)
}
