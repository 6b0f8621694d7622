package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/catalog"
	"printshop/internal/db/dbtest"
	"printshop/internal/models"
	"printshop/internal/pricing"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID: "gid://p/1", Handle: "premium-business-cards", Title: "Premium Business Cards", Category: "business-cards",
			Pricing: []pricing.Tier{
				{Quantity: 1000, Type: pricing.Online, Price: 41},
				{Quantity: 1000, Type: pricing.Normal, Price: 47},
			},
			Turnaround:    catalog.Turnaround{Normal: "2 days", ExpressAvailable: true},
			Variants:      []catalog.Variant{{ID: "gid://v/1", Price: 41, Options: map[string]string{"Quantity": "1000"}}},
			Tags:          []string{"featured"},
			PriceIncrease: 12,
		},
		{ID: "gid://p/2", Handle: "a5-flyers", Title: "A5 Flyers", Category: "flyers"},
		{ID: "gid://p/3", Handle: "a5-flyers", Title: "A5 Flyers again", Category: "flyers"},
	}
}

func sampleCollections() []catalog.Collection {
	return []catalog.Collection{
		{ID: "gid://c/1", Handle: "featured-products", Title: "Featured", ProductHandles: []string{"a5-flyers", "gone", "premium-business-cards"}},
	}
}

func TestReplaceCatalog(t *testing.T) {
	ctx := context.Background()
	r := NewCatalog(dbtest.Open(t))

	require.NoError(t, r.ReplaceCatalog(ctx, sampleProducts(), sampleCollections()))

	products, err := r.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "premium-business-cards", products[0].Handle)
	assert.Equal(t, sampleProducts()[0], products[0])

	t.Run("by handle", func(t *testing.T) {
		p, err := r.ProductByHandle(ctx, "a5-flyers")
		require.NoError(t, err)
		assert.Equal(t, "A5 Flyers", p.Title)

		_, err = r.ProductByHandle(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("collections", func(t *testing.T) {
		cols, err := r.Collections(ctx)
		require.NoError(t, err)
		require.Len(t, cols, 1)
		assert.Equal(t, 3, cols[0].ProductCount)

		c, err := r.CollectionByHandle(ctx, "featured-products")
		require.NoError(t, err)
		require.Len(t, c.Products, 2)
		assert.Equal(t, "a5-flyers", c.Products[0].Handle)
		assert.Equal(t, "premium-business-cards", c.Products[1].Handle)
		assert.Equal(t, 2, c.ProductCount)

		_, err = r.CollectionByHandle(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("replace drops old rows", func(t *testing.T) {
		require.NoError(t, r.ReplaceCatalog(ctx, sampleProducts()[1:2], nil))
		products, err := r.Products(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "a5-flyers", products[0].Handle)

		cols, err := r.Collections(ctx)
		require.NoError(t, err)
		assert.Empty(t, cols)
	})
}

func TestProductsByHandles(t *testing.T) {
	ctx := context.Background()
	r := NewCatalog(dbtest.Open(t))
	require.NoError(t, r.ReplaceCatalog(ctx, sampleProducts(), nil))

	got, err := r.ProductsByHandles(ctx, []string{"premium-business-cards", "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 41.0, got["premium-business-cards"].Pricing[0].Price)

	got, err = r.ProductsByHandles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSyncRuns(t *testing.T) {
	ctx := context.Background()
	r := NewCatalog(dbtest.Open(t))

	_, err := r.LastSync(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.RecordSync(ctx, &models.SyncRun{Products: 3}))
	require.NoError(t, r.RecordSync(ctx, &models.SyncRun{Products: 5, Collections: 2}))

	last, err := r.LastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, last.Products)
	assert.Equal(t, 2, last.Collections)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(dbtest.Open(t))

	u, err := users.Create(ctx, " Admin@Print.Shop ", "s3cretpass", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@print.shop", u.Email)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.True(t, u.CanSync())

	_, err = users.Create(ctx, "admin@print.shop", "another-pass", models.RoleStaff)
	assert.ErrorIs(t, err, ErrEmailTaken)
	_, err = users.Create(ctx, "new@print.shop", "short", models.RoleStaff)
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = users.Create(ctx, " ", "long-enough", models.RoleStaff)
	assert.Error(t, err)

	got, err := users.Authenticate(ctx, "ADMIN@print.shop", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Authenticate(ctx, "admin@print.shop", "wrong")
	assert.ErrorIs(t, err, ErrBadLogin)
	_, err = users.Authenticate(ctx, "ghost@print.shop", "whatever")
	assert.ErrorIs(t, err, ErrBadLogin)
}
