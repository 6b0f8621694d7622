package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cards = []Tier{
	{Quantity: 1000, Type: Online, Price: 37},
	{Quantity: 1000, Type: Normal, Price: 42},
	{Quantity: 500, Type: Online, Price: 25},
	{Quantity: 500, Type: Normal, Price: 30},
}

func TestResolve(t *testing.T) {
	tier, err := Resolve(cards, 1000, Online)
	require.NoError(t, err)
	assert.Equal(t, 37.0, tier.Price)

	tier, err = Resolve(cards, 1000, Normal)
	require.NoError(t, err)
	assert.Equal(t, 42.0, tier.Price)

	_, err = Resolve(cards, 1000, Express)
	assert.ErrorIs(t, err, ErrTierNotFound)

	_, err = Resolve(cards, 0, Online)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Resolve(cards, 1000, PriceType("wholesale"))
	assert.ErrorIs(t, err, ErrInvalidPriceType)
}

func TestResolveFirstDuplicateWins(t *testing.T) {
	tiers := []Tier{
		{Quantity: 100, Type: Online, Price: 10},
		{Quantity: 100, Type: Online, Price: 99},
	}
	tier, err := Resolve(tiers, 100, Online)
	require.NoError(t, err)
	assert.Equal(t, 10.0, tier.Price)
}

func TestQuoteFor(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		q, err := QuoteFor(cards, 500, Normal)
		require.NoError(t, err)
		assert.True(t, q.Exact)
		assert.Equal(t, 30.0, q.Price)
	})

	t.Run("falls back to lowest of same type", func(t *testing.T) {
		q, err := QuoteFor(cards, 250, Online)
		require.NoError(t, err)
		assert.False(t, q.Exact)
		assert.Equal(t, 25.0, q.Price)
		assert.Equal(t, 500, q.Quantity)
	})

	t.Run("no tier of type", func(t *testing.T) {
		_, err := QuoteFor(cards, 1000, Express)
		assert.ErrorIs(t, err, ErrTierNotFound)
	})

	t.Run("invalid input is not masked by fallback", func(t *testing.T) {
		_, err := QuoteFor(cards, -5, Online)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestLowestPrice(t *testing.T) {
	assert.Equal(t, 25.0, LowestPrice(cards, Online))
	assert.Equal(t, 30.0, LowestPrice(cards, Normal))
	assert.Equal(t, 0.0, LowestPrice(cards, Express))
	assert.Equal(t, 0.0, LowestPrice(nil, Online))
}

func TestSavings(t *testing.T) {
	assert.Equal(t, 12, Savings(37, 42))
	assert.Equal(t, 0, Savings(50, 0))
	assert.Equal(t, 0, Savings(50, -10))
	assert.Equal(t, 0, Savings(42, 42))
	assert.Equal(t, 100, Savings(0, 42))

	for normal := 1.0; normal <= 500; normal += 7 {
		for online := 0.0; online <= normal; online += 3 {
			s := Savings(online, normal)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestDefaultDiscount(t *testing.T) {
	explicit := 20
	assert.Equal(t, 20, DefaultDiscount(&explicit, cards))
	// lowest online 25 vs lowest normal 30
	assert.Equal(t, 17, DefaultDiscount(nil, cards))
	assert.Equal(t, 0, DefaultDiscount(nil, []Tier{{Quantity: 1, Type: Online, Price: 5}}))
}

func TestApplyPriceIncrease(t *testing.T) {
	for _, p := range []float64{0, 1, 37, 41.5, 1234.56} {
		assert.Equal(t, p, ApplyPriceIncrease(p, 0))
	}
	assert.Equal(t, 110.0, ApplyPriceIncrease(100, 10))
	assert.Equal(t, 41.0, ApplyPriceIncrease(37, 12))
	assert.Equal(t, 90.0, ApplyPriceIncrease(100, -10))

	// applying twice compounds
	once := ApplyPriceIncrease(100, 10)
	assert.Equal(t, 121.0, ApplyPriceIncrease(once, 10))
}

func TestPerUnit(t *testing.T) {
	assert.InDelta(t, 0.037, Tier{Quantity: 1000, Price: 37}.PerUnit(), 1e-9)
	assert.Equal(t, 0.05, Tier{Quantity: 1000, Price: 37, PricePerUnit: 0.05}.PerUnit())
	assert.Equal(t, 0.0, Tier{Price: 37}.PerUnit())
}

func TestQuantities(t *testing.T) {
	assert.Equal(t, []int{500, 1000}, Quantities(cards))
}

func TestParsePriceType(t *testing.T) {
	typ, err := ParsePriceType("")
	require.NoError(t, err)
	assert.Equal(t, Online, typ)

	typ, err = ParsePriceType("express")
	require.NoError(t, err)
	assert.Equal(t, Express, typ)

	_, err = ParsePriceType("cheap")
	assert.ErrorIs(t, err, ErrInvalidPriceType)
}
