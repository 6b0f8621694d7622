package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/pricing"
)

func TestVariantQuantity(t *testing.T) {
	moq := 250
	tests := []struct {
		name string
		p    Product
		v    Variant
		want int
	}{
		{"option digits", Product{}, Variant{Options: map[string]string{"Quantity": "1,000 pcs"}}, 1000},
		{"min order", Product{MinOrderQuantity: &moq}, Variant{}, 250},
		{"unparseable option", Product{MinOrderQuantity: &moq}, Variant{Options: map[string]string{"Quantity": "lots"}}, 250},
		{"default", Product{}, Variant{}, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.VariantQuantity(tt.v))
		})
	}
}

func TestVariantFor(t *testing.T) {
	p := Product{Variants: []Variant{
		{ID: "plain"},
		{ID: "v500", Options: map[string]string{"Quantity": "500 pcs"}},
		{ID: "v1000", Options: map[string]string{"Quantity": "1,000"}},
	}}

	v, ok := p.VariantFor(1000)
	require.True(t, ok)
	assert.Equal(t, "v1000", v.ID)

	v, ok = p.VariantFor(500)
	require.True(t, ok)
	assert.Equal(t, "v500", v.ID)

	_, ok = p.VariantFor(2000)
	assert.False(t, ok)
}

func TestVariantPrice(t *testing.T) {
	compare := 60.0
	v := Variant{Price: 45, CompareAtPrice: &compare}
	assert.Equal(t, 45.0, VariantPrice(v, pricing.Online))
	assert.Equal(t, 60.0, VariantPrice(v, pricing.Normal))
	assert.Equal(t, 45.0, VariantPrice(Variant{Price: 45}, pricing.Express))
}

func TestOrderMessage(t *testing.T) {
	p := Product{Title: "Premium Business Cards"}
	v := Variant{Title: "500 / Matte", Price: 45, Options: map[string]string{"Quantity": "500"}}

	want := "Hi, I would like to order:\n\n" +
		"*Product:* Premium Business Cards\n" +
		"*Variant:* 500 / Matte\n" +
		"*Price:* 45 AED\n" +
		"*Price per unit:* 0.090 AED\n\n" +
		"Please confirm availability and processing time."
	assert.Equal(t, want, OrderMessage(p, v))
}

func TestOrderLink(t *testing.T) {
	link, err := OrderLink("+971 50", "Hi & bye?")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/971%2050?text=Hi%20%26%20bye%3F", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi & bye?", u.Query().Get("text"))

	_, err = OrderLink("  ", "x")
	assert.ErrorIs(t, err, ErrNoContactNumber)
}
