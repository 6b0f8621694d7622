package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"printshop/internal/pricing"
)

// Currency is the display currency of every price in the catalog.
const Currency = "AED"

// defaultOrderQuantity is assumed when neither the variant nor the product
// says how many pieces a price covers.
const defaultOrderQuantity = 1000

var ErrNoContactNumber = errors.New("contact number is not configured")

// VariantPrice is the price shown for v under typ: the sale price online,
// the compare-at price (when set) otherwise.
func VariantPrice(v Variant, typ pricing.PriceType) float64 {
	if typ != pricing.Online && v.CompareAtPrice != nil {
		return *v.CompareAtPrice
	}
	return v.Price
}

// VariantQuantity is the number of pieces v covers, read from its
// "Quantity" option ("1,000 pcs" -> 1000), then the product minimum.
func (p Product) VariantQuantity(v Variant) int {
	if n, ok := optionQuantity(v); ok {
		return n
	}
	if p.MinOrderQuantity != nil && *p.MinOrderQuantity > 0 {
		return *p.MinOrderQuantity
	}
	return defaultOrderQuantity
}

// VariantFor returns the variant whose "Quantity" option equals quantity.
// Variants without that option never match.
func (p Product) VariantFor(quantity int) (Variant, bool) {
	for _, v := range p.Variants {
		if n, ok := optionQuantity(v); ok && n == quantity {
			return v, true
		}
	}
	return Variant{}, false
}

func optionQuantity(v Variant) (int, bool) {
	raw, ok := v.Options["Quantity"]
	if !ok {
		return 0, false
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// OrderMessage is the pre-filled chat message for ordering v of p online.
func OrderMessage(p Product, v Variant) string {
	price := VariantPrice(v, pricing.Online)
	perUnit := price / float64(p.VariantQuantity(v))

	var b strings.Builder
	b.WriteString("Hi, I would like to order:\n\n")
	fmt.Fprintf(&b, "*Product:* %s\n", p.Title)
	fmt.Fprintf(&b, "*Variant:* %s\n", v.Title)
	fmt.Fprintf(&b, "*Price:* %s %s\n", strconv.FormatFloat(price, 'f', -1, 64), Currency)
	fmt.Fprintf(&b, "*Price per unit:* %.3f %s\n\n", perUnit, Currency)
	b.WriteString("Please confirm availability and processing time.")
	return b.String()
}

// OrderLink builds the wa.me link that opens a chat with number and msg.
func OrderLink(number, msg string) (string, error) {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	if number == "" {
		return "", ErrNoContactNumber
	}
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + url.PathEscape(number) + "?text=" + text, nil
}
