package catalog

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"printshop/internal/pricing"
)

// SortBy orders product listings.
type SortBy string

const (
	SortFeatured  SortBy = "featured"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortName      SortBy = "name"
)

func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortPriceLow, SortPriceHigh, SortName:
		return SortBy(s), nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

const defaultIcon = "🖨️"

var categoryIcons = map[string]string{
	"business-cards-stationery": "💼",
	"business-cards":            "💼",
	"flyers-brochures":          "📄",
	"flyers":                    "📄",
	"brochures":                 "📄",
	"stickers-labels":           "🏷️",
	"stickers":                  "🏷️",
	"labels":                    "🏷️",
	"packaging":                 "📦",
	"marketing-materials":       "📢",
	"marketing":                 "📢",
	"featured-products":         "⭐",
	"special-offers":            "🔥",
	"express-delivery":          "⚡",
	"banners":                   "🎌",
	"posters":                   "🖼️",
	"catalogs":                  "📚",
	"letterheads":               "📝",
	"envelopes":                 "✉️",
	"folders":                   "📁",
	"calendars":                 "📅",
	"notebooks":                 "📓",
}

func Icon(slug string) string {
	if icon, ok := categoryIcons[slug]; ok {
		return icon
	}
	return defaultIcon
}

// FilterByCategory keeps products whose category or a tag equals cat, or
// whose handle contains it. Empty and "all" keep everything.
func FilterByCategory(products []Product, cat string) []Product {
	if cat == "" || cat == "all" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == cat || hasTag(p.Tags, cat) || strings.Contains(p.Handle, cat) {
			out = append(out, p)
		}
	}
	return out
}

// Search matches q case-insensitively against title, description and tags.
func Search(products []Product, q string) []Product {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			tagContains(p.Tags, q) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy. Products without online tiers sort last by
// price in both directions.
func Sort(products []Product, by SortBy) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch by {
	case SortPriceLow, SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := pricing.Lowest(out[i].Pricing, pricing.Online)
			b, bok := pricing.Lowest(out[j].Pricing, pricing.Online)
			if aok != bok {
				return aok
			}
			if by == SortPriceLow {
				return a.Price < b.Price
			}
			return a.Price > b.Price
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Featured() && !out[j].Featured()
		})
	}
	return out
}

// Categories groups products by category, most populated first.
func Categories(products []Product) []Category {
	counts := make(map[string]int)
	for _, p := range products {
		if p.Category != "" {
			counts[p.Category]++
		}
	}
	out := make([]Category, 0, len(counts))
	for slug, n := range counts {
		out = append(out, Category{
			ID:           slug,
			Name:         TitleFromSlug(slug),
			Slug:         slug,
			Icon:         Icon(slug),
			ProductCount: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductCount != out[j].ProductCount {
			return out[i].ProductCount > out[j].ProductCount
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

func CategoriesFromCollections(collections []Collection) []Category {
	out := make([]Category, 0, len(collections))
	for _, c := range collections {
		out = append(out, Category{
			ID:           c.Handle,
			Name:         c.Title,
			Slug:         c.Handle,
			Description:  c.Description,
			Icon:         Icon(c.Handle),
			ProductCount: c.ProductCount,
		})
	}
	return out
}

// TitleFromSlug turns "business-cards" into "Business Cards".
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func tagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
