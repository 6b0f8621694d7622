// Package pricing holds tiered-price lookup and the derived values shown
// to buyers: savings percentages, price increases and per-unit prices.
//
// Functions here are pure and operate on in-memory tier slices.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// PriceType names a price category for the same quantity.
type PriceType string

const (
	Normal  PriceType = "normal"
	Online  PriceType = "online"
	Express PriceType = "express"
)

// Types lists the price types in display order.
var Types = []PriceType{Online, Normal, Express}

var (
	ErrTierNotFound     = errors.New("no matching pricing tier")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrInvalidPriceType = errors.New("unknown price type")
)

func (t PriceType) Valid() bool {
	switch t {
	case Normal, Online, Express:
		return true
	}
	return false
}

// Label is the column heading used in exports.
func (t PriceType) Label() string {
	switch t {
	case Online:
		return "Online"
	case Normal:
		return "Normal"
	case Express:
		return "Express"
	}
	return string(t)
}

// ParsePriceType validates s. An empty string means Online, the default
// storefront price.
func ParsePriceType(s string) (PriceType, error) {
	if s == "" {
		return Online, nil
	}
	t := PriceType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriceType, s)
	}
	return t, nil
}

// Tier maps (Quantity, Type) to the price of the whole quantity.
type Tier struct {
	Quantity     int       `json:"quantity"`
	Type         PriceType `json:"type"`
	Price        float64   `json:"price"`
	PricePerUnit float64   `json:"perPiece,omitempty"`

	Sides    int    `json:"sides,omitempty"`
	Finish   string `json:"finish,omitempty"`
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
	Colors   int    `json:"colors,omitempty"`
	Paper    string `json:"paper,omitempty"`
}

// PerUnit returns the explicit per-unit price or Price/Quantity.
func (t Tier) PerUnit() float64 {
	if t.PricePerUnit > 0 {
		return t.PricePerUnit
	}
	if t.Quantity <= 0 {
		return 0
	}
	return t.Price / float64(t.Quantity)
}

// round rounds half up, the way the storefront displays whole prices.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
