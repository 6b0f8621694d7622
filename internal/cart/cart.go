// Package cart keeps the buyer's cart and turns it into checkout lines.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"printshop/internal/catalog"
	"printshop/internal/pricing"
)

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidTurnaround  = errors.New("unknown turnaround")
	ErrExpressUnavailable = errors.New("express turnaround is not available for this product")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrNoVariant          = errors.New("cart item has no purchasable variant")
	ErrEmpty              = errors.New("cart is empty")
	ErrCartFull           = errors.New("cart is full")
)

type Turnaround string

const (
	TurnaroundNormal  Turnaround = "normal"
	TurnaroundExpress Turnaround = "express"
)

// Options are the buyer's selections for one line. Quantity is the tier
// quantity (e.g. 1000 cards), not the number of times it is ordered.
type Options struct {
	Quantity   int               `json:"quantity"`
	PriceType  pricing.PriceType `json:"priceType"`
	Turnaround Turnaround        `json:"turnaround"`
	VariantID  string            `json:"variantId,omitempty"`
	Paper      string            `json:"paper,omitempty"`
}

// Item is what the session keeps for one line. Display data such as the
// title and image is read from the catalog when the cart is priced.
type Item struct {
	ID       string  `json:"id"`
	Handle   string  `json:"handle"`
	Quantity int     `json:"quantity"`
	Options  Options `json:"selectedOptions"`
}

type Cart struct {
	Items []Item `json:"items"`
}

// Add puts quantity of p with opts in the cart. An existing item with the
// same product and options has its quantity increased instead.
func (c *Cart) Add(p catalog.Product, quantity int, opts Options) (Item, error) {
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}
	opts, err := normalize(p, opts)
	if err != nil {
		return Item{}, err
	}

	for i := range c.Items {
		if c.Items[i].Handle == p.Handle && c.Items[i].Options == opts {
			c.Items[i].Quantity += quantity
			return c.Items[i], nil
		}
	}

	item := Item{
		ID:       newItemID(),
		Handle:   p.Handle,
		Quantity: quantity,
		Options:  opts,
	}
	c.Items = append(c.Items, item)
	return item, nil
}

func (c *Cart) Remove(id string) bool {
	for i, it := range c.Items {
		if it.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity of an item; values below 1 are rejected,
// use Remove to drop an item.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// storedItem is the session form of Item. Keys are short and defaults
// are omitted since the whole cart has to fit in a cookie.
type storedItem struct {
	ID         string `json:"i"`
	Handle     string `json:"h"`
	Quantity   int    `json:"q"`
	Tier       int    `json:"t"`
	PriceType  string `json:"p,omitempty"`
	Turnaround string `json:"x,omitempty"`
	VariantID  string `json:"v,omitempty"`
	Paper      string `json:"pp,omitempty"`
}

const variantGIDPrefix = "gid://shopify/ProductVariant/"

// Encode serialises the cart for session storage. A positive limit caps
// the encoded size; a cart over it fails with ErrCartFull.
func (c Cart) Encode(limit int) (string, error) {
	stored := make([]storedItem, 0, len(c.Items))
	for _, it := range c.Items {
		si := storedItem{
			ID:        it.ID,
			Handle:    it.Handle,
			Quantity:  it.Quantity,
			Tier:      it.Options.Quantity,
			VariantID: strings.TrimPrefix(it.Options.VariantID, variantGIDPrefix),
			Paper:     it.Options.Paper,
		}
		if it.Options.PriceType != pricing.Online {
			si.PriceType = string(it.Options.PriceType)
		}
		if it.Options.Turnaround != TurnaroundNormal {
			si.Turnaround = string(it.Options.Turnaround)
		}
		stored = append(stored, si)
	}
	b, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	if limit > 0 && len(b) > limit {
		return "", fmt.Errorf("%w: %d items use %d of %d bytes", ErrCartFull, len(c.Items), len(b), limit)
	}
	return string(b), nil
}

// Decode restores a cart from Encode output. Garbage yields an empty cart.
func Decode(raw string) Cart {
	var (
		c      Cart
		stored []storedItem
	)
	if raw == "" {
		return c
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Cart{}
	}
	for _, si := range stored {
		if si.ID == "" || si.Handle == "" {
			continue
		}
		it := Item{
			ID:       si.ID,
			Handle:   si.Handle,
			Quantity: si.Quantity,
			Options: Options{
				Quantity:   si.Tier,
				PriceType:  pricing.PriceType(si.PriceType),
				Turnaround: Turnaround(si.Turnaround),
				VariantID:  si.VariantID,
				Paper:      si.Paper,
			},
		}
		if it.Options.PriceType == "" {
			it.Options.PriceType = pricing.Online
		}
		if it.Options.Turnaround == "" {
			it.Options.Turnaround = TurnaroundNormal
		}
		if isDigits(it.Options.VariantID) {
			it.Options.VariantID = variantGIDPrefix + it.Options.VariantID
		}
		c.Items = append(c.Items, it)
	}
	return c
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// newItemID is a short random id, unique within one cart.
func newItemID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func normalize(p catalog.Product, opts Options) (Options, error) {
	if opts.PriceType == "" {
		opts.PriceType = pricing.Online
	}
	if !opts.PriceType.Valid() {
		return opts, fmt.Errorf("%w: %q", pricing.ErrInvalidPriceType, opts.PriceType)
	}

	switch opts.Turnaround {
	case "":
		opts.Turnaround = TurnaroundNormal
	case TurnaroundNormal:
	case TurnaroundExpress:
		if !p.Turnaround.ExpressAvailable {
			return opts, ErrExpressUnavailable
		}
	default:
		return opts, fmt.Errorf("%w: %q", ErrInvalidTurnaround, opts.Turnaround)
	}

	if opts.Quantity == 0 {
		if low, ok := pricing.Lowest(p.Pricing, opts.PriceType); ok {
			opts.Quantity = low.Quantity
		} else {
			opts.Quantity = 1
		}
	}
	if len(p.Pricing) > 0 {
		if _, err := pricing.Resolve(p.Pricing, opts.Quantity, opts.PriceType); err != nil {
			return opts, err
		}
	} else if opts.Quantity < 0 {
		return opts, fmt.Errorf("%w: %d", pricing.ErrInvalidQuantity, opts.Quantity)
	}

	if opts.VariantID != "" {
		if _, ok := p.Variant(opts.VariantID); !ok {
			return opts, fmt.Errorf("%w: %s", ErrUnknownVariant, opts.VariantID)
		}
	} else if v, ok := p.VariantFor(opts.Quantity); ok {
		opts.VariantID = v.ID
	} else if len(p.Variants) > 0 {
		opts.VariantID = p.Variants[0].ID
	}
	return opts, nil
}
