package storefront

// Money is a Storefront API amount. Amount is a decimal string.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	AvailableForSale  bool             `json:"availableForSale"`
	QuantityAvailable int              `json:"quantityAvailable"`
	PriceV2           Money            `json:"priceV2"`
	CompareAtPriceV2  *Money           `json:"compareAtPriceV2"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
	SKU               string           `json:"sku"`
	Weight            float64          `json:"weight"`
	WeightUnit        string           `json:"weightUnit"`
}

// Metafield values are JSON-encoded strings for structured fields.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	EndCursor       string `json:"endCursor"`
}

type ImageEdge struct {
	Node Image `json:"node"`
}

type VariantEdge struct {
	Node Variant `json:"node"`
}

// Product is the raw upstream product. Metafields that were not set come
// back as null entries.
type Product struct {
	ID                  string      `json:"id"`
	Handle              string      `json:"handle"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	ProductType         string      `json:"productType"`
	Vendor              string      `json:"vendor"`
	Tags                []string    `json:"tags"`
	AvailableForSale    bool        `json:"availableForSale"`
	PriceRange          PriceRange  `json:"priceRange"`
	CompareAtPriceRange *PriceRange `json:"compareAtPriceRange"`
	Images              struct {
		Edges []ImageEdge `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []VariantEdge `json:"edges"`
	} `json:"variants"`
	Metafields []*Metafield `json:"metafields"`
}

type ProductEdge struct {
	Cursor string  `json:"cursor"`
	Node   Product `json:"node"`
}

type ProductConnection struct {
	Edges    []ProductEdge `json:"edges"`
	PageInfo PageInfo      `json:"pageInfo"`
}

type Collection struct {
	ID          string            `json:"id"`
	Handle      string            `json:"handle"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       *Image            `json:"image"`
	Products    ProductConnection `json:"products"`
}

// CartLineInput is one checkout line.
type CartLineInput struct {
	MerchandiseID string      `json:"merchandiseId"`
	Quantity      int         `json:"quantity"`
	Attributes    []Attribute `json:"attributes,omitempty"`
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Cart is the subset of the created cart the service needs.
type Cart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		TotalAmount    Money `json:"totalAmount"`
		SubtotalAmount Money `json:"subtotalAmount"`
	} `json:"cost"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
