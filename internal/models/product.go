package models

import (
	"gorm.io/datatypes"

	"printshop/internal/catalog"
)

// Product is one ingested catalog entry. Data holds the transformed
// product with the price increase already applied; the plain columns exist
// for ordering and filtering.
type Product struct {
	Base
	ShopifyID string `gorm:"uniqueIndex;not null"`
	Handle    string `gorm:"uniqueIndex;not null"`
	Title     string `gorm:"not null"`
	Category  string `gorm:"index"`
	Position  int    `gorm:"not null;default:0"`
	Data      datatypes.JSONType[catalog.Product]
}

// Collection stores collection metadata and the handles of its products.
type Collection struct {
	Base
	ShopifyID      string `gorm:"uniqueIndex;not null"`
	Handle         string `gorm:"uniqueIndex;not null"`
	Title          string `gorm:"not null"`
	Description    string `gorm:"type:text"`
	ImageURL       string
	Position       int `gorm:"not null;default:0"`
	ProductHandles datatypes.JSONSlice[string]
}

// SyncRun records one catalog ingestion.
type SyncRun struct {
	Base
	Products    int
	Collections int
	DurationMS  int64
}

func NewProduct(p catalog.Product, position int) Product {
	return Product{
		ShopifyID: p.ID,
		Handle:    p.Handle,
		Title:     p.Title,
		Category:  p.Category,
		Position:  position,
		Data:      datatypes.NewJSONType(p),
	}
}

func NewCollection(c catalog.Collection, position int) Collection {
	return Collection{
		ShopifyID:      c.ID,
		Handle:         c.Handle,
		Title:          c.Title,
		Description:    c.Description,
		ImageURL:       c.Image,
		Position:       position,
		ProductHandles: datatypes.JSONSlice[string](c.ProductHandles),
	}
}

func (c Collection) Catalog() catalog.Collection {
	return catalog.Collection{
		ID:             c.ShopifyID,
		Handle:         c.Handle,
		Title:          c.Title,
		Description:    c.Description,
		Image:          c.ImageURL,
		ProductCount:   len(c.ProductHandles),
		ProductHandles: []string(c.ProductHandles),
	}
}
