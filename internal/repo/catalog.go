package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"printshop/internal/catalog"
	"printshop/internal/logx"
	"printshop/internal/models"
)

var ErrNotFound = errors.New("not found")

// Reader is the read side of the catalog snapshot.
type Reader interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*catalog.Product, error)
	ProductsByHandles(ctx context.Context, handles []string) (map[string]catalog.Product, error)
	Collections(ctx context.Context) ([]catalog.Collection, error)
	CollectionByHandle(ctx context.Context, handle string) (*catalog.Collection, error)
}

type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ReplaceCatalog swaps the whole snapshot in one transaction. Products are
// stored as given; they must already be transformed. Later duplicates of a
// handle are dropped.
func (r *Catalog) ReplaceCatalog(ctx context.Context, products []catalog.Product, collections []catalog.Collection) error {
	rows := make([]models.Product, 0, len(products))
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		if seen[p.Handle] {
			logx.Warn().Str("handle", p.Handle).Msg("duplicate product handle, skipping")
			continue
		}
		seen[p.Handle] = true
		rows = append(rows, models.NewProduct(p, i))
	}
	cols := make([]models.Collection, 0, len(collections))
	seenCol := make(map[string]bool, len(collections))
	for i, c := range collections {
		if seenCol[c.Handle] {
			continue
		}
		seenCol[c.Handle] = true
		cols = append(cols, models.NewCollection(c, i))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Collection{}).Error; err != nil {
			return fmt.Errorf("clear collections: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return fmt.Errorf("insert products: %w", err)
			}
		}
		if len(cols) > 0 {
			if err := tx.CreateInBatches(cols, 100).Error; err != nil {
				return fmt.Errorf("insert collections: %w", err)
			}
		}
		return nil
	})
}

func (r *Catalog) Products(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("position asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Data.Data())
	}
	return out, nil
}

func (r *Catalog) ProductByHandle(ctx context.Context, handle string) (*catalog.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", handle, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", handle, err)
	}
	p := row.Data.Data()
	return &p, nil
}

// ProductsByHandles returns the products found among handles, keyed by handle.
func (r *Catalog) ProductsByHandles(ctx context.Context, handles []string) (map[string]catalog.Product, error) {
	out := make(map[string]catalog.Product, len(handles))
	if len(handles) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("handle IN ?", handles).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	for _, row := range rows {
		out[row.Handle] = row.Data.Data()
	}
	return out, nil
}

func (r *Catalog) Collections(ctx context.Context) ([]catalog.Collection, error) {
	var rows []models.Collection
	if err := r.db.WithContext(ctx).Order("position asc, id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	out := make([]catalog.Collection, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Catalog())
	}
	return out, nil
}

// CollectionByHandle loads the collection with its products in collection
// order. Handles without a stored product are skipped.
func (r *Catalog) CollectionByHandle(ctx context.Context, handle string) (*catalog.Collection, error) {
	var row models.Collection
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("collection %s: %w", handle, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", handle, err)
	}

	c := row.Catalog()
	byHandle, err := r.ProductsByHandles(ctx, c.ProductHandles)
	if err != nil {
		return nil, err
	}
	c.Products = make([]catalog.Product, 0, len(c.ProductHandles))
	for _, h := range c.ProductHandles {
		if p, ok := byHandle[h]; ok {
			c.Products = append(c.Products, p)
		}
	}
	c.ProductCount = len(c.Products)
	return &c, nil
}

func (r *Catalog) RecordSync(ctx context.Context, run *models.SyncRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("record sync: %w", err)
	}
	return nil
}

// LastSync returns the most recent sync, or ErrNotFound.
func (r *Catalog) LastSync(ctx context.Context) (*models.SyncRun, error) {
	var run models.SyncRun
	err := r.db.WithContext(ctx).Order("id desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("last sync: %w", err)
	}
	return &run, nil
}

var _ Reader = (*Catalog)(nil)
