// Package syncer pulls the storefront catalog and replaces the local
// snapshot with it.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop/internal/catalog"
	"printshop/internal/errx"
	"printshop/internal/logx"
	"printshop/internal/models"
	"printshop/internal/storefront"
)

var ErrEmptyCatalog = errors.New("storefront returned no products")

// Source is the upstream catalog.
type Source interface {
	Products(ctx context.Context, query string) ([]storefront.Product, error)
	Collections(ctx context.Context) ([]storefront.Collection, error)
}

// Store persists a transformed snapshot.
type Store interface {
	ReplaceCatalog(ctx context.Context, products []catalog.Product, collections []catalog.Collection) error
	RecordSync(ctx context.Context, run *models.SyncRun) error
}

// Invalidator drops cached reads of the old snapshot.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Report struct {
	Products    int           `json:"products"`
	Collections int           `json:"collections"`
	Duration    time.Duration `json:"duration"`
}

type Syncer struct {
	source      Source
	store       Store
	cache       Invalidator
	transformer *catalog.Transformer
	now         func() time.Time
}

// New builds a Syncer. cache may be nil.
func New(source Source, store Store, cache Invalidator) *Syncer {
	return &Syncer{
		source:      source,
		store:       store,
		cache:       cache,
		transformer: catalog.NewTransformer(),
		now:         time.Now,
	}
}

// WithTransformer replaces the default transformer.
func (s *Syncer) WithTransformer(t *catalog.Transformer) *Syncer {
	s.transformer = t
	return s
}

// Run fetches every product and collection, transforms each raw product
// once and swaps the stored snapshot. An empty upstream catalog is
// rejected so a bad fetch cannot wipe the store.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	start := s.now()

	rawProducts, err := s.source.Products(ctx, "")
	if err != nil {
		return nil, errx.WrapUpstream(fmt.Errorf("fetch products: %w", err), "")
	}
	if len(rawProducts) == 0 {
		return nil, ErrEmptyCatalog
	}
	rawCollections, err := s.source.Collections(ctx)
	if err != nil {
		return nil, errx.WrapUpstream(fmt.Errorf("fetch collections: %w", err), "")
	}

	products := make([]catalog.Product, 0, len(rawProducts))
	for _, raw := range rawProducts {
		products = append(products, s.transformer.Product(raw))
	}
	collections := make([]catalog.Collection, 0, len(rawCollections))
	for _, raw := range rawCollections {
		collections = append(collections, catalog.CollectionRef(raw))
	}

	if err := s.store.ReplaceCatalog(ctx, products, collections); err != nil {
		return nil, fmt.Errorf("replace catalog: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logx.Warn().Err(err).Msg("cache invalidation failed after sync")
		}
	}

	report := &Report{
		Products:    len(products),
		Collections: len(collections),
		Duration:    s.now().Sub(start),
	}
	run := &models.SyncRun{
		Products:    report.Products,
		Collections: report.Collections,
		DurationMS:  report.Duration.Milliseconds(),
	}
	if err := s.store.RecordSync(ctx, run); err != nil {
		logx.Warn().Err(err).Msg("failed to record sync run")
	}

	logx.Info().
		Int("products", report.Products).
		Int("collections", report.Collections).
		Dur("duration", report.Duration).
		Msg("catalog synced")
	return report, nil
}
