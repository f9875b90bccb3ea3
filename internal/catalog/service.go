package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mu7ammad-3li/swiftcart/internal/domain"
)

// lookupTimeout bounds one collapsed cache-or-repo lookup.
const lookupTimeout = 5 * time.Second

// Service is a read-through cached view of the catalog. Cache
// failures degrade to repository reads and are logged, never
// surfaced: the catalog must stay available while Redis is down.
type Service struct {
	repo  ProductReader
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo ProductReader, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	// Use singleflight to collapse concurrent misses for the same key
	v, err, _ := s.sfg.Do(productID, func() (interface{}, error) {
		// The closure serves every collapsed caller, so its lifetime
		// must not be tied to whichever request entered first.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		product, err := s.cache.Get(ctx, productID)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("product cache get failed", "product_id", productID, "error", err)
		}

		product, errGet := s.repo.GetProduct(ctx, productID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), product); errSet != nil {
				slog.Warn("product cache set failed", "product_id", productID, "error", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}
