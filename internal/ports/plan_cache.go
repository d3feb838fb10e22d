package ports

import (
	"context"

	"field-route-service/internal/domain"
)

// Optional cache of computed dispatch results keyed by a request
// fingerprint. A miss is (nil, nil); cache failures are surfaced so callers
// can decide whether to degrade to recomputation.
type PlanCache interface {
	Get(ctx context.Context, key string) ([]*domain.RoutePlan, error)
	Put(ctx context.Context, key string, plans []*domain.RoutePlan) error
}
