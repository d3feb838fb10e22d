package route

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"field-route-service/internal/domain"
	"field-route-service/internal/ports"
)

type DispatchRequest struct {
	TechnicianCount    int
	TechnicianCapacity int
	Origin             *domain.Coordinate
	StartAt            *time.Time
	AverageSpeedMph    float64
}

type dispatchResult struct {
	index int
	plan  *domain.RoutePlan
	err   error
}

// PlanDispatch loads the day's jobs, distributes them across technicians and
// computes one fallback-ordered route per technician. When a segment
// provider is configured, each ordered route is reconciled against the
// provider's authoritative leg metrics before projection.
func PlanDispatch(
	ctx context.Context,
	req DispatchRequest,
	repo ports.JobRepository,
	provider ports.SegmentProvider,
) ([]*domain.RoutePlan, error) {
	jobs, err := repo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan dispatch: list jobs: %w", err)
	}

	stops := make([]domain.Stop, 0, len(jobs))
	for _, j := range jobs {
		if strings.TrimSpace(j.JobID) == "" {
			return nil, fmt.Errorf("plan dispatch: job with empty id (customer=%q)", j.Customer)
		}
		stops = append(stops, j.ToStop())
	}

	if len(stops) == 0 {
		return []*domain.RoutePlan{}, nil
	}

	technicians := make([]*domain.Technician, 0, req.TechnicianCount)
	for i := 0; i < req.TechnicianCount; i++ {
		technicians = append(technicians, domain.NewTechnician(i+1, req.TechnicianCapacity, req.Origin))
	}

	assignOrigin := stops[0].Coord
	if req.Origin != nil {
		assignOrigin = *req.Origin
	}

	if err := AssignStopsByDistance(technicians, stops, assignOrigin); err != nil {
		return nil, fmt.Errorf("plan dispatch: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Routes are independent per technician; plan them concurrently but
	// bound provider fan-out with a small semaphore.
	sem := make(chan struct{}, 4)
	resultsCh := make(chan dispatchResult, len(technicians))
	var wg sync.WaitGroup

	for i, tech := range technicians {
		wg.Add(1)
		go func(idx int, tech *domain.Technician) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			plan, err := planTechnicianRoute(ctx, req, tech, provider)
			if err != nil {
				resultsCh <- dispatchResult{index: idx, err: err}
				cancel()
				return
			}

			resultsCh <- dispatchResult{index: idx, plan: plan}
		}(i, tech)
	}

	wg.Wait()
	close(resultsCh)

	plans := make([]*domain.RoutePlan, len(technicians))
	var dispatchErr error
	for res := range resultsCh {
		if res.err != nil {
			if dispatchErr == nil {
				dispatchErr = res.err
			}
			continue
		}
		plans[res.index] = res.plan
	}
	if dispatchErr != nil {
		return nil, dispatchErr
	}

	return plans, nil
}

func planTechnicianRoute(
	ctx context.Context,
	req DispatchRequest,
	tech *domain.Technician,
	provider ports.SegmentProvider,
) (*domain.RoutePlan, error) {
	ordered := NearestNeighborOrder(tech.Stops, req.Origin)

	var overrides map[string]domain.SegmentOverride
	if provider != nil && len(ordered) > 0 {
		var err error
		overrides, err = provider.LegOverrides(ctx, req.Origin, ordered)
		if err != nil {
			return nil, fmt.Errorf("plan dispatch: technician %d leg overrides: %w", tech.TechnicianID, err)
		}
	}

	plan := CalculateRouteMetrics(ordered, Options{
		Origin:          req.Origin,
		Overrides:       overrides,
		StartAt:         req.StartAt,
		AverageSpeedMph: req.AverageSpeedMph,
	})

	// Ordering was computed locally, so the plan is fallback provenance
	// even when the provider supplied the leg metrics.
	plan.Source = domain.SourceFallback
	return plan, nil
}
