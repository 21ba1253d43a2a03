package storefront

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"wisata/internal/api"
	"wisata/internal/platform/metrics"
)

const homeSectionSize = 6

// HomeData is the home page aggregate: the first few available
// packages of each kind, fetched together.
type HomeData struct {
	Tours      []api.Tour
	Activities []api.Activity
	Rentals    []api.Rental
}

// Home assembles the home page aggregate with a short-lived cache, so
// repeated visits do not refan out to the upstream every time.
type Home struct {
	tours      PublicService[api.Tour]
	activities PublicService[api.Activity]
	rentals    PublicService[api.Rental]
	log        *slog.Logger
	metrics    *metrics.Metrics
	ttl        time.Duration
	clock      func() time.Time

	mu        sync.Mutex
	cached    *HomeData
	fetchedAt time.Time
}

// HomeOption configures the Home aggregate.
type HomeOption func(*Home)

// WithHomeTTL overrides the cache lifetime.
func WithHomeTTL(ttl time.Duration) HomeOption {
	return func(h *Home) { h.ttl = ttl }
}

// WithHomeLogger sets the logger.
func WithHomeLogger(log *slog.Logger) HomeOption {
	return func(h *Home) { h.log = log }
}

// WithHomeMetrics sets the metrics sink for cache accounting.
func WithHomeMetrics(m *metrics.Metrics) HomeOption {
	return func(h *Home) { h.metrics = m }
}

// WithHomeClock overrides the time source (for testing).
func WithHomeClock(clock func() time.Time) HomeOption {
	return func(h *Home) { h.clock = clock }
}

// NewHome creates the home aggregate over the public API client.
func NewHome(client *api.Client, opts ...HomeOption) *Home {
	h := &Home{
		tours:      client.PublicTours(),
		activities: client.PublicActivities(),
		rentals:    client.PublicRentals(),
		log:        slog.Default(),
		ttl:        5 * time.Minute,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewHomeWith creates the aggregate over explicit services (for
// testing).
func NewHomeWith(tours PublicService[api.Tour], activities PublicService[api.Activity], rentals PublicService[api.Rental], opts ...HomeOption) *Home {
	h := &Home{
		tours:      tours,
		activities: activities,
		rentals:    rentals,
		log:        slog.Default(),
		ttl:        5 * time.Minute,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch returns the aggregate, from cache when it is still fresh. The
// three upstream lists are fetched in parallel; if any of them fails,
// the whole aggregate fails and nothing is cached.
func (h *Home) Fetch(ctx context.Context) (*HomeData, error) {
	h.mu.Lock()
	if h.cached != nil && h.clock().Sub(h.fetchedAt) < h.ttl {
		data := *h.cached
		h.mu.Unlock()
		if h.metrics != nil {
			h.metrics.HomeCacheHits.Inc()
		}
		return &data, nil
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.HomeCacheMisses.Inc()
	}

	var data HomeData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := fetchSection(ctx, h.tours)
		data.Tours = items
		return err
	})
	g.Go(func() error {
		items, err := fetchSection(ctx, h.activities)
		data.Activities = items
		return err
	})
	g.Go(func() error {
		items, err := fetchSection(ctx, h.rentals)
		data.Rentals = items
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Warn("home aggregate fetch failed", "error", err)
		return nil, err
	}

	h.mu.Lock()
	h.cached = &data
	h.fetchedAt = h.clock()
	h.mu.Unlock()

	copied := data
	return &copied, nil
}

// Invalidate drops the cached aggregate.
func (h *Home) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cached = nil
}

func fetchSection[T Listing](ctx context.Context, svc PublicService[T]) ([]T, error) {
	res, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	items := FilterAvailable(res.Data)
	if len(items) > homeSectionSize {
		items = items[:homeSectionSize]
	}
	return items, nil
}
