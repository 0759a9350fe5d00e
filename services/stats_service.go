package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"ezpresta-backend/cache"
	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/stats"

	"github.com/google/uuid"
)

type StatsService struct {
	orders    repository.OrderRepository
	customers repository.Store[models.Customer]
	lookups   repository.Store[models.Lookup]
	cache     cache.StatsCache
	now       func() time.Time
}

func NewStatsService(orders repository.OrderRepository, customers repository.Store[models.Customer], lookups repository.Store[models.Lookup], c cache.StatsCache) *StatsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &StatsService{orders: orders, customers: customers, lookups: lookups, cache: c, now: time.Now}
}

type Dashboard struct {
	Year            int                  `json:"year"`
	AvailableYears  []int                `json:"availableYears"`
	Yearly          []stats.YearBilling  `json:"yearlyBilling"`
	Monthly         []stats.MonthBilling `json:"monthlyBilling"`
	Annual          stats.Annual         `json:"annual"`
	Global          stats.Global         `json:"global"`
	RevenueByType   []stats.TypeRevenue  `json:"revenueByType"`
	TypeCounts      []stats.NamedCount   `json:"typeCounts"`
	CustomerSources []stats.NamedCount   `json:"customerSources"`
}

type Billing struct {
	Year    int                  `json:"year"`
	Monthly []stats.MonthBilling `json:"monthly"`
	Yearly  []stats.YearBilling  `json:"yearly"`
}

// cached returns the owner's value under key, computing and storing it on
// a miss. Cache failures only cost the recomputation.
func cached[T any](ctx context.Context, c cache.StatsCache, ownerID uuid.UUID, key string, compute func() (T, error)) (T, error) {
	var v T
	found, err := c.Get(ctx, ownerID, key, &v)
	if err != nil {
		log.Printf("[CACHE] get %s for %s: %v", key, ownerID, err)
	}
	if found {
		return v, nil
	}

	v, err = compute()
	if err != nil {
		return v, err
	}
	if err := c.Set(ctx, ownerID, key, v); err != nil {
		log.Printf("[CACHE] set %s for %s: %v", key, ownerID, err)
	}
	return v, nil
}

func (s *StatsService) names(ctx context.Context, ownerID uuid.UUID, kind models.LookupKind) ([]string, error) {
	entries, err := s.lookups.Find(ctx, ownerID, map[string]any{"kind": string(kind)})
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out, nil
}

// Dashboard gathers every dashboard figure for year; zero means the
// current year.
func (s *StatsService) Dashboard(ctx context.Context, ownerID uuid.UUID, year int) (Dashboard, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	return cached(ctx, s.cache, ownerID, fmt.Sprintf("dashboard:%d", year), func() (Dashboard, error) {
		orders, err := s.orders.List(ctx, ownerID, repository.OrderFilter{})
		if err != nil {
			return Dashboard{}, err
		}
		customers, err := s.customers.Find(ctx, ownerID, nil)
		if err != nil {
			return Dashboard{}, err
		}
		categories, err := s.names(ctx, ownerID, models.LookupCategory)
		if err != nil {
			return Dashboard{}, err
		}
		sources, err := s.names(ctx, ownerID, models.LookupCustomerSource)
		if err != nil {
			return Dashboard{}, err
		}

		return Dashboard{
			Year:            year,
			AvailableYears:  stats.AvailableYears(orders, now),
			Yearly:          stats.Yearly(orders),
			Monthly:         stats.Monthly(orders, year),
			Annual:          stats.AnnualFor(orders, year),
			Global:          stats.GlobalFor(orders, int64(len(customers)), now),
			RevenueByType:   stats.RevenueByType(orders, categories),
			TypeCounts:      stats.TypeCounts(orders, year),
			CustomerSources: stats.CustomerSources(customers, sources),
		}, nil
	})
}

func (s *StatsService) Billing(ctx context.Context, ownerID uuid.UUID, year int) (Billing, error) {
	if year == 0 {
		year = s.now().Year()
	}
	return cached(ctx, s.cache, ownerID, fmt.Sprintf("billing:%d", year), func() (Billing, error) {
		orders, err := s.orders.List(ctx, ownerID, repository.OrderFilter{})
		if err != nil {
			return Billing{}, err
		}
		return Billing{
			Year:    year,
			Monthly: stats.Monthly(orders, year),
			Yearly:  stats.Yearly(orders),
		}, nil
	})
}

// Invalidate drops the owner's cached figures; customer and lookup writes
// call it as orders do.
func (s *StatsService) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Printf("[CACHE] invalidate stats for %s: %v", ownerID, err)
	}
}
