// Package analytics computes the dashboard snapshot. It reads through a
// narrow Store interface so the computation stays independent of the SQL
// layer and can run against a fake in tests.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ClosedDealStatuses are the statuses counted as closed revenue.
// ACTIVE deals are deliberately not included.
var ClosedDealStatuses = []domain.DealStatus{domain.DealStatusSigned, domain.DealStatusCompleted}

const (
	topCreatorLimit     = 5
	recentCampaignLimit = 5
	monthlyWindow       = 6
)

// DealFact is the projection of a deal used for aggregation.
type DealFact struct {
	Value     float64
	Status    domain.DealStatus
	CreatedAt time.Time
	CreatorID int64
}

// CreatorTotal is one group-by row: summed value and deal count per creator.
type CreatorTotal struct {
	CreatorID  int64
	TotalValue float64
	DealCount  int64
}

// CreatorIdentity is the secondary lookup result joined onto CreatorTotal.
type CreatorIdentity struct {
	ID    int64
	Name  string
	Email *string
}

// CampaignSummary is a recent campaign with its deal count.
type CampaignSummary struct {
	ID        int64                 `json:"id"`
	Title     string                `json:"title"`
	Brand     string                `json:"brand"`
	Status    domain.CampaignStatus `json:"status"`
	Budget    *float64              `json:"budget"`
	DealCount int64                 `json:"dealCount"`
}

// Store is the read surface the aggregator needs from the persistence layer.
type Store interface {
	CountCreators(ctx context.Context, status *domain.CreatorStatus) (int64, error)
	CountCampaigns(ctx context.Context, status *domain.CampaignStatus) (int64, error)
	CountDeals(ctx context.Context, statuses []domain.DealStatus) (int64, error)
	// DealFacts returns every deal ordered by creation time ascending.
	DealFacts(ctx context.Context) ([]DealFact, error)
	RecentCampaigns(ctx context.Context, limit int) ([]CampaignSummary, error)
	// TopCreatorTotals groups deals by creator, sorted descending by summed value.
	TopCreatorTotals(ctx context.Context, limit int) ([]CreatorTotal, error)
	CreatorsByIDs(ctx context.Context, ids []int64) ([]CreatorIdentity, error)
}

type Overview struct {
	TotalCreators   int64   `json:"totalCreators"`
	ActiveCreators  int64   `json:"activeCreators"`
	TotalCampaigns  int64   `json:"totalCampaigns"`
	ActiveCampaigns int64   `json:"activeCampaigns"`
	TotalDeals      int64   `json:"totalDeals"`
	ClosedDeals     int64   `json:"closedDeals"`
	TotalDealValue  float64 `json:"totalDealValue"`
	ClosedDealValue float64 `json:"closedDealValue"`
}

type TopCreator struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	TotalValue float64 `json:"totalValue"`
	DealCount  int64   `json:"dealCount"`
}

type MonthlyPoint struct {
	Month string  `json:"month"`
	Deals int64   `json:"deals"`
	Value float64 `json:"value"`
}

type StatusCount struct {
	Status domain.DealStatus `json:"status"`
	Count  int64             `json:"count"`
}

type Snapshot struct {
	Overview        Overview          `json:"overview"`
	TopCreators     []TopCreator      `json:"topCreators"`
	RecentCampaigns []CampaignSummary `json:"recentCampaigns"`
	MonthlyData     []MonthlyPoint    `json:"monthlyData"`
	DealsByStatus   []StatusCount     `json:"dealsByStatus"`
}

type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Snapshot recomputes the full dashboard payload from current state.
// The initial reads have no ordering dependency and run concurrently;
// any single failure fails the whole snapshot.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		totalCreators   int64
		activeCreators  int64
		totalCampaigns  int64
		activeCampaigns int64
		totalDeals      int64
		closedDeals     int64
		facts           []DealFact
		recent          []CampaignSummary
		totals          []CreatorTotal
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalCreators, err = a.store.CountCreators(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		active := domain.CreatorStatusActive
		activeCreators, err = a.store.CountCreators(gctx, &active)
		return err
	})
	g.Go(func() (err error) {
		totalCampaigns, err = a.store.CountCampaigns(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		active := domain.CampaignStatusActive
		activeCampaigns, err = a.store.CountCampaigns(gctx, &active)
		return err
	})
	g.Go(func() (err error) {
		totalDeals, err = a.store.CountDeals(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		closedDeals, err = a.store.CountDeals(gctx, ClosedDealStatuses)
		return err
	})
	g.Go(func() (err error) {
		facts, err = a.store.DealFacts(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = a.store.RecentCampaigns(gctx, recentCampaignLimit)
		return err
	})
	g.Go(func() (err error) {
		totals, err = a.store.TopCreatorTotals(gctx, topCreatorLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalDealValue, closedDealValue float64
	for _, f := range facts {
		totalDealValue += f.Value
		if f.Status == domain.DealStatusSigned || f.Status == domain.DealStatusCompleted {
			closedDealValue += f.Value
		}
	}

	topCreators, err := a.joinTopCreators(ctx, totals)
	if err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []CampaignSummary{}
	}

	return &Snapshot{
		Overview: Overview{
			TotalCreators:   totalCreators,
			ActiveCreators:  activeCreators,
			TotalCampaigns:  totalCampaigns,
			ActiveCampaigns: activeCampaigns,
			TotalDeals:      totalDeals,
			ClosedDeals:     closedDeals,
			TotalDealValue:  totalDealValue,
			ClosedDealValue: closedDealValue,
		},
		TopCreators:     topCreators,
		RecentCampaigns: recent,
		MonthlyData:     bucketByMonth(facts),
		DealsByStatus:   countByStatus(facts),
	}, nil
}

// joinTopCreators resolves creator identities for the ranked totals.
// A creator deleted after its deals were recorded shows as "Unknown"
// instead of failing the snapshot. This lookup depends on ids from the
// first read batch, so it runs strictly after the batch completes.
func (a *Aggregator) joinTopCreators(ctx context.Context, totals []CreatorTotal) ([]TopCreator, error) {
	top := make([]TopCreator, 0, len(totals))
	if len(totals) == 0 {
		return top, nil
	}

	ids := make([]int64, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.CreatorID)
	}

	identities, err := a.store.CreatorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]CreatorIdentity, len(identities))
	for _, id := range identities {
		byID[id.ID] = id
	}

	for _, t := range totals {
		tc := TopCreator{
			ID:         t.CreatorID,
			Name:       "Unknown",
			TotalValue: t.TotalValue,
			DealCount:  t.DealCount,
		}
		if identity, ok := byID[t.CreatorID]; ok {
			tc.Name = identity.Name
			tc.Email = identity.Email
		}
		top = append(top, tc)
	}

	return top, nil
}

// bucketByMonth groups deals by calendar month of creation (UTC, YYYY-MM)
// and keeps the last monthlyWindow months present in the data. Sparse data
// therefore surfaces fewer, possibly old, months rather than a fixed
// trailing calendar window.
func bucketByMonth(facts []DealFact) []MonthlyPoint {
	type bucket struct {
		deals int64
		value float64
	}
	buckets := make(map[string]*bucket)
	for _, f := range facts {
		key := f.CreatedAt.UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.deals++
		b.value += f.Value
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	// lexicographic equals chronological for zero-padded YYYY-MM keys
	sort.Strings(months)

	if len(months) > monthlyWindow {
		months = months[len(months)-monthlyWindow:]
	}

	points := make([]MonthlyPoint, 0, len(months))
	for _, month := range months {
		points = append(points, MonthlyPoint{
			Month: month,
			Deals: buckets[month].deals,
			Value: buckets[month].value,
		})
	}

	return points
}

// countByStatus emits one entry per status that actually occurs, in first
// occurrence order so output is stable for identical inputs.
func countByStatus(facts []DealFact) []StatusCount {
	counts := make(map[domain.DealStatus]int64)
	order := make([]domain.DealStatus, 0)
	for _, f := range facts {
		if _, ok := counts[f.Status]; !ok {
			order = append(order, f.Status)
		}
		counts[f.Status]++
	}

	result := make([]StatusCount, 0, len(order))
	for _, status := range order {
		result = append(result, StatusCount{Status: status, Count: counts[status]})
	}

	return result
}
