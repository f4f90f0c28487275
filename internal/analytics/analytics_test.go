package analytics

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"sort"
	"testing"
	"time"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

// fakeStore serves the Store interface from in-memory fixtures,
// computing group-bys the way the SQL layer would.
type fakeStore struct {
	creators  []CreatorIdentity
	campaigns []CampaignSummary
	deals     []DealFact

	failDealFacts  error
	failCreatorIDs error
}

func (s *fakeStore) CountCreators(_ context.Context, status *domain.CreatorStatus) (int64, error) {
	return int64(len(s.creators)), nil
}

func (s *fakeStore) CountCampaigns(_ context.Context, status *domain.CampaignStatus) (int64, error) {
	return int64(len(s.campaigns)), nil
}

func (s *fakeStore) CountDeals(_ context.Context, statuses []domain.DealStatus) (int64, error) {
	if statuses == nil {
		return int64(len(s.deals)), nil
	}
	var n int64
	for _, d := range s.deals {
		if slices.Contains(statuses, d.Status) {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) DealFacts(_ context.Context) ([]DealFact, error) {
	if s.failDealFacts != nil {
		return nil, s.failDealFacts
	}
	facts := slices.Clone(s.deals)
	sort.Slice(facts, func(i, j int) bool { return facts[i].CreatedAt.Before(facts[j].CreatedAt) })
	return facts, nil
}

func (s *fakeStore) RecentCampaigns(_ context.Context, limit int) ([]CampaignSummary, error) {
	if len(s.campaigns) > limit {
		return s.campaigns[:limit], nil
	}
	return s.campaigns, nil
}

func (s *fakeStore) TopCreatorTotals(_ context.Context, limit int) ([]CreatorTotal, error) {
	byCreator := map[int64]*CreatorTotal{}
	for _, d := range s.deals {
		t, ok := byCreator[d.CreatorID]
		if !ok {
			t = &CreatorTotal{CreatorID: d.CreatorID}
			byCreator[d.CreatorID] = t
		}
		t.TotalValue += d.Value
		t.DealCount++
	}
	totals := make([]CreatorTotal, 0, len(byCreator))
	for _, t := range byCreator {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].TotalValue > totals[j].TotalValue })
	if len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

func (s *fakeStore) CreatorsByIDs(_ context.Context, ids []int64) ([]CreatorIdentity, error) {
	if s.failCreatorIDs != nil {
		return nil, s.failCreatorIDs
	}
	found := []CreatorIdentity{}
	for _, c := range s.creators {
		if slices.Contains(ids, c.ID) {
			found = append(found, c)
		}
	}
	return found, nil
}

func monthDeal(creatorID int64, value float64, status domain.DealStatus, month string) DealFact {
	createdAt, err := time.Parse("2006-01-02", month+"-15")
	if err != nil {
		panic(err)
	}
	return DealFact{Value: value, Status: status, CreatedAt: createdAt, CreatorID: creatorID}
}

func TestSnapshotEmpty(t *testing.T) {
	agg := NewAggregator(&fakeStore{})

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if snap.Overview.TotalDealValue != 0 || snap.Overview.ClosedDealValue != 0 {
		t.Errorf("expected zero values, got %+v", snap.Overview)
	}
	if len(snap.TopCreators) != 0 {
		t.Errorf("expected empty topCreators, got %v", snap.TopCreators)
	}
	if len(snap.MonthlyData) != 0 {
		t.Errorf("expected empty monthlyData, got %v", snap.MonthlyData)
	}
	if len(snap.DealsByStatus) != 0 {
		t.Errorf("expected empty dealsByStatus, got %v", snap.DealsByStatus)
	}
}

func TestSnapshotTotalsAndBuckets(t *testing.T) {
	store := &fakeStore{
		creators: []CreatorIdentity{{ID: 1, Name: "Sarah Johnson"}},
		deals: []DealFact{
			monthDeal(1, 100, domain.DealStatusSigned, "2024-01"),
			monthDeal(1, 50, domain.DealStatusPending, "2024-01"),
			monthDeal(1, 200, domain.DealStatusCompleted, "2024-02"),
		},
	}
	agg := NewAggregator(store)

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if snap.Overview.TotalDealValue != 350 {
		t.Errorf("totalDealValue = %v, want 350", snap.Overview.TotalDealValue)
	}
	if snap.Overview.ClosedDealValue != 300 {
		t.Errorf("closedDealValue = %v, want 300", snap.Overview.ClosedDealValue)
	}
	if snap.Overview.ClosedDeals != 2 {
		t.Errorf("closedDeals = %v, want 2", snap.Overview.ClosedDeals)
	}

	wantMonthly := []MonthlyPoint{
		{Month: "2024-01", Deals: 2, Value: 150},
		{Month: "2024-02", Deals: 1, Value: 200},
	}
	if !reflect.DeepEqual(snap.MonthlyData, wantMonthly) {
		t.Errorf("monthlyData = %v, want %v", snap.MonthlyData, wantMonthly)
	}

	wantStatus := map[domain.DealStatus]int64{
		domain.DealStatusSigned:    1,
		domain.DealStatusPending:   1,
		domain.DealStatusCompleted: 1,
	}
	if len(snap.DealsByStatus) != len(wantStatus) {
		t.Fatalf("dealsByStatus = %v, want 3 entries", snap.DealsByStatus)
	}
	for _, sc := range snap.DealsByStatus {
		if wantStatus[sc.Status] != sc.Count {
			t.Errorf("status %s count = %d, want %d", sc.Status, sc.Count, wantStatus[sc.Status])
		}
	}
}

func TestSnapshotTopCreatorsRankedBySummedValue(t *testing.T) {
	store := &fakeStore{
		creators: []CreatorIdentity{
			{ID: 1, Name: "Creator A"},
			{ID: 2, Name: "Creator B"},
		},
		deals: []DealFact{
			// A: two deals summing to 300, B: one deal worth 500
			monthDeal(1, 100, domain.DealStatusSigned, "2024-01"),
			monthDeal(1, 200, domain.DealStatusSigned, "2024-02"),
			monthDeal(2, 500, domain.DealStatusSigned, "2024-03"),
		},
	}
	agg := NewAggregator(store)

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if len(snap.TopCreators) != 2 {
		t.Fatalf("topCreators = %v, want 2 entries", snap.TopCreators)
	}
	if snap.TopCreators[0].Name != "Creator B" || snap.TopCreators[0].TotalValue != 500 {
		t.Errorf("first ranked = %+v, want Creator B with 500", snap.TopCreators[0])
	}
	if snap.TopCreators[1].Name != "Creator A" || snap.TopCreators[1].DealCount != 2 {
		t.Errorf("second ranked = %+v, want Creator A with 2 deals", snap.TopCreators[1])
	}
}

func TestSnapshotDeletedCreatorShowsUnknown(t *testing.T) {
	store := &fakeStore{
		// creator 7 has deals but no identity record anymore
		deals: []DealFact{monthDeal(7, 250, domain.DealStatusSigned, "2024-05")},
	}
	agg := NewAggregator(store)

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if len(snap.TopCreators) != 1 {
		t.Fatalf("topCreators = %v, want 1 entry", snap.TopCreators)
	}
	if snap.TopCreators[0].Name != "Unknown" {
		t.Errorf("name = %q, want Unknown", snap.TopCreators[0].Name)
	}
	if snap.TopCreators[0].TotalValue != 250 {
		t.Errorf("totalValue = %v, want 250", snap.TopCreators[0].TotalValue)
	}
}

func TestSnapshotMonthlyWindowDropsOldestMonth(t *testing.T) {
	store := &fakeStore{}
	months := []string{"2023-08", "2023-09", "2023-10", "2023-11", "2023-12", "2024-01", "2024-02"}
	for i, m := range months {
		store.deals = append(store.deals, monthDeal(1, float64(10*(i+1)), domain.DealStatusSigned, m))
	}
	agg := NewAggregator(store)

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	if len(snap.MonthlyData) != 6 {
		t.Fatalf("monthlyData has %d points, want 6", len(snap.MonthlyData))
	}
	if snap.MonthlyData[0].Month != "2023-09" {
		t.Errorf("oldest retained month = %s, want 2023-09", snap.MonthlyData[0].Month)
	}
	if snap.MonthlyData[5].Month != "2024-02" {
		t.Errorf("newest month = %s, want 2024-02", snap.MonthlyData[5].Month)
	}
}

func TestSnapshotIdempotent(t *testing.T) {
	store := &fakeStore{
		creators: []CreatorIdentity{{ID: 1, Name: "Sarah Johnson"}},
		deals: []DealFact{
			monthDeal(1, 100, domain.DealStatusSigned, "2024-01"),
			monthDeal(1, 75, domain.DealStatusCancelled, "2024-03"),
		},
	}
	agg := NewAggregator(store)

	first, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("first snapshot failed: %v", err)
	}
	second, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshots differ:\n%+v\n%+v", first, second)
	}
}

func TestSnapshotFailsAtomically(t *testing.T) {
	readErr := errors.New("connection reset")

	agg := NewAggregator(&fakeStore{failDealFacts: readErr})
	if _, err := agg.Snapshot(context.Background()); !errors.Is(err, readErr) {
		t.Errorf("expected read error to propagate, got %v", err)
	}

	agg = NewAggregator(&fakeStore{
		deals:          []DealFact{monthDeal(1, 100, domain.DealStatusSigned, "2024-01")},
		failCreatorIDs: readErr,
	})
	if _, err := agg.Snapshot(context.Background()); !errors.Is(err, readErr) {
		t.Errorf("expected identity lookup error to propagate, got %v", err)
	}
}
