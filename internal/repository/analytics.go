package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wavelaunch/studio-os/backend/internal/analytics"
	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

// The methods below implement analytics.Store. Unlike the CRUD methods they
// take the caller's context so the aggregator's fan-out cancels as one unit.

func (r *Repository) analyticsContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) CountCreators(ctx context.Context, status *domain.CreatorStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM creators`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CountCampaigns(ctx context.Context, status *domain.CampaignStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM campaigns`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CountDeals(ctx context.Context, statuses []domain.DealStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM deals`
	args := []any{}
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, status := range statuses {
			args = append(args, status)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ", ") + `)`
	}

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) DealFacts(ctx context.Context) ([]analytics.DealFact, error) {
	query := `
		SELECT value, status, created_at, creator_id
		FROM deals
		ORDER BY created_at ASC
	`

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := make([]analytics.DealFact, 0)
	for rows.Next() {
		var fact analytics.DealFact
		if err := rows.Scan(&fact.Value, &fact.Status, &fact.CreatedAt, &fact.CreatorID); err != nil {
			return nil, err
		}
		facts = append(facts, fact)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return facts, nil
}

func (r *Repository) RecentCampaigns(ctx context.Context, limit int) ([]analytics.CampaignSummary, error) {
	query := `
		SELECT c.id, c.title, c.brand, c.status, c.budget, COUNT(d.id)
		FROM campaigns c
		LEFT JOIN deals d ON d.campaign_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT $1
	`

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]analytics.CampaignSummary, 0)
	for rows.Next() {
		var c analytics.CampaignSummary
		if err := rows.Scan(&c.ID, &c.Title, &c.Brand, &c.Status, &c.Budget, &c.DealCount); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (r *Repository) TopCreatorTotals(ctx context.Context, limit int) ([]analytics.CreatorTotal, error) {
	query := `
		SELECT creator_id, SUM(value), COUNT(*)
		FROM deals
		GROUP BY creator_id
		ORDER BY SUM(value) DESC
		LIMIT $1
	`

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]analytics.CreatorTotal, 0)
	for rows.Next() {
		var t analytics.CreatorTotal
		if err := rows.Scan(&t.CreatorID, &t.TotalValue, &t.DealCount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *Repository) CreatorsByIDs(ctx context.Context, ids []int64) ([]analytics.CreatorIdentity, error) {
	if len(ids) == 0 {
		return []analytics.CreatorIdentity{}, nil
	}

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := `
		SELECT id, name, email FROM creators
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)
	`

	ctx, cancel := r.analyticsContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	identities := make([]analytics.CreatorIdentity, 0)
	for rows.Next() {
		var identity analytics.CreatorIdentity
		if err := rows.Scan(&identity.ID, &identity.Name, &identity.Email); err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}
