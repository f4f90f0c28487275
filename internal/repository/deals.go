package repository

import (
	"fmt"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

type DealFilter struct {
	Status     domain.DealStatus
	CampaignID int64
	CreatorID  int64
}

const dealSelect = `
	SELECT
		d.id,
		d.campaign_id,
		d.creator_id,
		d.value,
		d.status,
		d.signed_at,
		d.notes,
		d.created_at,
		d.updated_at,
		d.version,
		cp.title,
		cp.brand,
		cr.name,
		cr.email
	FROM deals d
	JOIN campaigns cp ON cp.id = d.campaign_id
	JOIN creators cr ON cr.id = d.creator_id
`

func scanDeal(scan func(dst ...any) error) (*domain.Deal, error) {
	deal := &domain.Deal{
		Campaign: &domain.CampaignRef{},
		Creator:  &domain.CreatorRef{},
	}

	dst := []any{
		&deal.ID,
		&deal.CampaignID,
		&deal.CreatorID,
		&deal.Value,
		&deal.Status,
		&deal.SignedAt,
		&deal.Notes,
		&deal.CreatedAt,
		&deal.UpdatedAt,
		&deal.Version,
		&deal.Campaign.Title,
		&deal.Campaign.Brand,
		&deal.Creator.Name,
		&deal.Creator.Email,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	deal.Campaign.ID = deal.CampaignID
	deal.Creator.ID = deal.CreatorID

	return deal, nil
}

func (r *Repository) GetAllDeals(filter DealFilter) ([]*domain.Deal, error) {
	query := dealSelect

	where := ""
	args := []any{}
	appendCond := func(cond string) {
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		appendCond(fmt.Sprintf("d.status = $%d", len(args)))
	}
	if filter.CampaignID != 0 {
		args = append(args, filter.CampaignID)
		appendCond(fmt.Sprintf("d.campaign_id = $%d", len(args)))
	}
	if filter.CreatorID != 0 {
		args = append(args, filter.CreatorID)
		appendCond(fmt.Sprintf("d.creator_id = $%d", len(args)))
	}

	query += where + `
		ORDER BY d.created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows.Scan)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deals, nil
}

func (r *Repository) GetDealByID(id int64) (*domain.Deal, error) {
	query := dealSelect + `
		WHERE d.id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	return scanDeal(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) CreateDeal(deal *domain.Deal) error {
	query := `
		INSERT INTO deals (campaign_id, creator_id, value, status, signed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{deal.CampaignID, deal.CreatorID, deal.Value, deal.Status, deal.SignedAt, deal.Notes}
	dst := []any{&deal.ID, &deal.CreatedAt, &deal.UpdatedAt, &deal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateDeal(deal *domain.Deal) error {
	query := `
		UPDATE deals
		SET
			campaign_id = $1,
			creator_id = $2,
			value = $3,
			status = $4,
			signed_at = $5,
			notes = $6,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{deal.CampaignID, deal.CreatorID, deal.Value, deal.Status, deal.SignedAt, deal.Notes, deal.ID, deal.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&deal.UpdatedAt, &deal.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDeal(id int64) error {
	query := `
		DELETE FROM deals WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
