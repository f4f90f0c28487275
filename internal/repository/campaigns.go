package repository

import (
	"fmt"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

type CampaignFilter struct {
	Search string
	Status domain.CampaignStatus
	Brand  string
}

func (r *Repository) GetAllCampaigns(filter CampaignFilter) ([]*domain.Campaign, error) {
	query := `
		SELECT
			c.id,
			c.title,
			c.brand,
			c.description,
			c.start_date,
			c.end_date,
			c.budget,
			c.status,
			c.created_at,
			c.updated_at,
			c.version,
			COUNT(d.id)
		FROM campaigns c
		LEFT JOIN deals d ON d.campaign_id = c.id
	`

	where := ""
	args := []any{}
	appendCond := func(cond string) {
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		appendCond(fmt.Sprintf("(c.title ILIKE $%d OR c.brand ILIKE $%d OR c.description ILIKE $%d)", n, n, n))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		appendCond(fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, "%"+filter.Brand+"%")
		appendCond(fmt.Sprintf("c.brand ILIKE $%d", len(args)))
	}

	query += where + `
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		dst := []any{
			&campaign.ID,
			&campaign.Title,
			&campaign.Brand,
			&campaign.Description,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.Budget,
			&campaign.Status,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
			&campaign.Version,
			&campaign.DealCount,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (r *Repository) GetCampaignByID(id int64) (*domain.Campaign, error) {
	query := `
		SELECT
			c.title,
			c.brand,
			c.description,
			c.start_date,
			c.end_date,
			c.budget,
			c.status,
			c.created_at,
			c.updated_at,
			c.version,
			(SELECT COUNT(*) FROM deals d WHERE d.campaign_id = c.id)
		FROM campaigns c
		WHERE c.id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	campaign := &domain.Campaign{
		ID: id,
	}

	dst := []any{
		&campaign.Title,
		&campaign.Brand,
		&campaign.Description,
		&campaign.StartDate,
		&campaign.EndDate,
		&campaign.Budget,
		&campaign.Status,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
		&campaign.Version,
		&campaign.DealCount,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return campaign, nil
}

func (r *Repository) CreateCampaign(campaign *domain.Campaign) error {
	query := `
		INSERT INTO campaigns (title, brand, description, start_date, end_date, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		campaign.Title,
		campaign.Brand,
		campaign.Description,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Budget,
		campaign.Status,
	}
	dst := []any{&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt, &campaign.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCampaign(campaign *domain.Campaign) error {
	query := `
		UPDATE campaigns
		SET
			title = $1,
			brand = $2,
			description = $3,
			start_date = $4,
			end_date = $5,
			budget = $6,
			status = $7,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		campaign.Title,
		campaign.Brand,
		campaign.Description,
		campaign.StartDate,
		campaign.EndDate,
		campaign.Budget,
		campaign.Status,
		campaign.ID,
		campaign.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&campaign.UpdatedAt, &campaign.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCampaign(id int64) error {
	query := `
		DELETE FROM campaigns WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
