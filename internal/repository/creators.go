package repository

import (
	"fmt"

	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

type CreatorFilter struct {
	Search string
	Status domain.CreatorStatus
}

func (r *Repository) GetAllCreators(filter CreatorFilter) ([]*domain.Creator, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.email,
			c.phone,
			c.instagram_handle,
			c.tiktok_handle,
			c.youtube_handle,
			c.twitter_handle,
			c.status,
			c.notes,
			c.owner_id,
			c.created_at,
			c.updated_at,
			c.version,
			COUNT(d.id)
		FROM creators c
		LEFT JOIN deals d ON d.creator_id = c.id
	`

	where := ""
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = fmt.Sprintf(
			"WHERE (c.name ILIKE $%d OR c.email ILIKE $%d OR c.instagram_handle ILIKE $%d OR c.tiktok_handle ILIKE $%d)",
			n, n, n, n,
		)
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		if where == "" {
			where = fmt.Sprintf("WHERE c.status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND c.status = $%d", len(args))
		}
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

	creators := make([]*domain.Creator, 0)
	for rows.Next() {
		creator := &domain.Creator{}
		dst := []any{
			&creator.ID,
			&creator.Name,
			&creator.Email,
			&creator.Phone,
			&creator.InstagramHandle,
			&creator.TiktokHandle,
			&creator.YoutubeHandle,
			&creator.TwitterHandle,
			&creator.Status,
			&creator.Notes,
			&creator.OwnerID,
			&creator.CreatedAt,
			&creator.UpdatedAt,
			&creator.Version,
			&creator.DealCount,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		creators = append(creators, creator)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return creators, nil
}

func (r *Repository) GetCreatorByID(id int64) (*domain.Creator, error) {
	query := `
		SELECT
			c.name,
			c.email,
			c.phone,
			c.instagram_handle,
			c.tiktok_handle,
			c.youtube_handle,
			c.twitter_handle,
			c.status,
			c.notes,
			c.owner_id,
			c.created_at,
			c.updated_at,
			c.version,
			(SELECT COUNT(*) FROM deals d WHERE d.creator_id = c.id)
		FROM creators c
		WHERE c.id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	creator := &domain.Creator{
		ID: id,
	}

	dst := []any{
		&creator.Name,
		&creator.Email,
		&creator.Phone,
		&creator.InstagramHandle,
		&creator.TiktokHandle,
		&creator.YoutubeHandle,
		&creator.TwitterHandle,
		&creator.Status,
		&creator.Notes,
		&creator.OwnerID,
		&creator.CreatedAt,
		&creator.UpdatedAt,
		&creator.Version,
		&creator.DealCount,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return creator, nil
}

func (r *Repository) CreateCreator(creator *domain.Creator) error {
	query := `
		INSERT INTO creators (
			name,
			email,
			phone,
			instagram_handle,
			tiktok_handle,
			youtube_handle,
			twitter_handle,
			status,
			notes,
			owner_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		creator.Name,
		creator.Email,
		creator.Phone,
		creator.InstagramHandle,
		creator.TiktokHandle,
		creator.YoutubeHandle,
		creator.TwitterHandle,
		creator.Status,
		creator.Notes,
		creator.OwnerID,
	}
	dst := []any{&creator.ID, &creator.CreatedAt, &creator.UpdatedAt, &creator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCreator(creator *domain.Creator) error {
	query := `
		UPDATE creators
		SET
			name = $1,
			email = $2,
			phone = $3,
			instagram_handle = $4,
			tiktok_handle = $5,
			youtube_handle = $6,
			twitter_handle = $7,
			status = $8,
			notes = $9,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		creator.Name,
		creator.Email,
		creator.Phone,
		creator.InstagramHandle,
		creator.TiktokHandle,
		creator.YoutubeHandle,
		creator.TwitterHandle,
		creator.Status,
		creator.Notes,
		creator.ID,
		creator.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&creator.UpdatedAt, &creator.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCreator(id int64) error {
	query := `
		DELETE FROM creators WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
