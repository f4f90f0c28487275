package repository

import (
	"github.com/wavelaunch/studio-os/backend/internal/domain"
)

func (r *Repository) CreateActivity(activity *domain.Activity) error {
	query := `
		INSERT INTO activities (user_id, action, entity, entity_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{activity.UserID, activity.Action, activity.Entity, activity.EntityID, activity.Details}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&activity.ID, &activity.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRecentActivities(limit int) ([]*domain.Activity, error) {
	query := `
		SELECT
			a.id,
			a.user_id,
			a.action,
			a.entity,
			a.entity_id,
			a.details,
			a.created_at,
			COALESCE(u.name, ''),
			COALESCE(u.email, '')
		FROM activities a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity := &domain.Activity{}
		dst := []any{
			&activity.ID,
			&activity.UserID,
			&activity.Action,
			&activity.Entity,
			&activity.EntityID,
			&activity.Details,
			&activity.CreatedAt,
			&activity.UserName,
			&activity.UserEmail,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}
