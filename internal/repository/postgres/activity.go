package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vicevalds/carelink/internal/model"
	apperrors "github.com/vicevalds/carelink/pkg/errors"
)

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
	query := `
		INSERT INTO activities (date, title, type, time, source, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if activity.ReceivedAt.IsZero() {
		activity.ReceivedAt = time.Now()
	}
	err := r.db.QueryRowxContext(ctx, query,
		activity.Date,
		activity.Title,
		activity.Type,
		activity.Time,
		activity.Source,
		activity.ReceivedAt,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) Get(ctx context.Context, id int64) (*model.Activity, error) {
	query := `
		SELECT id, date, title, type, time, source, received_at, created_at
		FROM activities
		WHERE id = $1
	`
	var activity model.Activity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("activity", err)
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *model.Activity) error {
	query := `
		UPDATE activities
		SET date = $1, title = $2, type = $3, time = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		activity.Date,
		activity.Title,
		activity.Type,
		activity.Time,
		activity.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("activity", nil)
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("activity", nil)
	}
	return nil
}

func (r *activityRepository) List(ctx context.Context) ([]*model.Activity, error) {
	query := `
		SELECT id, date, title, type, time, source, received_at, created_at
		FROM activities
		ORDER BY date ASC, time ASC NULLS LAST
	`
	activities := []*model.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Activity, error) {
	query := `
		SELECT id, date, title, type, time, source, received_at, created_at
		FROM activities
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, time ASC NULLS LAST
	`
	activities := []*model.Activity{}
	if err := r.db.SelectContext(ctx, &activities, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to list activities in range: %w", err)
	}
	return activities, nil
}
