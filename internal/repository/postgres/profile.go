package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vicevalds/carelink/internal/model"
)

// Get returns the single caregiving-subject profile, or nil when none
// has been created yet.
func (r *profileRepository) Get(ctx context.Context) (*model.Profile, error) {
	query := `
		SELECT id, name, age, birth_date, gender, health_conditions,
		       chronic_medications, preferences, family, photo_url, updated_at
		FROM user_profile
		LIMIT 1
	`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.Profile) error {
	profile.UpdatedAt = time.Now()

	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO user_profile
				(name, age, birth_date, gender, health_conditions,
				 chronic_medications, preferences, family, photo_url, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		err := r.db.QueryRowxContext(ctx, query,
			profile.Name,
			profile.Age,
			profile.BirthDate,
			profile.Gender,
			profile.HealthConditions,
			profile.ChronicMedications,
			profile.Preferences,
			profile.Family,
			profile.PhotoURL,
			profile.UpdatedAt,
		).Scan(&profile.ID)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	}

	query := `
		UPDATE user_profile
		SET name = $1, age = $2, birth_date = $3, gender = $4,
		    health_conditions = $5, chronic_medications = $6,
		    preferences = $7, family = $8, photo_url = $9, updated_at = $10
		WHERE id = $11
	`
	profile.ID = existing.ID
	if _, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.Age,
		profile.BirthDate,
		profile.Gender,
		profile.HealthConditions,
		profile.ChronicMedications,
		profile.Preferences,
		profile.Family,
		profile.PhotoURL,
		profile.UpdatedAt,
		profile.ID,
	); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
