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

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (name, dosage, frequency, active, source, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if medication.ReceivedAt.IsZero() {
		medication.ReceivedAt = time.Now()
	}
	err := r.db.QueryRowxContext(ctx, query,
		medication.Name,
		medication.Dosage,
		medication.Frequency,
		medication.Active,
		medication.Source,
		medication.ReceivedAt,
	).Scan(&medication.ID, &medication.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id int64) (*model.Medication, error) {
	query := `
		SELECT id, name, dosage, frequency, active, source, received_at, created_at
		FROM medications
		WHERE id = $1
	`
	var medication model.Medication
	if err := r.db.GetContext(ctx, &medication, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medication", err)
		}
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return &medication, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, dosage = $2, frequency = $3, active = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		medication.Name,
		medication.Dosage,
		medication.Frequency,
		medication.Active,
		medication.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("medication", nil)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("medication", nil)
	}
	return nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	query := `
		SELECT id, name, dosage, frequency, active, source, received_at, created_at
		FROM medications
		ORDER BY created_at DESC
	`
	medications := []*model.Medication{}
	if err := r.db.SelectContext(ctx, &medications, query); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

func (r *medicationRepository) ListActive(ctx context.Context) ([]*model.Medication, error) {
	query := `
		SELECT id, name, dosage, frequency, active, source, received_at, created_at
		FROM medications
		WHERE active = true
		ORDER BY created_at DESC
	`
	medications := []*model.Medication{}
	if err := r.db.SelectContext(ctx, &medications, query); err != nil {
		return nil, fmt.Errorf("failed to list active medications: %w", err)
	}
	return medications, nil
}

func (r *medicationRepository) LogDose(ctx context.Context, medicationID int64, takenAt time.Time) error {
	query := `INSERT INTO medication_logs (medication_id, timestamp) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, medicationID, takenAt); err != nil {
		return fmt.Errorf("failed to log dose: %w", err)
	}
	return nil
}
