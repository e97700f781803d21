package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vicevalds/carelink/internal/model"
	apperrors "github.com/vicevalds/carelink/pkg/errors"
)

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	query := `
		INSERT INTO exams (name, type, date, pdf_path, pdf_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		exam.Name,
		exam.Type,
		exam.Date,
		exam.PDFPath,
		exam.PDFURL,
	).Scan(&exam.ID, &exam.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

func (r *examRepository) Get(ctx context.Context, id int64) (*model.Exam, error) {
	query := `
		SELECT id, name, type, date, pdf_path, pdf_url, created_at
		FROM exams
		WHERE id = $1
	`
	var exam model.Exam
	if err := r.db.GetContext(ctx, &exam, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("exam", err)
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return &exam, nil
}

func (r *examRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("exam", nil)
	}
	return nil
}

func (r *examRepository) List(ctx context.Context) ([]*model.Exam, error) {
	query := `
		SELECT id, name, type, date, pdf_path, pdf_url, created_at
		FROM exams
		ORDER BY date DESC
	`
	exams := []*model.Exam{}
	if err := r.db.SelectContext(ctx, &exams, query); err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	return exams, nil
}
