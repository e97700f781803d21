package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vicevalds/carelink/internal/model"
)

func (r *interactionRepository) Create(ctx context.Context, interaction *model.Interaction) error {
	query := `
		INSERT INTO interactions (timestamp, type, description, data, source, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now()
	}
	if interaction.Category == "" {
		interaction.Category = model.InteractionCategory(interaction.Type)
	}
	err := r.db.QueryRowxContext(ctx, query,
		interaction.Timestamp,
		interaction.Type,
		interaction.Description,
		interaction.Data,
		interaction.Source,
		interaction.Category,
	).Scan(&interaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

func (r *interactionRepository) List(ctx context.Context, limit int) ([]*model.Interaction, error) {
	query := `
		SELECT id, timestamp, type, description, data, source, category
		FROM interactions
		ORDER BY timestamp DESC
		LIMIT $1
	`
	interactions := []*model.Interaction{}
	if err := r.db.SelectContext(ctx, &interactions, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return interactions, nil
}

func (r *interactionRepository) ListByCategory(ctx context.Context, category string, limit int) ([]*model.Interaction, error) {
	query := `
		SELECT id, timestamp, type, description, data, source, category
		FROM interactions
		WHERE category = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
	interactions := []*model.Interaction{}
	if err := r.db.SelectContext(ctx, &interactions, query, category, limit); err != nil {
		return nil, fmt.Errorf("failed to list interactions by category: %w", err)
	}
	return interactions, nil
}
