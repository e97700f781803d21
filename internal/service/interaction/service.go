package interaction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vicevalds/carelink/internal/model"
	"github.com/vicevalds/carelink/internal/repository"
	"github.com/vicevalds/carelink/pkg/logger"
	"github.com/vicevalds/carelink/pkg/messaging"
)

// Service writes the interaction log and mirrors every entry onto the
// live broadcast channel so connected dashboards update in place.
type Service struct {
	repo   repository.InteractionRepository
	broker messaging.Broker
	logger *logger.Logger
}

func NewService(repo repository.InteractionRepository, broker messaging.Broker, logger *logger.Logger) *Service {
	return &Service{repo: repo, broker: broker, logger: logger}
}

// Log records one interaction. Broadcast failures are ignored; the log
// row is the durable record.
func (s *Service) Log(ctx context.Context, interactionType, description string, data interface{}, source string) *model.Interaction {
	var raw json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			raw = b
		}
	}

	interaction := &model.Interaction{
		Timestamp:   time.Now(),
		Type:        interactionType,
		Description: description,
		Data:        raw,
		Source:      source,
		Category:    model.InteractionCategory(interactionType),
	}

	if err := s.repo.Create(ctx, interaction); err != nil {
		s.logger.Error(err, "failed to log interaction", "type", interactionType)
		return nil
	}

	if err := s.broker.Publish(ctx, model.ChannelNewInteraction, interaction); err != nil {
		s.logger.Warn("failed to broadcast interaction", "error", err.Error())
	}

	return interaction
}

func (s *Service) List(ctx context.Context, category string, limit int) ([]*model.Interaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if category != "" {
		return s.repo.ListByCategory(ctx, category, limit)
	}
	return s.repo.List(ctx, limit)
}
