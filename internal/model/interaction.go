package model

import (
	"encoding/json"
	"strings"
	"time"
)

type Interaction struct {
	ID          int64           `db:"id" json:"id"`
	Timestamp   time.Time       `db:"timestamp" json:"timestamp"`
	Type        string          `db:"type" json:"type"`
	Description string          `db:"description" json:"description"`
	Data        json.RawMessage `db:"data" json:"data,omitempty"`
	Source      string          `db:"source" json:"source"`
	Category    string          `db:"category" json:"category"`
}

// InteractionCategory derives the log category from the interaction type.
func InteractionCategory(interactionType string) string {
	switch {
	case strings.Contains(interactionType, "activity"):
		return "activity"
	case strings.Contains(interactionType, "medication"):
		return "medication"
	case strings.Contains(interactionType, "appointment"):
		return "appointment"
	case strings.Contains(interactionType, "audio"):
		return "audio_message"
	default:
		return "other"
	}
}

type CreateInteractionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Data        json.RawMessage `json:"data"`
	Source      string          `json:"source"`
}
