package model

import "time"

// Broadcast channel names consumed by connected dashboard clients.
const (
	ChannelAgentResponse  = "agent_response"
	ChannelNewInteraction = "new_interaction"
)

// AgentResponse is the payload pushed to UI clients after every
// notification attempt.
type AgentResponse struct {
	Text      string    `json:"text"`
	AudioURL  string    `json:"audioUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	EventID   int64     `json:"eventId,omitempty"`
}
