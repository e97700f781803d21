package model

import "time"

type EventType string

const (
	EventTypeActivity    EventType = "activity"
	EventTypeAppointment EventType = "appointment"
	EventTypeMedication  EventType = "medication"
)

// EventPayload carries the display data needed to compose a reminder
// message. Fields not relevant to the event type are left empty.
type EventPayload struct {
	Title  string `json:"title,omitempty"`
	Doctor string `json:"doctor,omitempty"`
	Name   string `json:"name,omitempty"`
	Dosage string `json:"dosage,omitempty"`
	Time   string `json:"time,omitempty"`
}

// NormalizedEvent is the uniform in-memory shape of a scheduled occurrence.
// It is produced fresh on every scheduler pass and never persisted. For
// medications one NormalizedEvent exists per synthesized dose instant.
type NormalizedEvent struct {
	Type     EventType    `json:"type"`
	ID       int64        `json:"id"`
	Datetime time.Time    `json:"datetime"`
	Payload  EventPayload `json:"payload"`
}
