package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID        int64             `db:"id" json:"id"`
	Doctor    string            `db:"doctor" json:"doctor"`
	Type      string            `db:"type" json:"type"`
	Date      time.Time         `db:"date" json:"date"`
	Time      string            `db:"time" json:"time"`
	Status    AppointmentStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}

type CreateAppointmentRequest struct {
	Doctor string `json:"doctor" binding:"required,max=200"`
	Type   string `json:"type"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Doctor *string            `json:"doctor"`
	Type   *string            `json:"type"`
	Date   *string            `json:"date"`
	Time   *string            `json:"time"`
	Status *AppointmentStatus `json:"status"`
}
