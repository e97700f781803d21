package model

import "time"

type Medication struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Dosage     string    `db:"dosage" json:"dosage"`
	Frequency  string    `db:"frequency" json:"frequency"`
	Active     bool      `db:"active" json:"active"`
	Source     string    `db:"source" json:"source"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateMedicationRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Source    string `json:"source"`
}

type UpdateMedicationRequest struct {
	Name      *string `json:"name"`
	Dosage    *string `json:"dosage"`
	Frequency *string `json:"frequency"`
	Active    *bool   `json:"active"`
}

// MedicationLog records a dispensed dose, written when the patient
// confirms intake.
type MedicationLog struct {
	ID           int64     `db:"id" json:"id"`
	MedicationID int64     `db:"medication_id" json:"medication_id"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
}
