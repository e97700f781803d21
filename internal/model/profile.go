package model

import "time"

// Profile is the single caregiving-subject record used to personalize
// reminder messages. The scheduler only ever reads it.
type Profile struct {
	ID                 int64     `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Age                *int      `db:"age" json:"age,omitempty"`
	BirthDate          *string   `db:"birth_date" json:"birth_date,omitempty"`
	Gender             *string   `db:"gender" json:"gender,omitempty"`
	HealthConditions   *string   `db:"health_conditions" json:"health_conditions,omitempty"`
	ChronicMedications *string   `db:"chronic_medications" json:"chronic_medications,omitempty"`
	Preferences        *string   `db:"preferences" json:"preferences,omitempty"`
	Family             *string   `db:"family" json:"family,omitempty"`
	PhotoURL           *string   `db:"photo_url" json:"photo_url,omitempty"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName falls back to a neutral form of address when no profile
// has been filled in yet.
func (p *Profile) DisplayName() string {
	if p == nil || p.Name == "" {
		return "Usuario"
	}
	return p.Name
}

type UpsertProfileRequest struct {
	Name               string  `json:"name" binding:"required,max=200"`
	Age                *int    `json:"age"`
	BirthDate          *string `json:"birth_date"`
	Gender             *string `json:"gender"`
	HealthConditions   *string `json:"health_conditions"`
	ChronicMedications *string `json:"chronic_medications"`
	Preferences        *string `json:"preferences"`
	Family             *string `json:"family"`
	PhotoURL           *string `json:"photo_url"`
}
