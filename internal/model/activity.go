package model

import "time"

type Activity struct {
	ID         int64     `db:"id" json:"id"`
	Date       time.Time `db:"date" json:"date"`
	Title      string    `db:"title" json:"title"`
	Type       string    `db:"type" json:"type"`
	Time       *string   `db:"time" json:"time,omitempty"`
	Source     string    `db:"source" json:"source"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type CreateActivityRequest struct {
	Date   string  `json:"date" binding:"required"`
	Title  string  `json:"title" binding:"required,max=500"`
	Type   string  `json:"type"`
	Time   *string `json:"time"`
	Source string  `json:"source"`
}

type UpdateActivityRequest struct {
	Date  *string `json:"date"`
	Title *string `json:"title"`
	Type  *string `json:"type"`
	Time  *string `json:"time"`
}
