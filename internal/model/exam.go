package model

import "time"

type Exam struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Date      time.Time `db:"date" json:"date"`
	PDFPath   *string   `db:"pdf_path" json:"pdf_path,omitempty"`
	PDFURL    *string   `db:"pdf_url" json:"pdf_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateExamRequest struct {
	Name string `json:"name" binding:"required,max=300"`
	Type string `json:"type"`
	Date string `json:"date" binding:"required"`
}
