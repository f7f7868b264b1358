package models

import (
	"time"
)

// Record is the enrollment of a student in a unit
type Record struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	UnitID    int64     `json:"unitId" db:"unit_id"`
	Outcome   Outcome   `json:"outcome" db:"outcome"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student  *Student  `json:"student,omitempty"`
	Unit     *Unit     `json:"unit,omitempty"`
	Research *Research `json:"research,omitempty"`
}
