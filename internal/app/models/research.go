package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	MaxResearchNumberLength = 6
	MaxResearchTitleLength  = 30
)

// Research is a professor-owned experiment topic, the top-level catalog entry
type Research struct {
	ID          int64     `json:"id" db:"id"`
	ProfID      int64     `json:"profId" db:"prof_id"`
	Number      string    `json:"number" db:"number" example:"PSY101"`
	Title       string    `json:"title" db:"title" example:"Visual attention"`
	Year        int       `json:"year" db:"year" example:"2024"`
	Semester    Semester  `json:"semester" db:"semester" example:"SPRING"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated by joins
	ProfName string  `json:"profName,omitempty"`
	Units    []*Unit `json:"units,omitempty"`
}

// Term renders year and semester, e.g. "2024 SPRING"
func (r *Research) Term() string {
	return fmt.Sprintf("%d %s", r.Year, r.Semester)
}

// Validate checks the field limits of a research
func (r *Research) Validate() map[string]interface{} {
	problems := map[string]interface{}{}
	if r.Number == "" || utf8.RuneCountInString(r.Number) > MaxResearchNumberLength {
		problems["number"] = fmt.Sprintf("must be 1-%d characters", MaxResearchNumberLength)
	}
	if r.Title == "" || utf8.RuneCountInString(r.Title) > MaxResearchTitleLength {
		problems["title"] = fmt.Sprintf("must be 1-%d characters", MaxResearchTitleLength)
	}
	if r.Year < 1900 || r.Year > 9999 {
		problems["year"] = "must be a four digit year"
	}
	if !r.Semester.IsValid() {
		problems["semester"] = "must be SPRING or FALL"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
