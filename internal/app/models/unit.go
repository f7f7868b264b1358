package models

import (
	"time"
)

const (
	MaxPeriodMinutes  = 345
	PeriodStepMinutes = 15
)

// Unit is a scheduled session of a research with its own capacity
type Unit struct {
	ID            int64     `json:"id" db:"id"`
	ResearchID    int64     `json:"researchId" db:"research_id"`
	Place         string    `json:"place" db:"place" example:"Room 302"`
	Date          time.Time `json:"date" db:"date"`
	PeriodMinutes int       `json:"periodMinutes" db:"period_minutes" example:"90"`
	MaxCapacity   int       `json:"maxCapacity" db:"max_capacity" example:"10"`
	CurrentCount  int       `json:"currentCount" db:"current_count" example:"3"`
	Remark        string    `json:"remark" db:"remark"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Owner of the parent research, populated by joins
	ProfID int64 `json:"-"`
}

// Remaining is the number of open seats
func (u *Unit) Remaining() int {
	if u.CurrentCount >= u.MaxCapacity {
		return 0
	}
	return u.MaxCapacity - u.CurrentCount
}

// IsFull reports whether no seat is left
func (u *Unit) IsFull() bool {
	return u.Remaining() == 0
}

// ValidPeriod reports whether minutes is within 0..MaxPeriodMinutes on a PeriodStepMinutes grid
func ValidPeriod(minutes int) bool {
	return minutes >= 0 && minutes <= MaxPeriodMinutes && minutes%PeriodStepMinutes == 0
}

// Validate checks the field limits of a unit
func (u *Unit) Validate() map[string]interface{} {
	problems := map[string]interface{}{}
	if u.Place == "" {
		problems["place"] = "is required"
	}
	if u.Date.IsZero() {
		problems["date"] = "is required"
	}
	if !ValidPeriod(u.PeriodMinutes) {
		problems["periodMinutes"] = "must be between 0 and 345 in steps of 15"
	}
	if u.MaxCapacity < 1 {
		problems["maxCapacity"] = "must be at least 1"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}
