package dto

import (
	"time"

	"github.com/asaplab/asap/internal/app/models"
)

// ResearchRequest is the body for creating or replacing a research.
// Year defaults to the current year when omitted.
type ResearchRequest struct {
	Number      string `json:"number" binding:"required,max=6" example:"PSY101"`
	Title       string `json:"title" binding:"required,max=30" example:"Visual attention"`
	Year        int    `json:"year" binding:"omitempty,min=1900,max=9999" example:"2024"`
	Semester    string `json:"semester" binding:"required,semester" example:"SPRING"`
	Description string `json:"description"`
}

// UnitRequest is the body for creating or replacing a unit
type UnitRequest struct {
	Place         string    `json:"place" binding:"required,max=100" example:"Room 302"`
	Date          time.Time `json:"date" binding:"required" example:"2024-03-15T14:00:00Z"`
	PeriodMinutes int       `json:"periodMinutes" binding:"period" example:"90"`
	MaxCapacity   int       `json:"maxCapacity" binding:"required,min=1" example:"10"`
	Remark        string    `json:"remark"`
}

// UnitResponse describes a unit and its fill
type UnitResponse struct {
	ID            int64     `json:"id"`
	ResearchID    int64     `json:"researchId"`
	Place         string    `json:"place"`
	Date          time.Time `json:"date"`
	PeriodMinutes int       `json:"periodMinutes"`
	MaxCapacity   int       `json:"maxCapacity"`
	CurrentCount  int       `json:"currentCount"`
	Remaining     int       `json:"remaining"`
	Remark        string    `json:"remark"`
}

// ResearchResponse describes a research, with its units when loaded
type ResearchResponse struct {
	ID          int64          `json:"id"`
	Number      string         `json:"number"`
	Title       string         `json:"title"`
	Year        int            `json:"year"`
	Semester    string         `json:"semester"`
	Term        string         `json:"term" example:"2024 SPRING"`
	Description string         `json:"description"`
	ProfName    string         `json:"profName,omitempty"`
	Units       []UnitResponse `json:"units,omitempty"`
}

// NewUnitResponse converts a unit model
func NewUnitResponse(u *models.Unit) UnitResponse {
	return UnitResponse{
		ID:            u.ID,
		ResearchID:    u.ResearchID,
		Place:         u.Place,
		Date:          u.Date,
		PeriodMinutes: u.PeriodMinutes,
		MaxCapacity:   u.MaxCapacity,
		CurrentCount:  u.CurrentCount,
		Remaining:     u.Remaining(),
		Remark:        u.Remark,
	}
}

// NewResearchResponse converts a research model including any loaded units
func NewResearchResponse(r *models.Research) ResearchResponse {
	resp := ResearchResponse{
		ID:          r.ID,
		Number:      r.Number,
		Title:       r.Title,
		Year:        r.Year,
		Semester:    string(r.Semester),
		Term:        r.Term(),
		Description: r.Description,
		ProfName:    r.ProfName,
	}
	for _, u := range r.Units {
		resp.Units = append(resp.Units, NewUnitResponse(u))
	}
	return resp
}

// NewResearchListResponse converts a list, never returning nil
func NewResearchListResponse(researches []*models.Research) []ResearchResponse {
	out := make([]ResearchResponse, 0, len(researches))
	for _, r := range researches {
		out = append(out, NewResearchResponse(r))
	}
	return out
}
