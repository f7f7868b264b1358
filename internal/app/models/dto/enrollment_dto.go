package dto

import (
	"time"

	"github.com/asaplab/asap/internal/app/models"
)

// StudentSummary identifies the student behind a record
type StudentSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	StudentNumber string `json:"studentNumber"`
	Major         string `json:"major"`
}

// RecordResponse describes an enrollment
type RecordResponse struct {
	ID        int64             `json:"id"`
	UnitID    int64             `json:"unitId"`
	Outcome   string            `json:"outcome" example:"PASS" enums:"PASS,FAIL,"`
	CreatedAt time.Time         `json:"createdAt"`
	Unit      *UnitResponse     `json:"unit,omitempty"`
	Research  *ResearchResponse `json:"research,omitempty"`
	Student   *StudentSummary   `json:"student,omitempty"`
}

// EnrollmentCatalogResponse is the student's enroll page: every research
// with its units plus the caller's own records
type EnrollmentCatalogResponse struct {
	Researches []ResearchResponse `json:"researches"`
	MyRecords  []RecordResponse   `json:"myRecords"`
}

// UnitRosterResponse is the professor's view of one unit
type UnitRosterResponse struct {
	Research ResearchResponse `json:"research"`
	Unit     UnitResponse     `json:"unit"`
	Records  []RecordResponse `json:"records"`
}

// OutcomeEntry is one row of an outcome batch
type OutcomeEntry struct {
	RecordID int64  `json:"recordId" binding:"required,min=1"`
	Outcome  string `json:"outcome" example:"PASS"`
}

// RecordOutcomesRequest is the body of POST /prof/manage/:unit_id
type RecordOutcomesRequest struct {
	Entries []OutcomeEntry `json:"entries" binding:"required,min=1,dive"`
}

// NewRecordResponse converts a record model with whatever relations are loaded
func NewRecordResponse(rec *models.Record) RecordResponse {
	resp := RecordResponse{
		ID:        rec.ID,
		UnitID:    rec.UnitID,
		Outcome:   string(rec.Outcome),
		CreatedAt: rec.CreatedAt,
	}
	if rec.Unit != nil {
		unit := NewUnitResponse(rec.Unit)
		resp.Unit = &unit
	}
	if rec.Research != nil {
		research := NewResearchResponse(rec.Research)
		resp.Research = &research
	}
	if rec.Student != nil {
		summary := &StudentSummary{
			ID:            rec.Student.ID,
			StudentNumber: rec.Student.StudentNumber,
			Major:         rec.Student.Major,
		}
		if rec.Student.User != nil {
			summary.Name = rec.Student.User.Name
			summary.Email = rec.Student.User.Email
		}
		resp.Student = summary
	}
	return resp
}

// NewRecordListResponse converts a list, never returning nil
func NewRecordListResponse(records []*models.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, NewRecordResponse(rec))
	}
	return out
}
