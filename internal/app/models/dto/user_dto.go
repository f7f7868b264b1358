package dto

import "github.com/asaplab/asap/internal/app/models"

// StudentProfile is the student part of a profile
type StudentProfile struct {
	ID            int64  `json:"id"`
	StudentNumber string `json:"studentNumber"`
	Major         string `json:"major"`
}

// ProfProfile is the professor part of a profile
type ProfProfile struct {
	ID         int64  `json:"id"`
	ProfNumber string `json:"profNumber"`
	Major      string `json:"major"`
}

// UserProfileResponse is returned by GET /mypage
type UserProfileResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Sex       string          `json:"sex"`
	IsActive  bool            `json:"isActive"`
	IsStudent bool            `json:"isStudent"`
	IsProf    bool            `json:"isProf"`
	Role      string          `json:"role" example:"student" enums:"student,professor,guest"`
	Student   *StudentProfile `json:"student,omitempty"`
	Prof      *ProfProfile    `json:"prof,omitempty"`
}

// UpdateProfileRequest is the body of PUT /mypage. The role specific fields
// are applied to whichever profile the caller has.
type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required,max=50"`
	Sex           string `json:"sex" binding:"required,oneof=M F"`
	Major         string `json:"major" binding:"max=50"`
	StudentNumber string `json:"studentNumber" binding:"max=20"`
	ProfNumber    string `json:"profNumber" binding:"max=20"`
}

// NewUserProfileResponse builds the profile view of an actor
func NewUserProfileResponse(actor models.Actor) *UserProfileResponse {
	u := actor.Account()
	resp := &UserProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Sex:       string(u.Sex),
		IsActive:  u.IsActive,
		IsStudent: u.IsStudent,
		IsProf:    u.IsProf,
		Role:      string(actor.Kind()),
	}

	switch a := actor.(type) {
	case *models.StudentActor:
		resp.Student = &StudentProfile{
			ID:            a.Student.ID,
			StudentNumber: a.Student.StudentNumber,
			Major:         a.Student.Major,
		}
	case *models.ProfessorActor:
		resp.Prof = &ProfProfile{
			ID:         a.Prof.ID,
			ProfNumber: a.Prof.ProfNumber,
			Major:      a.Prof.Major,
		}
	case *models.GuestActor:
	}

	return resp
}
