package models

import (
	"time"
)

// User defines the account model based on the 'users' table.
// IsStudent and IsProf are independent flags.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"kim@univ.ac.kr"`
	Password    string     `json:"-" db:"password"`
	Name        string     `json:"name" db:"name" example:"Kim Minji"`
	Sex         Sex        `json:"sex" db:"sex" example:"F"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	IsStudent   bool       `json:"isStudent" db:"is_student"`
	IsProf      bool       `json:"isProf" db:"is_prof"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Student defines the student profile based on the 'students' table
type Student struct {
	ID            int64  `json:"id" db:"id"`
	UserID        int64  `json:"userId" db:"user_id"`
	StudentNumber string `json:"studentNumber" db:"student_number" example:"2021123456"`
	Major         string `json:"major" db:"major" example:"Psychology"`
	User          *User  `json:"user,omitempty"`
}

// Prof defines the professor profile based on the 'profs' table
type Prof struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	ProfNumber string `json:"profNumber" db:"prof_number" example:"P1024"`
	Major      string `json:"major" db:"major" example:"Cognitive Science"`
	User       *User  `json:"user,omitempty"`
}

// HasRole reports whether the flags on user allow the kind variant
func (u *User) HasRole(kind ActorKind) bool {
	switch kind {
	case ActorStudent:
		return u.IsStudent
	case ActorProfessor:
		return u.IsProf
	default:
		return false
	}
}
