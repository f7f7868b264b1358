package models

import "strings"

// Semester represents the half of the academic year a research runs in
type Semester string

const (
	SemesterSpring Semester = "SPRING"
	SemesterFall   Semester = "FALL"
)

// IsValid reports whether s is a known semester
func (s Semester) IsValid() bool {
	return s == SemesterSpring || s == SemesterFall
}

// Sex of a user account
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// IsValid reports whether s is a known value
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

// Outcome is the result a professor records for an enrollment
type Outcome string

const (
	OutcomeUnset Outcome = ""
	OutcomePass  Outcome = "PASS"
	OutcomeFail  Outcome = "FAIL"
)

// IsValid reports whether o is PASS, FAIL or unset
func (o Outcome) IsValid() bool {
	return o == OutcomeUnset || o == OutcomePass || o == OutcomeFail
}

// ParseOutcome normalizes user input. "P" and "F" are accepted as shorthands.
func ParseOutcome(raw string) (Outcome, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return OutcomeUnset, true
	case "PASS", "P":
		return OutcomePass, true
	case "FAIL", "F":
		return OutcomeFail, true
	default:
		return Outcome(raw), false
	}
}
