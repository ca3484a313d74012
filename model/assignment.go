package model

import "time"

// AssignmentType distinguishes ungated exercise lists from timed,
// access-gated exams.
type AssignmentType string

const (
	AssignmentLista AssignmentType = "lista"
	AssignmentProva AssignmentType = "prova"
)

func (t AssignmentType) Valid() bool {
	return t == AssignmentLista || t == AssignmentProva
}

type Assignment struct {
	AssignmentID string         `bson:"assignment_id" json:"assignment_id"`
	ClassroomID  string         `bson:"classroom_id" json:"classroom_id"`
	Title        string         `bson:"title" json:"title"`
	Type         AssignmentType `bson:"type" json:"type"`
	ExerciseIDs  []string       `bson:"exercise_ids" json:"exercise_ids"`
	StartsAt     *time.Time     `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	EndsAt       *time.Time     `bson:"ends_at,omitempty" json:"ends_at,omitempty"`

	// Exam gating. An empty EnabledStudents list means no manual
	// restriction; AllowedIPRanges is only consulted when RequireLabIP
	// is set.
	EnabledStudents []string `bson:"enabled_students,omitempty" json:"enabled_students,omitempty"`
	RequireLabIP    bool     `bson:"require_lab_ip" json:"require_lab_ip"`
	AllowedIPRanges []string `bson:"allowed_ip_ranges,omitempty" json:"allowed_ip_ranges,omitempty"`

	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (a *Assignment) IsProva() bool {
	return a.Type == AssignmentProva
}
