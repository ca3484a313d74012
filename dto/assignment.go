package dto

import "time"

type TestCaseRequest struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output" binding:"required"`
	Hidden         bool   `json:"hidden"`
}

type ExerciseRequest struct {
	Title     string            `json:"title" binding:"required,min=2,max=200"`
	Statement string            `json:"statement" binding:"required"`
	Language  string            `json:"language" binding:"required"`
	TestCases []TestCaseRequest `json:"test_cases" binding:"required,min=1,dive"`
}

type AssignmentRequest struct {
	Title           string     `json:"title" binding:"required,min=2,max=200"`
	Type            string     `json:"type" binding:"required,oneof=lista prova"`
	ExerciseIDs     []string   `json:"exercise_ids" binding:"required,min=1"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	EnabledStudents []string   `json:"enabled_students,omitempty"`
	RequireLabIP    bool       `json:"require_lab_ip"`
	AllowedIPRanges []string   `json:"allowed_ip_ranges,omitempty"`
}
