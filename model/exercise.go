package model

import "time"

type TestCase struct {
	Input          string `bson:"input" json:"input"`
	ExpectedOutput string `bson:"expected_output" json:"expected_output"`
	Hidden         bool   `bson:"hidden" json:"hidden"`
}

type Exercise struct {
	ExerciseID  string     `bson:"exercise_id" json:"exercise_id"`
	ClassroomID string     `bson:"classroom_id" json:"classroom_id"`
	Title       string     `bson:"title" json:"title"`
	Statement   string     `bson:"statement" json:"statement"`
	Language    string     `bson:"language" json:"language"`
	TestCases   []TestCase `bson:"test_cases" json:"test_cases"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
