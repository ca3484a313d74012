package model

import "time"

// Verdict values mirror what the external judge reports; the platform
// stores them verbatim.
const (
	VerdictPending  = "pending"
	VerdictAccepted = "accepted"
	VerdictWrong    = "wrong_answer"
	VerdictError    = "runtime_error"
	VerdictTimeout  = "time_limit_exceeded"
)

type Submission struct {
	SubmissionID string    `bson:"submission_id" json:"submission_id"`
	AssignmentID string    `bson:"assignment_id" json:"assignment_id"`
	ExerciseID   string    `bson:"exercise_id" json:"exercise_id"`
	StudentID    string    `bson:"student_id" json:"student_id"`
	Language     string    `bson:"language" json:"language"`
	SourceCode   string    `bson:"source_code" json:"source_code"`
	Verdict      string    `bson:"verdict" json:"verdict"`
	Score        float64   `bson:"score" json:"score"`
	JudgeOutput  string    `bson:"judge_output,omitempty" json:"judge_output,omitempty"`
	SubmittedAt  time.Time `bson:"submitted_at" json:"submitted_at"`
}
