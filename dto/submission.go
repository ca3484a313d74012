package dto

type SubmissionRequest struct {
	ExerciseID string `json:"exercise_id" binding:"required"`
	Language   string `json:"language" binding:"required"`
	SourceCode string `json:"source_code" binding:"required"`
}
