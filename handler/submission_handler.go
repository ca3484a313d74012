package handler

import (
	"codearena/dto"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func SubmitHandler(c *gin.Context, grading *usecase.GradingService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	submission, err := grading.Submit(
		c.Request.Context(),
		user,
		c.Param("id"),
		req.ExerciseID,
		req.Language,
		req.SourceCode,
		c.ClientIP(),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, gin.H{
		"submission_id": submission.SubmissionID,
		"verdict":       submission.Verdict,
		"score":         submission.Score,
		"judge_output":  submission.JudgeOutput,
	})
}

func ListSubmissionsHandler(c *gin.Context, grading *usecase.GradingService, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	submissions, err := grading.ListSubmissions(c.Request.Context(), user, c.Param("id"), classrooms)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"submissions": submissions})
}
