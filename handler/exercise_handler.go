package handler

import (
	"codearena/dto"
	"codearena/model"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func exerciseInput(req dto.ExerciseRequest) usecase.ExerciseInput {
	testCases := make([]model.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		testCases = append(testCases, model.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			Hidden:         tc.Hidden,
		})
	}
	return usecase.ExerciseInput{
		Title:     req.Title,
		Statement: req.Statement,
		Language:  req.Language,
		TestCases: testCases,
	}
}

func CreateExerciseHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	exercise, err := assignments.CreateExercise(c.Request.Context(), user, c.Param("id"), exerciseInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, exercise)
}

func UpdateExerciseHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	exercise, err := assignments.UpdateExercise(c.Request.Context(), user, c.Param("id"), exerciseInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, exercise)
}

func DeleteExerciseHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := assignments.DeleteExercise(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Exercise deleted"})
}

func ListExercisesHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	exercises, err := assignments.ListExercises(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"exercises": exercises})
}
