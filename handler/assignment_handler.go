package handler

import (
	"codearena/dto"
	"codearena/model"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func assignmentInput(req dto.AssignmentRequest) usecase.AssignmentInput {
	return usecase.AssignmentInput{
		Title:           req.Title,
		Type:            model.AssignmentType(req.Type),
		ExerciseIDs:     req.ExerciseIDs,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		EnabledStudents: req.EnabledStudents,
		RequireLabIP:    req.RequireLabIP,
		AllowedIPRanges: req.AllowedIPRanges,
	}
}

func CreateAssignmentHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	assignment, err := assignments.CreateAssignment(c.Request.Context(), user, c.Param("id"), assignmentInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, assignment)
}

func UpdateAssignmentHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	assignment, err := assignments.UpdateAssignment(c.Request.Context(), user, c.Param("id"), assignmentInput(req))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, assignment)
}

func DeleteAssignmentHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := assignments.DeleteAssignment(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Assignment deleted"})
}

func ListAssignmentsHandler(c *gin.Context, assignments *usecase.AssignmentService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := assignments.ListAssignments(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"assignments": list})
}
