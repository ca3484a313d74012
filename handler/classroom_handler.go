package handler

import (
	"codearena/dto"
	"codearena/repository"
	"codearena/usecase"
	"codearena/utils"

	"github.com/gin-gonic/gin"
)

func CreateClassroomHandler(c *gin.Context, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	classroom, err := classrooms.CreateClassroom(c.Request.Context(), user, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, classroom)
}

func JoinClassroomHandler(c *gin.Context, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.JoinClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	classroom, err := classrooms.Join(c.Request.Context(), user, req.JoinCode)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"classroom_id": classroom.ClassroomID,
		"name":         classroom.Name,
	})
}

func LeaveClassroomHandler(c *gin.Context, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := classrooms.Leave(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Left classroom"})
}

func ListClassroomsHandler(c *gin.Context, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := classrooms.ListFor(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"classrooms": list})
}

// RosterHandler lists the enrolled students of an owned classroom with
// their names resolved.
func RosterHandler(c *gin.Context, classrooms *usecase.ClassroomService, userRepo *repository.UserRepo) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	classroom, err := classrooms.OwnedClassroom(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	students := make([]gin.H, 0, len(classroom.StudentIDs))
	for _, studentID := range classroom.StudentIDs {
		student, err := userRepo.FindByID(c.Request.Context(), studentID)
		if err != nil {
			respondError(c, err)
			return
		}
		if student == nil {
			continue
		}
		students = append(students, gin.H{
			"id":    student.UserID,
			"name":  student.Name,
			"email": student.Email,
		})
	}

	utils.Success(c, gin.H{"students": students})
}

func DeleteClassroomHandler(c *gin.Context, classrooms *usecase.ClassroomService) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := classrooms.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Classroom deleted"})
}
