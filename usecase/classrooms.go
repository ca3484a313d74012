package usecase

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/repository"
	"codearena/utils"
)

type ClassroomService struct {
	Classrooms *repository.ClassroomRepo
}

func (s *ClassroomService) CreateClassroom(ctx context.Context, owner *model.User, name, description string) (*model.Classroom, error) {
	switch owner.Role {
	case model.RoleProfessor, model.RoleSuperadmin:
	case model.RoleAluno:
		return nil, fmt.Errorf("students cannot create classrooms: %w", ErrForbidden)
	default:
		return nil, fmt.Errorf("role %q: %w", owner.Role, ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("classroom name is required: %w", ErrValidation)
	}

	joinCode, err := utils.GenerateJoinCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate join code: %w", err)
	}

	classroom := &model.Classroom{
		ClassroomID: utils.GenerateID(),
		Name:        name,
		Description: description,
		ProfessorID: owner.UserID,
		JoinCode:    joinCode,
		StudentIDs:  []string{},
		CreatedAt:   time.Now(),
	}

	if err := s.Classrooms.CreateClassroom(ctx, classroom); err != nil {
		return nil, err
	}
	return classroom, nil
}

// Join enrolls a student by join code.
func (s *ClassroomService) Join(ctx context.Context, student *model.User, joinCode string) (*model.Classroom, error) {
	if student.Role != model.RoleAluno {
		return nil, fmt.Errorf("only students join classrooms: %w", ErrForbidden)
	}

	classroom, err := s.Classrooms.FindByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, fmt.Errorf("join code %q: %w", joinCode, ErrNotFound)
	}

	if err := s.Classrooms.AddStudent(ctx, classroom.ClassroomID, student.UserID); err != nil {
		return nil, err
	}
	return classroom, nil
}

func (s *ClassroomService) Leave(ctx context.Context, student *model.User, classroomID string) error {
	if student.Role != model.RoleAluno {
		return fmt.Errorf("only students leave classrooms: %w", ErrForbidden)
	}
	return s.Classrooms.RemoveStudent(ctx, classroomID, student.UserID)
}

// ListFor returns the classrooms visible to the user: owned ones for a
// professor, enrolled ones for a student, everything for the superadmin.
func (s *ClassroomService) ListFor(ctx context.Context, user *model.User) ([]*model.Classroom, error) {
	switch user.Role {
	case model.RoleSuperadmin:
		return s.Classrooms.ListAll(ctx)
	case model.RoleProfessor:
		return s.Classrooms.ListByProfessor(ctx, user.UserID)
	case model.RoleAluno:
		return s.Classrooms.ListByStudent(ctx, user.UserID)
	default:
		return nil, fmt.Errorf("role %q: %w", user.Role, ErrValidation)
	}
}

// OwnedClassroom loads a classroom and verifies the caller may manage
// it: the owning professor or the superadmin.
func (s *ClassroomService) OwnedClassroom(ctx context.Context, user *model.User, classroomID string) (*model.Classroom, error) {
	classroom, err := s.Classrooms.FindByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, fmt.Errorf("classroom %s: %w", classroomID, ErrNotFound)
	}

	switch user.Role {
	case model.RoleSuperadmin:
	case model.RoleProfessor:
		if classroom.ProfessorID != user.UserID {
			return nil, fmt.Errorf("classroom %s is owned by another professor: %w", classroomID, ErrForbidden)
		}
	case model.RoleAluno:
		return nil, fmt.Errorf("students cannot manage classrooms: %w", ErrForbidden)
	default:
		return nil, fmt.Errorf("role %q: %w", user.Role, ErrValidation)
	}
	return classroom, nil
}

func (s *ClassroomService) Delete(ctx context.Context, user *model.User, classroomID string) error {
	if _, err := s.OwnedClassroom(ctx, user, classroomID); err != nil {
		return err
	}
	return s.Classrooms.DeleteClassroom(ctx, classroomID)
}
