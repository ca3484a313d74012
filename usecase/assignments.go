package usecase

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/repository"
	"codearena/utils"
)

// AssignmentService manages exercises and graded assignments inside a
// classroom. Management operations require classroom ownership.
type AssignmentService struct {
	Assignments *repository.AssignmentRepo
	Exercises   *repository.ExerciseRepo
	Classrooms  *ClassroomService
}

type ExerciseInput struct {
	Title     string
	Statement string
	Language  string
	TestCases []model.TestCase
}

func (s *AssignmentService) CreateExercise(ctx context.Context, user *model.User, classroomID string, in ExerciseInput) (*model.Exercise, error) {
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, classroomID); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Statement == "" {
		return nil, fmt.Errorf("exercise title and statement are required: %w", ErrValidation)
	}

	now := time.Now()
	exercise := &model.Exercise{
		ExerciseID:  utils.GenerateID(),
		ClassroomID: classroomID,
		Title:       in.Title,
		Statement:   in.Statement,
		Language:    in.Language,
		TestCases:   in.TestCases,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Exercises.CreateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *AssignmentService) UpdateExercise(ctx context.Context, user *model.User, exerciseID string, in ExerciseInput) (*model.Exercise, error) {
	exercise, err := s.Exercises.FindByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, exercise.ClassroomID); err != nil {
		return nil, err
	}

	exercise.Title = in.Title
	exercise.Statement = in.Statement
	exercise.Language = in.Language
	exercise.TestCases = in.TestCases
	if err := s.Exercises.UpdateExercise(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *AssignmentService) DeleteExercise(ctx context.Context, user *model.User, exerciseID string) error {
	exercise, err := s.Exercises.FindByID(ctx, exerciseID)
	if err != nil {
		return err
	}
	if exercise == nil {
		return fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, exercise.ClassroomID); err != nil {
		return err
	}
	return s.Exercises.DeleteExercise(ctx, exerciseID)
}

func (s *AssignmentService) ListExercises(ctx context.Context, user *model.User, classroomID string) ([]*model.Exercise, error) {
	if err := s.requireMembership(ctx, user, classroomID); err != nil {
		return nil, err
	}
	return s.Exercises.ListByClassroom(ctx, classroomID)
}

type AssignmentInput struct {
	Title           string
	Type            model.AssignmentType
	ExerciseIDs     []string
	StartsAt        *time.Time
	EndsAt          *time.Time
	EnabledStudents []string
	RequireLabIP    bool
	AllowedIPRanges []string
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, user *model.User, classroomID string, in AssignmentInput) (*model.Assignment, error) {
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, classroomID); err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, fmt.Errorf("assignment title is required: %w", ErrValidation)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("assignment type %q: %w", in.Type, ErrValidation)
	}

	assignment := &model.Assignment{
		AssignmentID:    utils.GenerateID(),
		ClassroomID:     classroomID,
		Title:           in.Title,
		Type:            in.Type,
		ExerciseIDs:     in.ExerciseIDs,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		EnabledStudents: in.EnabledStudents,
		RequireLabIP:    in.RequireLabIP,
		AllowedIPRanges: in.AllowedIPRanges,
		CreatedBy:       user.UserID,
		CreatedAt:       time.Now(),
	}
	if err := s.Assignments.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) UpdateAssignment(ctx context.Context, user *model.User, assignmentID string, in AssignmentInput) (*model.Assignment, error) {
	assignment, err := s.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, assignment.ClassroomID); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("assignment type %q: %w", in.Type, ErrValidation)
	}

	assignment.Title = in.Title
	assignment.Type = in.Type
	assignment.ExerciseIDs = in.ExerciseIDs
	assignment.StartsAt = in.StartsAt
	assignment.EndsAt = in.EndsAt
	assignment.EnabledStudents = in.EnabledStudents
	assignment.RequireLabIP = in.RequireLabIP
	assignment.AllowedIPRanges = in.AllowedIPRanges

	if err := s.Assignments.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) DeleteAssignment(ctx context.Context, user *model.User, assignmentID string) error {
	assignment, err := s.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}
	if _, err := s.Classrooms.OwnedClassroom(ctx, user, assignment.ClassroomID); err != nil {
		return err
	}
	return s.Assignments.DeleteAssignment(ctx, assignmentID)
}

func (s *AssignmentService) ListAssignments(ctx context.Context, user *model.User, classroomID string) ([]*model.Assignment, error) {
	if err := s.requireMembership(ctx, user, classroomID); err != nil {
		return nil, err
	}
	return s.Assignments.ListByClassroom(ctx, classroomID)
}

// requireMembership allows the owning professor, enrolled students and
// the superadmin to read classroom content.
func (s *AssignmentService) requireMembership(ctx context.Context, user *model.User, classroomID string) error {
	classroom, err := s.Classrooms.Classrooms.FindByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if classroom == nil {
		return fmt.Errorf("classroom %s: %w", classroomID, ErrNotFound)
	}

	switch user.Role {
	case model.RoleSuperadmin:
		return nil
	case model.RoleProfessor:
		if classroom.ProfessorID == user.UserID {
			return nil
		}
		return fmt.Errorf("classroom %s is owned by another professor: %w", classroomID, ErrForbidden)
	case model.RoleAluno:
		if classroom.HasStudent(user.UserID) {
			return nil
		}
		return fmt.Errorf("not enrolled in classroom %s: %w", classroomID, ErrForbidden)
	default:
		return fmt.Errorf("role %q: %w", user.Role, ErrValidation)
	}
}
