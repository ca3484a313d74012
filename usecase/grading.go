package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"codearena/model"
	"codearena/repository"
	"codearena/utils"
)

// Judge is the external code-execution service. Grading here is a thin
// pass-through: the platform sends source and test cases and stores
// whatever verdict comes back.
type Judge interface {
	Grade(ctx context.Context, language, sourceCode string, testCases []model.TestCase) (verdict string, score float64, output string, err error)
}

type GradingService struct {
	Submissions *repository.SubmissionRepo
	Assignments *repository.AssignmentRepo
	Exercises   *repository.ExerciseRepo
	Gate        *AccessGate
	Judge       Judge
}

// Submit grades a student's solution. For exams the access gate is
// re-checked at submit time with the submitting address, so a student
// who passed check-access cannot hand the exam URL to someone outside
// the lab.
func (s *GradingService) Submit(ctx context.Context, student *model.User, assignmentID, exerciseID, language, sourceCode, requestOrigin string) (*model.Submission, error) {
	if student.Role != model.RoleAluno {
		return nil, fmt.Errorf("only students submit solutions: %w", ErrForbidden)
	}
	if sourceCode == "" {
		return nil, fmt.Errorf("source code is required: %w", ErrValidation)
	}

	assignment, err := s.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	if assignment.IsProva() {
		decision, err := s.Gate.Evaluate(ctx, assignmentID, student.UserID, requestOrigin)
		if err != nil {
			return nil, err
		}
		if !decision.HasAccess {
			return nil, fmt.Errorf("exam access denied: %w", ErrForbidden)
		}
	}

	if !containsID(assignment.ExerciseIDs, exerciseID) {
		return nil, fmt.Errorf("exercise %s is not part of assignment %s: %w", exerciseID, assignmentID, ErrNotFound)
	}

	exercise, err := s.Exercises.FindByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, fmt.Errorf("exercise %s: %w", exerciseID, ErrNotFound)
	}

	submission := &model.Submission{
		SubmissionID: utils.GenerateID(),
		AssignmentID: assignmentID,
		ExerciseID:   exerciseID,
		StudentID:    student.UserID,
		Language:     language,
		SourceCode:   sourceCode,
		Verdict:      model.VerdictPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.Submissions.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	verdict, score, output, err := s.Judge.Grade(ctx, language, sourceCode, exercise.TestCases)
	if err != nil {
		// The submission stays pending; the judge failure is the
		// caller's error to see.
		utils.TrackError("judge", "grading_failed")
		log.Printf("Judge failed for submission %s: %v", submission.SubmissionID, err)
		return nil, fmt.Errorf("grading failed: %w", err)
	}

	if err := s.Submissions.RecordVerdict(ctx, submission.SubmissionID, verdict, score, output); err != nil {
		return nil, err
	}
	utils.JudgeSubmissions.WithLabelValues(verdict).Inc()

	submission.Verdict = verdict
	submission.Score = score
	submission.JudgeOutput = output
	return submission, nil
}

// ListSubmissions returns the student's own submissions, or all of them
// for the classroom owner and superadmin.
func (s *GradingService) ListSubmissions(ctx context.Context, user *model.User, assignmentID string, classrooms *ClassroomService) ([]*model.Submission, error) {
	assignment, err := s.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	switch user.Role {
	case model.RoleAluno:
		return s.Submissions.ListByAssignmentAndStudent(ctx, assignmentID, user.UserID)
	case model.RoleProfessor, model.RoleSuperadmin:
		if _, err := classrooms.OwnedClassroom(ctx, user, assignment.ClassroomID); err != nil {
			return nil, err
		}
		return s.Submissions.ListByAssignment(ctx, assignmentID)
	default:
		return nil, fmt.Errorf("role %q: %w", user.Role, ErrValidation)
	}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
