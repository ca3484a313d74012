package repository

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const submissionsCollection = "submissions"

type SubmissionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSubmissionRepo(db *mongo.Database) *SubmissionRepo {
	return &SubmissionRepo{MongoCollection: db.Collection(submissionsCollection)}
}

func (r *SubmissionRepo) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	timer := utils.TrackDBOperation("insert", submissionsCollection)
	defer timer.ObserveDuration()

	if submission == nil {
		return fmt.Errorf("submission cannot be nil")
	}
	if submission.SubmissionID == "" || submission.StudentID == "" || submission.ExerciseID == "" {
		return fmt.Errorf("invalid submission data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, submission); err != nil {
		utils.TrackError("database", "submission_creation_failed")
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepo) FindByID(ctx context.Context, submissionID string) (*model.Submission, error) {
	timer := utils.TrackDBOperation("find", submissionsCollection)
	defer timer.ObserveDuration()

	if submissionID == "" {
		return nil, fmt.Errorf("submissionID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var submission model.Submission
	err := r.MongoCollection.FindOne(ctx, bson.M{"submission_id": submissionID}).Decode(&submission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}
	return &submission, nil
}

// RecordVerdict stores the judge's result for a submission.
func (r *SubmissionRepo) RecordVerdict(ctx context.Context, submissionID, verdict string, score float64, output string) error {
	timer := utils.TrackDBOperation("update", submissionsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"submission_id": submissionID},
		bson.M{"$set": bson.M{
			"verdict":      verdict,
			"score":        score,
			"judge_output": output,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("submission not found")
	}
	return nil
}

func (r *SubmissionRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]*model.Submission, error) {
	return r.list(ctx, bson.M{"assignment_id": assignmentID})
}

func (r *SubmissionRepo) ListByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) ([]*model.Submission, error) {
	return r.list(ctx, bson.M{"assignment_id": assignmentID, "student_id": studentID})
}

func (r *SubmissionRepo) list(ctx context.Context, filter bson.M) ([]*model.Submission, error) {
	timer := utils.TrackDBOperation("find", submissionsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"submitted_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	var submissions []*model.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return submissions, nil
}
