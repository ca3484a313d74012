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

const assignmentsCollection = "assignments"

type AssignmentRepo struct {
	MongoCollection *mongo.Collection
}

func GetAssignmentRepo(db *mongo.Database) *AssignmentRepo {
	return &AssignmentRepo{MongoCollection: db.Collection(assignmentsCollection)}
}

func (r *AssignmentRepo) CreateAssignment(ctx context.Context, assignment *model.Assignment) error {
	timer := utils.TrackDBOperation("insert", assignmentsCollection)
	defer timer.ObserveDuration()

	if assignment == nil {
		return fmt.Errorf("assignment cannot be nil")
	}
	if assignment.AssignmentID == "" || assignment.ClassroomID == "" || !assignment.Type.Valid() {
		return fmt.Errorf("invalid assignment data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, assignment); err != nil {
		utils.TrackError("database", "assignment_creation_failed")
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepo) FindByID(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	timer := utils.TrackDBOperation("find", assignmentsCollection)
	defer timer.ObserveDuration()

	if assignmentID == "" {
		return nil, fmt.Errorf("assignmentID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var assignment model.Assignment
	err := r.MongoCollection.FindOne(ctx, bson.M{"assignment_id": assignmentID}).Decode(&assignment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	return &assignment, nil
}

func (r *AssignmentRepo) ListByClassroom(ctx context.Context, classroomID string) ([]*model.Assignment, error) {
	timer := utils.TrackDBOperation("find", assignmentsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"classroom_id": classroomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var assignments []*model.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}
	return assignments, nil
}

// UpdateAssignment rewrites the mutable fields, including the exam
// gating configuration. Writes go through this typed update only.
func (r *AssignmentRepo) UpdateAssignment(ctx context.Context, assignment *model.Assignment) error {
	timer := utils.TrackDBOperation("update", assignmentsCollection)
	defer timer.ObserveDuration()

	if assignment == nil {
		return fmt.Errorf("assignment cannot be nil")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"assignment_id": assignment.AssignmentID},
		bson.M{"$set": bson.M{
			"title":             assignment.Title,
			"type":              assignment.Type,
			"exercise_ids":      assignment.ExerciseIDs,
			"starts_at":         assignment.StartsAt,
			"ends_at":           assignment.EndsAt,
			"enabled_students":  assignment.EnabledStudents,
			"require_lab_ip":    assignment.RequireLabIP,
			"allowed_ip_ranges": assignment.AllowedIPRanges,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}

func (r *AssignmentRepo) DeleteAssignment(ctx context.Context, assignmentID string) error {
	timer := utils.TrackDBOperation("delete", assignmentsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"assignment_id": assignmentID})
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}
