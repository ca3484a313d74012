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

const exercisesCollection = "exercises"

type ExerciseRepo struct {
	MongoCollection *mongo.Collection
}

func GetExerciseRepo(db *mongo.Database) *ExerciseRepo {
	return &ExerciseRepo{MongoCollection: db.Collection(exercisesCollection)}
}

func (r *ExerciseRepo) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	timer := utils.TrackDBOperation("insert", exercisesCollection)
	defer timer.ObserveDuration()

	if exercise == nil {
		return fmt.Errorf("exercise cannot be nil")
	}
	if exercise.ExerciseID == "" || exercise.ClassroomID == "" {
		return fmt.Errorf("invalid exercise data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, exercise); err != nil {
		utils.TrackError("database", "exercise_creation_failed")
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

func (r *ExerciseRepo) FindByID(ctx context.Context, exerciseID string) (*model.Exercise, error) {
	timer := utils.TrackDBOperation("find", exercisesCollection)
	defer timer.ObserveDuration()

	if exerciseID == "" {
		return nil, fmt.Errorf("exerciseID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var exercise model.Exercise
	err := r.MongoCollection.FindOne(ctx, bson.M{"exercise_id": exerciseID}).Decode(&exercise)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch exercise: %w", err)
	}
	return &exercise, nil
}

func (r *ExerciseRepo) ListByClassroom(ctx context.Context, classroomID string) ([]*model.Exercise, error) {
	timer := utils.TrackDBOperation("find", exercisesCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"classroom_id": classroomID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer cursor.Close(ctx)

	var exercises []*model.Exercise
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}
	return exercises, nil
}

func (r *ExerciseRepo) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	timer := utils.TrackDBOperation("update", exercisesCollection)
	defer timer.ObserveDuration()

	if exercise == nil {
		return fmt.Errorf("exercise cannot be nil")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"exercise_id": exercise.ExerciseID},
		bson.M{"$set": bson.M{
			"title":      exercise.Title,
			"statement":  exercise.Statement,
			"language":   exercise.Language,
			"test_cases": exercise.TestCases,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update exercise: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("exercise not found")
	}
	return nil
}

func (r *ExerciseRepo) DeleteExercise(ctx context.Context, exerciseID string) error {
	timer := utils.TrackDBOperation("delete", exercisesCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"exercise_id": exerciseID})
	if err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("exercise not found")
	}
	return nil
}
