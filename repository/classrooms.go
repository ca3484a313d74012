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

const classroomsCollection = "classrooms"

type ClassroomRepo struct {
	MongoCollection *mongo.Collection
}

func GetClassroomRepo(db *mongo.Database) *ClassroomRepo {
	return &ClassroomRepo{MongoCollection: db.Collection(classroomsCollection)}
}

func (r *ClassroomRepo) CreateClassroom(ctx context.Context, classroom *model.Classroom) error {
	timer := utils.TrackDBOperation("insert", classroomsCollection)
	defer timer.ObserveDuration()

	if classroom == nil {
		return fmt.Errorf("classroom cannot be nil")
	}
	if classroom.ClassroomID == "" || classroom.ProfessorID == "" || classroom.JoinCode == "" {
		return fmt.Errorf("invalid classroom data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, classroom); err != nil {
		utils.TrackError("database", "classroom_creation_failed")
		return fmt.Errorf("failed to create classroom: %w", err)
	}
	return nil
}

func (r *ClassroomRepo) FindByID(ctx context.Context, classroomID string) (*model.Classroom, error) {
	timer := utils.TrackDBOperation("find", classroomsCollection)
	defer timer.ObserveDuration()

	if classroomID == "" {
		return nil, fmt.Errorf("classroomID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var classroom model.Classroom
	err := r.MongoCollection.FindOne(ctx, bson.M{"classroom_id": classroomID}).Decode(&classroom)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom: %w", err)
	}
	return &classroom, nil
}

func (r *ClassroomRepo) FindByJoinCode(ctx context.Context, joinCode string) (*model.Classroom, error) {
	timer := utils.TrackDBOperation("find", classroomsCollection)
	defer timer.ObserveDuration()

	if joinCode == "" {
		return nil, fmt.Errorf("join code cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var classroom model.Classroom
	err := r.MongoCollection.FindOne(ctx, bson.M{"join_code": joinCode}).Decode(&classroom)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch classroom by join code: %w", err)
	}
	return &classroom, nil
}

// AddStudent enrolls a student idempotently via $addToSet.
func (r *ClassroomRepo) AddStudent(ctx context.Context, classroomID, studentID string) error {
	timer := utils.TrackDBOperation("update", classroomsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"classroom_id": classroomID},
		bson.M{"$addToSet": bson.M{"student_ids": studentID}},
	)
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("classroom not found")
	}
	return nil
}

func (r *ClassroomRepo) RemoveStudent(ctx context.Context, classroomID, studentID string) error {
	timer := utils.TrackDBOperation("update", classroomsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"classroom_id": classroomID},
		bson.M{"$pull": bson.M{"student_ids": studentID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove student: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("classroom not found")
	}
	return nil
}

func (r *ClassroomRepo) ListByProfessor(ctx context.Context, professorID string) ([]*model.Classroom, error) {
	return r.list(ctx, bson.M{"professor_id": professorID})
}

func (r *ClassroomRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.Classroom, error) {
	return r.list(ctx, bson.M{"student_ids": studentID})
}

func (r *ClassroomRepo) ListAll(ctx context.Context) ([]*model.Classroom, error) {
	return r.list(ctx, bson.M{})
}

func (r *ClassroomRepo) list(ctx context.Context, filter bson.M) ([]*model.Classroom, error) {
	timer := utils.TrackDBOperation("find", classroomsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list classrooms: %w", err)
	}
	defer cursor.Close(ctx)

	var classrooms []*model.Classroom
	if err := cursor.All(ctx, &classrooms); err != nil {
		return nil, fmt.Errorf("failed to decode classrooms: %w", err)
	}
	return classrooms, nil
}

func (r *ClassroomRepo) DeleteClassroom(ctx context.Context, classroomID string) error {
	timer := utils.TrackDBOperation("delete", classroomsCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"classroom_id": classroomID})
	if err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("classroom not found")
	}
	return nil
}
