package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates every index the platform relies on. sessionTTL is
// the store-level expiry for session documents; it is independent of the
// application's inactivity check.
func SetupIndexes(db *mongo.Database, sessionTTL time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_token", Value: 1}},
			Options: options.Index().
				SetName("session_token_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		// Store-level garbage collection of stale session documents.
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().
				SetName("session_expiry").
				SetExpireAfterSeconds(int32(sessionTTL.Seconds())),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	classroomIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "classroom_id", Value: 1}},
			Options: options.Index().
				SetName("classroom_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "join_code", Value: 1}},
			Options: options.Index().
				SetName("join_code_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "professor_id", Value: 1}},
			Options: options.Index().
				SetName("professor_classrooms"),
		},
	}

	assignmentIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "assignment_id", Value: 1}},
			Options: options.Index().
				SetName("assignment_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "classroom_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("classroom_assignments_date"),
		},
	}

	submissionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "submission_id", Value: 1}},
			Options: options.Index().
				SetName("submission_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "assignment_id", Value: 1},
				{Key: "student_id", Value: 1},
				{Key: "submitted_at", Value: -1},
			},
			Options: options.Index().
				SetName("assignment_student_submissions"),
		},
	}

	inviteIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "token", Value: 1}},
			Options: options.Index().
				SetName("invite_token_unique").
				SetUnique(true),
		},
	}

	exerciseIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "exercise_id", Value: 1}},
			Options: options.Index().
				SetName("exercise_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "classroom_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("classroom_exercises_date"),
		},
	}

	collections := map[string][]mongo.IndexModel{
		sessionsCollection:    sessionIndexes,
		usersCollection:       userIndexes,
		classroomsCollection:  classroomIndexes,
		assignmentsCollection: assignmentIndexes,
		submissionsCollection: submissionIndexes,
		invitesCollection:     inviteIndexes,
		exercisesCollection:   exerciseIndexes,
	}

	for name, indexes := range collections {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
