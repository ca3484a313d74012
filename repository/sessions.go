package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"codearena/model"
	"codearena/services"
	"codearena/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "sessions"

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{MongoCollection: db.Collection(sessionsCollection)}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", sessionsCollection)
	defer timer.ObserveDuration()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}
	if session.SessionToken == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return nil
}

// InvalidateUserSessions marks every active session of the user inactive
// and returns how many records changed. This is the supersession step of
// a new login; the conditional filter on is_active makes two racing
// logins settle last-write-wins with a single survivor.
func (r *SessionRepo) InvalidateUserSessions(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("update", sessionsCollection)
	defer timer.ObserveDuration()

	if userID == "" {
		return 0, fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		}},
	)
	if err != nil {
		utils.TrackError("database", "session_invalidation_failed")
		return 0, fmt.Errorf("failed to invalidate user sessions: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.InvalidateUser(userID); err != nil {
			log.Printf("Warning: failed to invalidate session cache: %v", err)
		}
	}

	return result.ModifiedCount, nil
}

func (r *SessionRepo) GetSession(ctx context.Context, token string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", sessionsCollection)
	defer timer.ObserveDuration()

	if token == "" {
		return nil, fmt.Errorf("session token cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(token); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_token": token}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(&session); err != nil {
			log.Printf("Warning: failed to cache session: %v", err)
		}
	}

	return &session, nil
}

// GetActiveSession returns the most recent active session for a user, or
// nil when none exists.
func (r *SessionRepo) GetActiveSession(ctx context.Context, userID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", sessionsCollection)
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.M{"last_activity_at": -1})
	var session model.Session
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "is_active": true}, opts).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch active session: %w", err)
	}
	return &session, nil
}

// TouchSession records request activity on a session.
func (r *SessionRepo) TouchSession(ctx context.Context, token string) error {
	timer := utils.TrackDBOperation("update", sessionsCollection)
	defer timer.ObserveDuration()

	if token == "" {
		return fmt.Errorf("session token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_token": token, "is_active": true},
		bson.M{"$set": bson.M{"last_activity_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(token); err != nil {
			log.Printf("Warning: failed to evict session from cache: %v", err)
		}
	}

	return nil
}

// EndSession deactivates a single session (logout).
func (r *SessionRepo) EndSession(ctx context.Context, token string) error {
	timer := utils.TrackDBOperation("update", sessionsCollection)
	defer timer.ObserveDuration()

	if token == "" {
		return fmt.Errorf("session token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_token": token, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":        false,
			"last_activity_at": time.Now(),
		}},
	)
	if err != nil {
		utils.TrackError("database", "session_end_failed")
		return fmt.Errorf("failed to end session: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("session not found")
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(token); err != nil {
			log.Printf("Warning: failed to delete session from cache: %v", err)
		}
	}

	return nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", sessionsCollection)
	defer timer.ObserveDuration()

	if userID == "" {
		return 0, fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return int(count), nil
}
