package repository

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{MongoCollection: db.Collection(usersCollection)}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", usersCollection)
	defer timer.ObserveDuration()

	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if user.UserID == "" || user.Email == "" || !user.Role.Valid() {
		return fmt.Errorf("invalid user data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", usersCollection)
	defer timer.ObserveDuration()

	if userID == "" {
		return nil, fmt.Errorf("userID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", usersCollection)
	defer timer.ObserveDuration()

	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) FindByGoogleSubject(ctx context.Context, subject string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", usersCollection)
	defer timer.ObserveDuration()

	if subject == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"google_subject": subject}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by google subject: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) UpdateTwoFactor(ctx context.Context, userID, secret string, enabled bool) error {
	timer := utils.TrackDBOperation("update", usersCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": enabled,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update two-factor settings: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// EnsureSuperadmin upserts the superadmin account configured at startup
// so the platform always has exactly one credential-based admin.
func (r *UserRepo) EnsureSuperadmin(ctx context.Context, email, passwordHash string) error {
	if email == "" || passwordHash == "" {
		return fmt.Errorf("superadmin email and password hash are required")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role != model.RoleSuperadmin {
			return fmt.Errorf("superadmin email belongs to a %s account", existing.Role)
		}
		return nil
	}

	return r.CreateUser(ctx, &model.User{
		UserID:       utils.GenerateID(),
		Name:         "Superadmin",
		Email:        email,
		Role:         model.RoleSuperadmin,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
}
