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

const invitesCollection = "invites"

type InviteRepo struct {
	MongoCollection *mongo.Collection
}

func GetInviteRepo(db *mongo.Database) *InviteRepo {
	return &InviteRepo{MongoCollection: db.Collection(invitesCollection)}
}

func (r *InviteRepo) CreateInvite(ctx context.Context, invite *model.Invite) error {
	timer := utils.TrackDBOperation("insert", invitesCollection)
	defer timer.ObserveDuration()

	if invite == nil {
		return fmt.Errorf("invite cannot be nil")
	}
	if invite.Token == "" || invite.Email == "" {
		return fmt.Errorf("invalid invite data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, invite); err != nil {
		utils.TrackError("database", "invite_creation_failed")
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) FindByToken(ctx context.Context, token string) (*model.Invite, error) {
	timer := utils.TrackDBOperation("find", invitesCollection)
	defer timer.ObserveDuration()

	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var invite model.Invite
	err := r.MongoCollection.FindOne(ctx, bson.M{"token": token}).Decode(&invite)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}
	return &invite, nil
}

// ConsumeInvite burns an invite token. The conditional filter on "used"
// makes redemption single-shot even when two requests race.
func (r *InviteRepo) ConsumeInvite(ctx context.Context, token string) error {
	timer := utils.TrackDBOperation("update", invitesCollection)
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"token": token, "used": false},
		bson.M{"$set": bson.M{"used": true, "used_at": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to consume invite: %w", err)
	}
	if result.ModifiedCount == 0 {
		return fmt.Errorf("invite already used or not found")
	}
	return nil
}
