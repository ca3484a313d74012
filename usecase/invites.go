package usecase

import (
	"context"
	"fmt"
	"time"

	"codearena/model"
	"codearena/repository"
	"codearena/services"
	"codearena/utils"
)

// InviteService handles the onboarding flow for teachers: the superadmin
// issues a single-use token, the teacher redeems it for a professor
// account.
type InviteService struct {
	Invites   *repository.InviteRepo
	Users     *repository.UserRepo
	InviteTTL time.Duration
}

func (s *InviteService) CreateInvite(ctx context.Context, issuer *model.User, email string) (*model.Invite, error) {
	if issuer.Role != model.RoleSuperadmin {
		return nil, fmt.Errorf("only the superadmin issues invites: %w", ErrForbidden)
	}
	if email == "" {
		return nil, fmt.Errorf("invite email is required: %w", ErrValidation)
	}

	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("account for %s already exists: %w", email, ErrValidation)
	}

	now := time.Now()
	invite := &model.Invite{
		Token:     utils.GenerateID(),
		Email:     email,
		Role:      model.RoleProfessor,
		CreatedBy: issuer.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.InviteTTL),
	}
	if err := s.Invites.CreateInvite(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// Redeem burns the token and creates the professor account with the
// chosen password.
func (s *InviteService) Redeem(ctx context.Context, token, name, password string) (*model.User, error) {
	invite, err := s.Invites.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, fmt.Errorf("invite token: %w", ErrNotFound)
	}
	if invite.Used {
		return nil, fmt.Errorf("invite token already used: %w", ErrValidation)
	}
	if invite.Expired(time.Now()) {
		return nil, fmt.Errorf("invite token expired: %w", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}

	// Burn the token first; the conditional write makes redemption
	// single-shot when two requests race.
	if err := s.Invites.ConsumeInvite(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrValidation)
	}

	user := &model.User{
		UserID:       utils.GenerateID(),
		Name:         name,
		Email:        invite.Email,
		Role:         invite.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
