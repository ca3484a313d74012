package model

import "time"

// Invite is a single-use token that lets a teacher create a professor
// account. Only the superadmin issues them.
type Invite struct {
	Token     string    `bson:"token" json:"token"`
	Email     string    `bson:"email" json:"email"`
	Role      Role      `bson:"role" json:"role"`
	CreatedBy string    `bson:"created_by" json:"created_by"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Used      bool      `bson:"used" json:"used"`
	UsedAt    *time.Time `bson:"used_at,omitempty" json:"used_at,omitempty"`
}

func (i *Invite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
