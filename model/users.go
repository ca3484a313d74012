package model

import "time"

type User struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Role             Role      `bson:"role" json:"role"`
	PasswordHash     string    `bson:"password_hash,omitempty" json:"-"` // credential accounts only
	GoogleSubject    string    `bson:"google_subject,omitempty" json:"-"` // OAuth accounts only
	TwoFactorSecret  string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
