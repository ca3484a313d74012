package model

import "time"

type Session struct {
	SessionToken   string    `bson:"session_token" json:"session_token"`
	UserID         string    `bson:"user_id" json:"user_id"`
	IPAddress      string    `bson:"ip_address" json:"ip_address"`
	UserAgent      string    `bson:"user_agent" json:"user_agent"`
	DeviceInfo     string    `bson:"device_info" json:"device_info"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	LastActivityAt time.Time `bson:"last_activity_at" json:"last_activity_at"`
}
