package utils

import (
	"log"
	"time"
)

var (
	JWTSecretKey      string
	JWTExpiration     time.Duration
	RefreshExpiration time.Duration
)

func InitJWT(secret string, accessTTL, refreshTTL time.Duration) {
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	JWTSecretKey = secret
	JWTExpiration = accessTTL
	RefreshExpiration = refreshTTL
}
