package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.New().String()
}

// GenerateSessionToken builds a session token from the user identity, a
// timestamp and a uuid so tokens never collide across logins.
func GenerateSessionToken(userID string) string {
	return fmt.Sprintf("%s.%d.%s", userID, time.Now().UnixNano(), uuid.New().String())
}

// GenerateJoinCode returns a short human-typable classroom code.
func GenerateJoinCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(alphabet[int(b)%len(alphabet)])
	}
	return sb.String(), nil
}
