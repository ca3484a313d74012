package services

import (
	"errors"
	"fmt"
	"time"

	"codearena/model"
	"codearena/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "codearena"

// GenerateToken issues a short-lived access token carrying the user id
// and role.
func GenerateToken(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(utils.JWTExpiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// GenerateRefreshToken issues a long-lived token usable only at the
// refresh endpoint.
func GenerateRefreshToken(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"type":    "refresh",
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(utils.RefreshExpiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if iss, _ := claims["iss"].(string); iss != tokenIssuer {
		return nil, errors.New("invalid token issuer")
	}
	return claims, nil
}

// ValidateAccessToken returns the user id and role from a valid access
// token. Refresh tokens are rejected here.
func ValidateAccessToken(tokenString string) (string, model.Role, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return "", "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType == "refresh" {
		return "", "", errors.New("invalid token type")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", "", errors.New("missing user id in token")
	}
	role, err := model.ParseRole(fmt.Sprint(claims["role"]))
	if err != nil {
		return "", "", err
	}
	return userID, role, nil
}

// ValidateRefreshToken returns the user id and role from a valid refresh
// token.
func ValidateRefreshToken(tokenString string) (string, model.Role, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return "", "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", "", errors.New("invalid token type")
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", "", errors.New("missing user id in token")
	}
	role, err := model.ParseRole(fmt.Sprint(claims["role"]))
	if err != nil {
		return "", "", err
	}
	return userID, role, nil
}
