package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, departmentID *string, isAdmin bool) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	sseTokenExpirationTime    string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, sseTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		sseTokenExpirationTime:    sseTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, departmentID *string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":       userID,
		"email":         email,
		"employee_id":   returnValueOrNil(employeeID),
		"department_id": returnValueOrNil(departmentID),
		"is_admin":      isAdmin,
		"type":          "access",
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateSSEToken issues a short-lived token carried in the stream
// query string, since EventSource cannot send Authorization headers.
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expDuration, err := time.ParseDuration(j.sseTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "sse",
		"exp":     expiresAt,
	})
	return tokenString, int(expDuration.Seconds()), err
}

func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid sse token: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", fmt.Errorf("failed to read sse token claims: %w", err)
	}

	if tokenType, ok := claims["type"].(string); !ok || tokenType != "sse" {
		return "", fmt.Errorf("token is not an sse token")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("sse token has no user_id")
	}
	return userID, nil
}

func returnValueOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
