package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"creditdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid login token")
	ErrTokenExpired = errors.New("token expired")
)

// SignToken issues an HS256 bearer token for the given subject. The server
// only verifies tokens; signing exists for the identity service boundary and
// for tests.
func SignToken(id, name string, role models.Role) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}

	duration := 24 * time.Hour
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXP_HOURS")); err == nil && hours > 0 {
		duration = time.Duration(hours) * time.Hour
	}

	claims := jwt.MapClaims{
		"id":   id,
		"role": string(role),
		"exp":  time.Now().Add(duration).Unix(),
		"iat":  time.Now().Unix(),
	}
	if name != "" {
		claims["name"] = name
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ResolveToken verifies the token signature and validity window and decodes
// the identity it carries. Callers must treat any failure as "no session".
func ResolveToken(tokenString string) (models.Identity, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	parsedToken, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return models.Identity{}, ErrTokenInvalid
	}

	return identityFromClaims(claims)
}

// DecodeToken parses the payload without verifying the signature, the way a
// browser client decodes its own stored token for display. Never use it to
// authorize anything.
func DecodeToken(tokenString string) (models.Identity, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return identityFromClaims(claims)
}

func identityFromClaims(claims jwt.MapClaims) (models.Identity, error) {
	id, _ := claims["id"].(string)
	roleStr, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	role := models.Role(roleStr)
	if id == "" || !role.Valid() {
		return models.Identity{}, ErrTokenInvalid
	}

	return models.Identity{ID: id, Role: role, Name: name}, nil
}
