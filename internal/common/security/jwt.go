package security

import (
	"errors"
	"time"

	"hacktrack/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleTeam  = "team"
	RoleAdmin = "admin"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateTeamToken issues a session token bound to one team. A team
// token can only read and mutate that team's own records.
func GenerateTeamToken(teamID int64) (string, error) {
	return generateToken(jwt.MapClaims{
		"role":    RoleTeam,
		"team_id": float64(teamID),
	})
}

// GenerateAdminToken issues a reviewer session token. There is no
// per-admin identity; the role claim alone carries the capability.
func GenerateAdminToken() (string, error) {
	return generateToken(jwt.MapClaims{
		"role": RoleAdmin,
	})
}

func generateToken(claims jwt.MapClaims) (string, error) {
	claims["jti"] = uuid.NewString()
	claims["exp"] = time.Now().Add(config.AppConfig.JWTExp).Unix()
	claims["iat"] = time.Now().Unix()
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

// GetTeamIDFromClaims extracts the team id from a team session token.
// JSON numbers decode as float64, hence the conversion.
func GetTeamIDFromClaims(claims map[string]interface{}) (int64, error) {
	id, ok := claims["team_id"].(float64)
	if !ok {
		return 0, errors.New("team_id claim is missing or not a number")
	}
	return int64(id), nil
}
