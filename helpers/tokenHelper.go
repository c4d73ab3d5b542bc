package helpers

import (
	"fmt"
	"strconv"
	"time"

	"event-portal/models"

	"github.com/dgrijalva/jwt-go"
)

// SignedDetails are the claims of the portal session token. The platform's
// own access token never goes to the browser; only the session id does.
type SignedDetails struct {
	SessionID string
	Uid       string
	User_role string
	jwt.StandardClaims
}

func GenerateSessionToken(secret, sessionID string, userID int, role models.Role, expiresAt time.Time) (signedToken string, err error) {
	uid := ""
	if userID > 0 {
		uid = strconv.Itoa(userID)
	}
	claim := SignedDetails{
		SessionID: sessionID,
		Uid:       uid,
		User_role: string(role),
		StandardClaims: jwt.StandardClaims{
			Id:        sessionID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	signedToken, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signedToken, nil
}

func ValidateToken(secret, signedToken string) (claim *SignedDetails, msg string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		msg = err.Error()
		return
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		msg = "the token is invalid"
		return
	}
	if claims.ExpiresAt < time.Now().Unix() {
		msg = "token is expired"
		return
	}
	if claims.SessionID == "" {
		msg = "token carries no session"
		return
	}
	return claims, msg
}
