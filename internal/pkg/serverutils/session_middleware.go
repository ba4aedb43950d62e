package serverutils

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookieName = "docchat_session"

// SessionMiddleware resolves the caller's session from a signed cookie,
// minting a fresh session id when none is present or the cookie fails
// verification. The session id lands in ctx.Locals("session_id").
func SessionMiddleware(ctx *fiber.Ctx) error {
	secret := []byte(os.Getenv("JWT_SECRET"))

	if cookie := ctx.Cookies(sessionCookieName); cookie != "" {
		token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sid, ok := claims["session_id"].(string); ok && sid != "" {
					ctx.Locals("session_id", sid)
					return ctx.Next()
				}
			}
		}
		// Tampered or expired cookie falls through to a new session.
	}

	sessionID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session_id": sessionID,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to issue session")
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	ctx.Locals("session_id", sessionID)
	return ctx.Next()
}
