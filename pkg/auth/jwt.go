package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MohamedTawfiq30/dmorder/config"
)

// Claims holds the typed JWT payload for a seller session.
type Claims struct {
	OwnerID string `json:"owner_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT for the given seller.
func GenerateToken(ownerID, email string) (string, error) {
	claims := Claims{
		OwnerID: ownerID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ctxKey stores the authenticated seller's claims in the request context.
// Protected handlers read the owner identity from here instead of any
// process-wide session state.
type ctxKey struct{}

// WithClaims stores the validated claims in ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromCtx returns the claims stored by the auth middleware, or nil.
func FromCtx(ctx context.Context) *Claims {
	if c, ok := ctx.Value(ctxKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// OwnerID returns the authenticated seller's subject identifier, or "".
func OwnerID(ctx context.Context) string {
	if c := FromCtx(ctx); c != nil {
		return c.OwnerID
	}
	return ""
}
