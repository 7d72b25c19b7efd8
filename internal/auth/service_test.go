package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

type authConfigStub struct{}

func (authConfigStub) GetJWTAccessSecret() string       { return "test-secret" }
func (authConfigStub) GetAccessTokenTTL() time.Duration { return time.Hour }

func TestSignAccessTokenClaims(t *testing.T) {
	svc := NewService(nil, nil, authConfigStub{}, logger.New("test"))
	user := User{ID: uuid.New(), Email: "ada@example.com"}

	signed, err := svc.signAccessToken(user)
	if err != nil {
		t.Fatalf("signAccessToken: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims type %T", parsed.Claims)
	}
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["email"] != "ada@example.com" {
		t.Errorf("email = %v", claims["email"])
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expiration: %v", err)
	}
	if remaining := time.Until(exp.Time); remaining < 55*time.Minute || remaining > 65*time.Minute {
		t.Errorf("token TTL %v, want about an hour", remaining)
	}
}
