package token

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	tok, err := GenerateAccessToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	id, err := UserID(claims)
	if err != nil || id != 42 {
		t.Errorf("UserID() = %d, %v", id, err)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	secret := []byte("secret")
	expired, _ := GenerateAccessToken(1, secret, -time.Minute)
	valid, _ := GenerateAccessToken(1, secret, time.Hour)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "expired", token: expired, secret: secret},
		{name: "wrong secret", token: valid, secret: []byte("other")},
		{name: "garbage", token: "not-a-jwt", secret: secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.token, tt.secret); err == nil {
				t.Error("VerifyToken() accepted a bad token")
			}
		})
	}
}
