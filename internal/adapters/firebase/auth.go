package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// IDTokenVerifier is the part of *auth.Client the verifier needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// TokenVerifier resolves Firebase ID tokens to user ids.
type TokenVerifier struct {
	client IDTokenVerifier
}

// NewTokenVerifier wraps an auth client.
func NewTokenVerifier(client IDTokenVerifier) *TokenVerifier {
	return &TokenVerifier{client: client}
}

// VerifyToken returns the uid of a valid token.
func (v *TokenVerifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", domain.NewUnauthenticatedError("verify token")
	}

	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.NewUnauthenticatedError("verify token"), err)
	}

	if tok.UID == "" {
		return "", domain.NewUnauthenticatedError("verify token")
	}

	return tok.UID, nil
}
