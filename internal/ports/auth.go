package ports

import "context"

// AuthProvider resolves the signed-in user for a request.
type AuthProvider interface {
	// CurrentUserID returns the user id, or ok=false when nobody is signed in.
	CurrentUserID(ctx context.Context) (userID string, ok bool)
}

type userIDKey struct{}

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// ContextAuth is the AuthProvider backed by WithUserID. The HTTP auth
// middleware populates the context; background jobs set it explicitly.
type ContextAuth struct{}

// CurrentUserID implements AuthProvider.
func (ContextAuth) CurrentUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// StaticAuth always reports the same user. An empty value means signed out.
type StaticAuth string

// CurrentUserID implements AuthProvider.
func (s StaticAuth) CurrentUserID(context.Context) (string, bool) {
	return string(s), s != ""
}
