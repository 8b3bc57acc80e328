package services

import (
	"context"
	"testing"

	"art-contest/internal/apperr"
	"art-contest/internal/auth"
	"art-contest/internal/models"
	"art-contest/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repo)
	ctx := context.Background()

	session, err := svc.Signup(ctx, SignupInput{Email: "Painter@Example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "painter@example.com", session.Profile.Email)
	assert.Equal(t, "painter", session.Profile.Username)
	assert.Equal(t, models.RoleUser, session.Profile.Role)

	claims, err := auth.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Profile.ID, claims.UserID)

	login, err := svc.Login(ctx, "painter@example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, session.Profile.ID, login.Profile.ID)

	_, err = svc.Login(ctx, "painter@example.com", "wrong-password")
	requireKind(t, err, apperr.Unauthenticated)

	_, err = svc.Login(ctx, "nobody@example.com", "longenough")
	requireKind(t, err, apperr.Unauthenticated)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repo)
	ctx := context.Background()
	testutil.CreateProfile(t, env.db, "taken", "")

	_, err := svc.Signup(ctx, SignupInput{Email: "a@example.com", Password: "short"})
	requireKind(t, err, apperr.BadRequest)

	_, err = svc.Signup(ctx, SignupInput{Email: "taken@example.com", Password: "longenough"})
	requireKind(t, err, apperr.BadRequest)

	_, err = svc.Signup(ctx, SignupInput{Email: "new@example.com", Password: "longenough", Username: "taken"})
	requireKind(t, err, apperr.BadRequest)

	// the derived username collides, so a generated one is used
	session, err := svc.Signup(ctx, SignupInput{Email: "taken@other.org", Password: "longenough"})
	require.NoError(t, err)
	assert.NotEqual(t, "taken", session.Profile.Username)
	assert.NotEmpty(t, session.Profile.Username)
}
