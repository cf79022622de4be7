package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/common"
)

func TestSignUp_Validation(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password1"},
		{"empty password", "a@b.cd", ""},
		{"malformed email", "not-an-email", "password1"},
		{"email with spaces", "a b@c.de", "password1"},
		{"short password", "a@b.cd", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.auth.SignUp(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestSignUp_DuplicateEmailRejected(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	_, err := e.auth.SignUp(ctx, "a@b.cd", "password1")
	require.NoError(t, err)

	// Same address in different case counts as the same account.
	_, err = e.auth.SignUp(ctx, "A@B.CD", "password2")
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestSignUp_DoesNotSignIn(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	_, err := e.auth.SignUp(ctx, "a@b.cd", "password1")
	require.NoError(t, err)

	require.Nil(t, e.auth.CurrentUser(ctx))
	require.False(t, e.auth.IsSignedIn(ctx))
}

func TestSignIn_EstablishesSession(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	created, err := e.auth.SignUp(ctx, "  A@B.CD ", "password1")
	require.NoError(t, err)
	require.Equal(t, "a@b.cd", created.Email)

	user, err := e.auth.SignIn(ctx, "a@b.cd", "password1")
	require.NoError(t, err)
	require.Equal(t, "a@b.cd", user.Email)

	current := e.auth.CurrentUser(ctx)
	require.NotNil(t, current)
	require.Equal(t, "a@b.cd", current.Email)
	require.True(t, created.CreatedAt.Equal(current.CreatedAt))
}

func TestSignIn_WrongPasswordAndUnknownEmailLookTheSame(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	_, err := e.auth.SignUp(ctx, "a@b.cd", "password1")
	require.NoError(t, err)

	_, errWrongPassword := e.auth.SignIn(ctx, "a@b.cd", "nope-nope")
	_, errUnknownEmail := e.auth.SignIn(ctx, "ghost@b.cd", "password1")

	require.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknownEmail, common.ErrInvalidCredentials)
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestSignIn_ReplacesPriorSession(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	e.signIn(t, "first@b.cd")
	e.signIn(t, "second@b.cd")

	current := e.auth.CurrentUser(ctx)
	require.NotNil(t, current)
	require.Equal(t, "second@b.cd", current.Email)
}

func TestSignOut_IsIdempotentAndKeepsCredential(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	e.signIn(t, "a@b.cd")

	require.NoError(t, e.auth.SignOut(ctx))
	require.Nil(t, e.auth.CurrentUser(ctx))

	// Signing out again is a no-op, not an error.
	require.NoError(t, e.auth.SignOut(ctx))

	// The credential survives sign-out.
	_, err := e.auth.SignIn(ctx, "a@b.cd", "password1")
	require.NoError(t, err)
}

func TestCurrentUser_CorruptedSessionReadsAsSignedOut(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	e.signIn(t, "a@b.cd")

	require.NoError(t, e.keys.Set(ctx, keystore.NamespaceAuth, sessionKey, []byte("garbage")))

	require.Nil(t, e.auth.CurrentUser(ctx))
	require.False(t, e.auth.IsSignedIn(ctx))
}

func TestClearAllUserData_WipesCredentialsAndSession(t *testing.T) {
	e := setupEnv(t)
	ctx := context.Background()

	e.signIn(t, "a@b.cd")

	require.NoError(t, e.auth.ClearAllUserData(ctx))

	require.Nil(t, e.auth.CurrentUser(ctx))
	_, err := e.auth.SignIn(ctx, "a@b.cd", "password1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}
