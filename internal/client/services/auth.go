// Package services contains the application services of the HealthKeeper
// client. This file implements credential and session management: account
// creation, password verification, and the single active session.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/osetrov/healthkeeper/internal/client/models"
	"github.com/osetrov/healthkeeper/internal/client/repositories/keystore"
	"github.com/osetrov/healthkeeper/internal/client/session"
	"github.com/osetrov/healthkeeper/internal/common"
	"github.com/osetrov/healthkeeper/internal/logging"
)

const (
	// credentialKeyPrefix + normalized email keys the stored credential.
	credentialKeyPrefix = "user_"
	// sessionKey holds the one active session for the process.
	sessionKey = "user_session"

	minPasswordLength = 6
	bcryptCost        = 12
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService manages credentials and the active session.
//
// Contract:
//   - SignUp: validate, hash, persist a credential. Never signs the user in.
//   - SignIn: verify the password and replace the active session.
//   - SignOut: drop the session; always succeeds, credential stays.
//   - CurrentUser: the session's user, or nil. A corrupted session record
//     reads as "no session", it never raises.
//   - ClearAllUserData: wipe every credential and the session (reset aid).
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
	IsSignedIn(ctx context.Context) bool
	ClearAllUserData(ctx context.Context) error
}

type authService struct {
	keys          keystore.Repository
	sessionSecret []byte
	log           logging.Logger

	// test seams
	nowFn    func() time.Time
	hashCost int
}

// NewAuthService constructs an AuthService over the local keyed store.
func NewAuthService(keys keystore.Repository, sessionSecret []byte, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{
		keys:          keys,
		sessionSecret: sessionSecret,
		log:           log,
		nowFn:         time.Now,
		hashCost:      bcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email; the result is the identity
// key everywhere in the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *authService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	if !emailRegexp.MatchString(strings.TrimSpace(email)) {
		return nil, fmt.Errorf("%w: please enter a valid email address", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long",
			common.ErrValidation, minPasswordLength)
	}

	normalized := NormalizeEmail(email)
	key := credentialKeyPrefix + normalized

	existing, err := a.keys.Get(ctx, keystore.NamespaceAuth, key)
	if err != nil {
		return nil, fmt.Errorf("checking existing credential: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", common.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{Email: normalized, CreatedAt: a.nowFn().UTC()}
	cred := models.Credential{User: user, HashedPassword: string(hash)}

	data, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("encoding credential: %w", err)
	}
	if err := a.keys.Set(ctx, keystore.NamespaceAuth, key, data); err != nil {
		return nil, fmt.Errorf("saving credential: %w", err)
	}

	a.log.Info(ctx, "account created", "user", normalized)
	return &user, nil
}

func (a *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	normalized := NormalizeEmail(email)

	data, err := a.keys.Get(ctx, keystore.NamespaceAuth, credentialKeyPrefix+normalized)
	if err != nil {
		return nil, fmt.Errorf("reading credential: %w", err)
	}
	if data == nil {
		// Same error as a bad password: no account enumeration.
		return nil, common.ErrInvalidCredentials
	}

	var cred models.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		a.log.Error(ctx, "corrupted credential record", "user", normalized, "err", err)
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.HashedPassword), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := session.Encode(cred.User, a.nowFn(), a.sessionSecret)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	// Overwrites any prior session: at most one per process.
	if err := a.keys.Set(ctx, keystore.NamespaceAuth, sessionKey, []byte(token)); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	a.log.Info(ctx, "signed in", "user", cred.User.Email)
	return &cred.User, nil
}

func (a *authService) SignOut(ctx context.Context) error {
	if err := a.keys.Delete(ctx, keystore.NamespaceAuth, sessionKey); err != nil {
		// Sign-out must not fail the caller; the worst case is a stale
		// session record that the next sign-in overwrites.
		a.log.Warn(ctx, "failed to delete session record", "err", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	data, err := a.keys.Get(ctx, keystore.NamespaceAuth, sessionKey)
	if err != nil {
		a.log.Warn(ctx, "failed to read session record", "err", err)
		return nil
	}
	if data == nil {
		return nil
	}

	user, _, err := session.Decode(string(data), a.sessionSecret)
	if err != nil {
		a.log.Warn(ctx, "unreadable session record, treating as signed out", "err", err)
		return nil
	}
	return user
}

func (a *authService) IsSignedIn(ctx context.Context) bool {
	return a.CurrentUser(ctx) != nil
}

func (a *authService) ClearAllUserData(ctx context.Context) error {
	if err := a.keys.Delete(ctx, keystore.NamespaceAuth, sessionKey); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if err := a.keys.DeletePrefix(ctx, keystore.NamespaceAuth, credentialKeyPrefix); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}
