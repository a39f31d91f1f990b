// Package services contains the application services of the Khula client.
// This file defines the authentication service: login, register, logout and
// profile updates against the mock store, with the session token and profile
// mirrored to durable storage.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/client"
	"github.com/dmitrijs2005/khula/internal/client/mockdata"
	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/khula/internal/client/snapshot"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/cryptox"
	"github.com/dmitrijs2005/khula/internal/logging"
	"github.com/dmitrijs2005/khula/internal/timex"
)

// AuthState is the observable state of the auth service.
type AuthState int

const (
	StateAnonymous AuthState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: start a session in the store and persist the token
//     and profile. Unknown email and wrong password fail the same way.
//   - Logout: always ends the session locally; safe to call repeatedly.
//   - UpdateProfile: merge fields into the session user's profile.
//   - CurrentUser: the remote profile when reachable, else the stored one.
//   - RefreshToken, ChangePassword, RequestPasswordReset, ResetPassword:
//     backend calls that report success as a bool.
//
// Storage failures never fail an operation; they are logged.
// Simulated latency honours context cancellation.
type AuthService interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.Profile, error)
	CurrentUser(ctx context.Context) (models.Profile, bool)
	IsAuthenticated() bool
	Token() string
	State() AuthState

	RefreshToken(ctx context.Context) bool
	ChangePassword(ctx context.Context, currentPassword, newPassword string) bool
	RequestPasswordReset(ctx context.Context, email string) bool
	ResetPassword(ctx context.Context, resetToken, newPassword string) bool
}

// AuthOptions tunes the auth service.
type AuthOptions struct {
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	ProfileDelay  time.Duration

	// HashPasswords stores new passwords as bcrypt hashes and verifies
	// stored passwords as hashes. Otherwise passwords are kept as entered.
	HashPasswords bool
	BcryptCost    int
}

// DefaultAuthOptions mirrors the latency of the hosted backend.
func DefaultAuthOptions() AuthOptions {
	return AuthOptions{
		LoginDelay:    time.Second,
		RegisterDelay: 1500 * time.Millisecond,
		ProfileDelay:  800 * time.Millisecond,
	}
}

type authService struct {
	store    *mockdata.Store
	repo     metadata.Repository
	remote   client.Remote
	snapshot *snapshot.Bridge
	log      logging.Logger
	opts     AuthOptions

	mu    sync.Mutex
	token string
	state AuthState

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the auth service. snap may be nil to disable snapshots.
func NewAuthService(store *mockdata.Store, repo metadata.Repository, remote client.Remote,
	snap *snapshot.Bridge, log logging.Logger, opts AuthOptions) AuthService {
	if remote == nil {
		remote = client.NewOffline()
	}
	return &authService{
		store:    store,
		repo:     repo,
		remote:   remote,
		snapshot: snap,
		log:      log.With("service", "auth"),
		opts:     opts,
	}
}

// Initialize loads the token saved by a previous run. Storage errors are
// logged and leave the service anonymous. An expired or foreign token, either
// stored or carried by a restored session, ends the session.
func (a *authService) Initialize(ctx context.Context) {
	if t := a.store.CurrentToken(); t != "" && !a.tokenValid(ctx, t) {
		a.Logout(ctx)
		return
	}

	v, err := a.repo.Get(ctx, common.StorageKeyAuthToken)
	if err != nil {
		a.log.Error(ctx, "failed to initialize auth service", "error", err)
		return
	}
	if len(v) == 0 {
		return
	}
	if !a.tokenValid(ctx, string(v)) {
		a.Logout(ctx)
		return
	}
	a.setToken(string(v))
	a.log.Debug(ctx, "stored token loaded")
}

func (a *authService) tokenValid(ctx context.Context, token string) bool {
	_, err := a.store.TokenSubject(token)
	if errors.Is(err, common.ErrInvalidToken) {
		a.log.Info(ctx, "stored session rejected", "error", err)
		return false
	}
	return err == nil
}

func (a *authService) setToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
	if token == "" {
		a.state = StateAnonymous
	} else {
		a.state = StateAuthenticated
	}
}

func (a *authService) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *authService) IsAuthenticated() bool {
	return a.Token() != ""
}

func (a *authService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// begin marks the service as authenticating; the returned func settles the
// state again from the token.
func (a *authService) begin() func() {
	a.mu.Lock()
	a.state = StateAuthenticating
	a.mu.Unlock()
	return func() { a.setToken(a.Token()) }
}

func wait(ctx context.Context, d time.Duration) error {
	if !timex.Sleep(ctx.Done(), d) {
		return ctx.Err()
	}
	return nil
}

func (a *authService) checkPassword(u models.User, found bool, password string) bool {
	if !a.opts.HashPasswords {
		return found && cryptox.EqualPlain(u.Password, password)
	}
	if !found {
		// spend the same bcrypt time as for an existing account
		a.dummyOnce.Do(func() {
			a.dummyHash, _ = cryptox.HashPassword("khula-dummy-password", a.opts.BcryptCost)
		})
		_ = cryptox.CheckPassword(password, a.dummyHash)
		return false
	}
	return cryptox.CheckPassword(password, u.Password)
}

// Login starts a session for the account with the given credentials.
func (a *authService) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	defer a.begin()()

	if err := wait(ctx, a.opts.LoginDelay); err != nil {
		return nil, err
	}

	if email == "" || password == "" {
		return nil, common.ErrCredentialsRequired
	}

	u, found := a.store.FindUserByEmail(email)
	if !a.checkPassword(u, found, password) {
		a.log.Info(ctx, "login rejected", "email", email)
		return nil, common.ErrInvalidCredentials
	}

	res, err := a.startSession(ctx, u)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "login succeeded", "email", u.Email)
	return res, nil
}

// Register creates an account with empty names and starts its session.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	defer a.begin()()

	if err := wait(ctx, a.opts.RegisterDelay); err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		return nil, common.ErrEmailRequired
	}
	if _, exists := a.store.FindUserByEmail(email); exists {
		return nil, common.ErrEmailExists
	}

	password := req.Password
	if a.opts.HashPasswords {
		h, err := cryptox.HashPassword(password, a.opts.BcryptCost)
		if err != nil {
			return nil, err
		}
		password = h
	}

	u := models.User{
		Email:    email,
		Password: password,
		Profile:  models.Profile{Email: email, IsLoggedIn: true},
	}
	a.store.AddUser(u)

	res, err := a.startSession(ctx, u)
	if err != nil {
		return nil, err
	}
	a.log.Info(ctx, "user registered", "email", u.Email)
	return res, nil
}

func (a *authService) startSession(ctx context.Context, u models.User) (*models.AuthResult, error) {
	token, err := a.store.GenerateToken(u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	a.setToken(token)
	a.persistSession(ctx, token, u.Profile)
	a.store.SetCurrentUser(u, token)
	_ = a.snapshot.Save(ctx)

	return &models.AuthResult{Profile: u.Profile, Token: token}, nil
}

func (a *authService) persistSession(ctx context.Context, token string, p models.Profile) {
	profile, err := json.Marshal(p)
	if err != nil {
		a.log.Error(ctx, "failed to encode user profile", "error", err)
		return
	}
	err = a.repo.SetMany(ctx, map[string][]byte{
		common.StorageKeyAuthToken:   []byte(token),
		common.StorageKeyUserProfile: profile,
	})
	if err != nil {
		a.log.Error(ctx, "failed to save session", "error", err)
	}
}

func (a *authService) saveProfile(ctx context.Context, p models.Profile) {
	b, err := json.Marshal(p)
	if err != nil {
		a.log.Error(ctx, "failed to encode user profile", "error", err)
		return
	}
	if err := a.repo.Set(ctx, common.StorageKeyUserProfile, b); err != nil {
		a.log.Error(ctx, "failed to save user profile", "error", err)
	}
}

func (a *authService) storedProfile(ctx context.Context) (models.Profile, bool) {
	b, err := a.repo.Get(ctx, common.StorageKeyUserProfile)
	if err != nil {
		a.log.Error(ctx, "failed to get user profile", "error", err)
		return models.Profile{}, false
	}
	if len(b) == 0 {
		return models.Profile{}, false
	}
	var p models.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		a.log.Error(ctx, "stored user profile is unreadable", "error", err)
		return models.Profile{}, false
	}
	return p, true
}

// Logout ends the session. Every step runs even if an earlier one failed.
func (a *authService) Logout(ctx context.Context) {
	a.store.ClearSession()
	a.setToken("")

	if err := a.repo.Delete(ctx, common.StorageKeyAuthToken); err != nil {
		a.log.Error(ctx, "failed to clear token", "error", err)
	}
	if err := a.repo.Delete(ctx, common.StorageKeyUserProfile); err != nil {
		a.log.Error(ctx, "failed to clear user profile", "error", err)
	}
	_ = a.snapshot.Save(ctx)
	a.log.Info(ctx, "logged out")
}

// UpdateProfile merges upd into the session user's profile and returns the
// result.
func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.Profile, error) {
	if err := wait(ctx, a.opts.ProfileDelay); err != nil {
		return models.Profile{}, err
	}

	cur, ok := a.store.CurrentUser()
	if !ok {
		return models.Profile{}, common.ErrNoSession
	}
	if !a.store.UpdateUser(cur.Email, upd) {
		return models.Profile{}, fmt.Errorf("update profile of %s: %w", cur.Email, common.ErrorNotFound)
	}
	u, ok := a.store.FindUserByEmail(cur.Email)
	if !ok {
		return models.Profile{}, fmt.Errorf("reload profile of %s: %w", cur.Email, common.ErrorNotFound)
	}

	a.saveProfile(ctx, u.Profile)
	_ = a.snapshot.Save(ctx)
	a.log.Info(ctx, "profile updated", "email", u.Email)
	return u.Profile, nil
}

// CurrentUser asks the backend for the profile and caches it; when the
// backend is unreachable the stored profile is used, then the session.
func (a *authService) CurrentUser(ctx context.Context) (models.Profile, bool) {
	token := a.Token()
	if token == "" {
		return models.Profile{}, false
	}

	p, err := a.remote.Me(ctx, token)
	if err == nil {
		a.saveProfile(ctx, p)
		return p, true
	}
	a.log.Warn(ctx, "failed to fetch current user, using stored profile", "error", err)

	if p, ok := a.storedProfile(ctx); ok {
		return p, true
	}
	if u, ok := a.store.CurrentUser(); ok {
		return u.Profile, true
	}
	return models.Profile{}, false
}

// RefreshToken swaps the stored refresh token for a new session token.
func (a *authService) RefreshToken(ctx context.Context) bool {
	rt, err := a.repo.Get(ctx, common.StorageKeyRefreshToken)
	if err != nil {
		a.log.Error(ctx, "token refresh error", "error", err)
		return false
	}
	if len(rt) == 0 {
		return false
	}

	token, err := a.remote.RefreshToken(ctx, string(rt))
	if err != nil {
		a.log.Error(ctx, "token refresh error", "error", err)
		return false
	}

	a.setToken(token)
	if err := a.repo.Set(ctx, common.StorageKeyAuthToken, []byte(token)); err != nil {
		a.log.Error(ctx, "failed to save token", "error", err)
	}
	return true
}

func (a *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) bool {
	if err := a.remote.ChangePassword(ctx, a.Token(), currentPassword, newPassword); err != nil {
		a.log.Error(ctx, "password change error", "error", err)
		return false
	}
	return true
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) bool {
	if err := a.remote.RequestPasswordReset(ctx, email); err != nil {
		a.log.Error(ctx, "password reset request error", "error", err)
		return false
	}
	return true
}

func (a *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) bool {
	if err := a.remote.ResetPassword(ctx, resetToken, newPassword); err != nil {
		a.log.Error(ctx, "password reset error", "error", err)
		return false
	}
	return true
}

// UserMessage turns a service error into the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, common.ErrCredentialsRequired):
		return "Email and password are required"
	case errors.Is(err, common.ErrEmailRequired):
		return "Email is required"
	case errors.Is(err, common.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, common.ErrNoSession):
		return "No user session found"
	case errors.Is(err, common.ErrorNotFound):
		return "Nothing found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled"
	default:
		return "Network error occurred"
	}
}
