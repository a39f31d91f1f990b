package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/mockdata"
	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/khula/internal/client/snapshot"
	"github.com/dmitrijs2005/khula/internal/cryptox"
	"github.com/dmitrijs2005/khula/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return v
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func newSeededStore(t *testing.T) *mockdata.Store {
	t.Helper()
	s := mockdata.New(cryptox.NewTokens([]byte("test-secret"), 0))
	s.Seed()
	return s
}

func ptr[T any](v T) *T { return &v }

// signedToken signs a session token the way newSeededStore's issuer does,
// with an explicit expiry.
func signedToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	claims := cryptox.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(exp),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

// ---- fakes ----

// fakeRemote implements client.Remote for unit tests.
type fakeRemote struct {
	MeRet  models.Profile
	MeErr  error
	MeCall int

	RefreshRet     string
	RefreshErr     error
	LastRefreshArg string

	ChangeErr error
	ResetErr  error
	ReqErr    error
}

func (f *fakeRemote) Me(_ context.Context, _ string) (models.Profile, error) {
	f.MeCall++
	return f.MeRet, f.MeErr
}

func (f *fakeRemote) RefreshToken(_ context.Context, rt string) (string, error) {
	f.LastRefreshArg = rt
	return f.RefreshRet, f.RefreshErr
}

func (f *fakeRemote) ChangePassword(context.Context, string, string, string) error {
	return f.ChangeErr
}

func (f *fakeRemote) RequestPasswordReset(context.Context, string) error { return f.ReqErr }

func (f *fakeRemote) ResetPassword(context.Context, string, string) error { return f.ResetErr }

// brokenRepo fails every storage call.
type brokenRepo struct{ err error }

func (b brokenRepo) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenRepo) Set(context.Context, string, []byte) error { return b.err }
func (b brokenRepo) SetMany(context.Context, map[string][]byte) error { return b.err }
func (b brokenRepo) Delete(context.Context, string) error { return b.err }
func (b brokenRepo) List(context.Context) (map[string][]byte, error) { return nil, b.err }
func (b brokenRepo) Clear(context.Context) error { return b.err }

var _ metadata.Repository = brokenRepo{}

// fixture bundles a fully wired service graph over an in-memory database.
type fixture struct {
	db      *sql.DB
	store   *mockdata.Store
	repo    metadata.Repository
	remote  *fakeRemote
	auth    AuthService
	appData AppDataService
}

func newFixture(t *testing.T, opts AuthOptions) *fixture {
	t.Helper()
	db := setupDB(t)
	return newFixtureWithRepo(t, db, metadata.NewSQLiteRepository(db), opts)
}

func newFixtureWithRepo(t *testing.T, db *sql.DB, repo metadata.Repository, opts AuthOptions) *fixture {
	t.Helper()
	store := newSeededStore(t)
	log := logging.Nop()
	snap := snapshot.NewBridge(store, repo, log)
	remote := &fakeRemote{MeErr: errors.New("offline")}
	return &fixture{
		db:      db,
		store:   store,
		repo:    repo,
		remote:  remote,
		auth:    NewAuthService(store, repo, remote, snap, log, opts),
		appData: NewAppDataService(store, snap, log),
	}
}
