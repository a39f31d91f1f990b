// Package mockdata is the in-memory source of truth for accounts, documents,
// applications and the single active session. Lookups that miss return
// false or nil; nothing here fails on a not-found.
package mockdata

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/cryptox"
	"github.com/google/uuid"
)

// Summary is a quick count of what the store holds.
type Summary struct {
	TotalUsers        int    `json:"totalUsers"`
	TotalDocuments    int    `json:"totalDocuments"`
	TotalApplications int    `json:"totalApplications"`
	CurrentUser       string `json:"currentUser,omitempty"`
	HasActiveSession  bool   `json:"hasActiveSession"`
}

// session is the one active (user, token) pair. The user is tracked by
// email so profile updates show through; fallback covers a session user
// that is not in the user list.
type session struct {
	email    string
	fallback models.User
	token    string
}

// Store holds all data in memory. It is safe for concurrent use, although
// the client drives it from a single goroutine.
type Store struct {
	mu           sync.RWMutex
	users        []models.User
	documents    []models.Document
	applications []models.Application
	session      *session

	tokens *cryptox.Tokens
	now    func() time.Time
}

// New returns an empty store that issues session tokens with tokens.
func New(tokens *cryptox.Tokens) *Store {
	if tokens == nil {
		tokens = cryptox.NewTokens(nil, 0)
	}
	return &Store{tokens: tokens, now: time.Now}
}

func (s *Store) findUser(email string) int {
	for i := range s.users {
		if models.SameEmail(s.users[i].Email, email) {
			return i
		}
	}
	return -1
}

// FindUserByEmail looks a user up ignoring case.
func (s *Store) FindUserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findUser(email)
	if i < 0 {
		return models.User{}, false
	}
	return s.users[i], true
}

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User(nil), s.users...)
}

// AddUser appends u. Duplicate emails are not rejected here.
func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

// UpdateUser merges upd into the profile of the first user matching email.
func (s *Store) UpdateUser(email string, upd models.ProfileUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findUser(email)
	if i < 0 {
		return false
	}
	s.users[i].Profile = upd.Apply(s.users[i].Profile)
	return true
}

// SetCurrentUser replaces the active session.
func (s *Store) SetCurrentUser(u models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session{email: u.Email, fallback: u, token: token}
}

// CurrentUser returns the session user with its latest profile.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser()
}

func (s *Store) currentUser() (models.User, bool) {
	if s.session == nil {
		return models.User{}, false
	}
	if i := s.findUser(s.session.email); i >= 0 {
		return s.users[i], true
	}
	return s.session.fallback, true
}

// CurrentToken returns the session token, or "" without a session.
func (s *Store) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.token
}

func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// DocumentsByUserID lists the documents owned by userID in insertion order.
func (s *Store) DocumentsByUserID(userID string) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Document
	for _, d := range s.documents {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) DocumentByID(id string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.findDocument(id); i >= 0 {
		return s.documents[i], true
	}
	return models.Document{}, false
}

func (s *Store) findDocument(id string) int {
	for i := range s.documents {
		if s.documents[i].ID == id {
			return i
		}
	}
	return -1
}

// AddDocument appends d as given. The type is not checked.
func (s *Store) AddDocument(d models.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, d)
}

// UpdateDocumentStatus sets the status of document id. Notes replace the
// previous review notes only when non-empty.
func (s *Store) UpdateDocumentStatus(id string, status models.DocumentStatus, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findDocument(id)
	if i < 0 {
		return false
	}
	s.documents[i].Status = status
	if notes != "" {
		s.documents[i].ReviewNotes = notes
	}
	return true
}

// RemoveDocument deletes the first document with id.
func (s *Store) RemoveDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findDocument(id)
	if i < 0 {
		return false
	}
	s.documents = append(s.documents[:i], s.documents[i+1:]...)
	return true
}

// ApplicationByUserID returns the first application of userID.
func (s *Store) ApplicationByUserID(userID string) (models.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.applications {
		if a.UserID == userID {
			return a.Clone(), true
		}
	}
	return models.Application{}, false
}

// CreateApplication always adds a new draft, even when userID already has one.
func (s *Store) CreateApplication(userID string) models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := models.Application{
		ID:     "app_" + uuid.NewString(),
		UserID: userID,
		Status: models.ApplicationDraft,
	}
	s.applications = append(s.applications, a)
	return a
}

// UpdateApplicationStatus moves application id to status. Any transition is
// allowed. Submitting stamps SubmittedAt; review statuses stamp ReviewedAt.
func (s *Store) UpdateApplicationStatus(id string, status models.ApplicationStatus, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.applications {
		a := &s.applications[i]
		if a.ID != id {
			continue
		}
		a.Status = status
		now := s.now().UTC()
		switch {
		case status == models.ApplicationSubmitted:
			a.SubmittedAt = &now
		case status.IsReview():
			a.ReviewedAt = &now
		}
		if notes != "" {
			a.ReviewNotes = notes
		}
		return true
	}
	return false
}

// GenerateToken mints a session token for subject. Tokens carry their issue
// time and a random ID, so they differ even when minted back to back.
func (s *Store) GenerateToken(subject string) (string, error) {
	return s.tokens.Generate(subject)
}

// TokenSubject verifies a token minted by GenerateToken and returns its
// subject. Expired, foreign and malformed tokens fail with
// common.ErrInvalidToken.
func (s *Store) TokenSubject(token string) (string, error) {
	return s.tokens.Subject(token)
}

// ResetAllData drops every record and the session.
func (s *Store) ResetAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.documents = nil
	s.applications = nil
	s.session = nil
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{
		TotalUsers:        len(s.users),
		TotalDocuments:    len(s.documents),
		TotalApplications: len(s.applications),
	}
	if u, ok := s.currentUser(); ok {
		sum.CurrentUser = u.Email
	}
	sum.HasActiveSession = s.session != nil && s.session.token != ""
	return sum
}
