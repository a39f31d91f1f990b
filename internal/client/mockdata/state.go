package mockdata

import (
	"github.com/dmitrijs2005/khula/internal/client/models"
)

// State is a full copy of the store, used to snapshot it between runs.
type State struct {
	Users        []models.User        `json:"users"`
	Documents    []models.Document    `json:"documents"`
	Applications []models.Application `json:"applications"`
	SessionEmail string               `json:"sessionEmail,omitempty"`
	SessionToken string               `json:"sessionToken,omitempty"`
}

// Export copies the whole store.
func (s *Store) Export() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Users:        append([]models.User(nil), s.users...),
		Documents:    append([]models.Document(nil), s.documents...),
		Applications: cloneApplications(s.applications),
	}
	if s.session != nil {
		st.SessionEmail = s.session.email
		st.SessionToken = s.session.token
	}
	return st
}

// Import replaces the store contents with st. The session is restored only
// when its user is present in st.
func (s *Store) Import(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append([]models.User(nil), st.Users...)
	s.documents = append([]models.Document(nil), st.Documents...)
	s.applications = cloneApplications(st.Applications)
	s.session = nil

	if st.SessionEmail == "" {
		return
	}
	if i := s.findUser(st.SessionEmail); i >= 0 {
		s.session = &session{email: s.users[i].Email, fallback: s.users[i], token: st.SessionToken}
	}
}

// Seed replaces the store contents with the demo fixtures.
func (s *Store) Seed() {
	s.Import(Fixtures())
}

func cloneApplications(in []models.Application) []models.Application {
	if in == nil {
		return nil
	}
	out := make([]models.Application, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
