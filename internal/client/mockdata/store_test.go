package mockdata

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newSeeded(t *testing.T) *Store {
	t.Helper()
	s := New(cryptox.NewTokens([]byte("test"), 0))
	s.Seed()
	return s
}

func TestFindUserByEmail_CaseInsensitive(t *testing.T) {
	s := newSeeded(t)

	u, ok := s.FindUserByEmail("DEMO@Khula.com")
	require.True(t, ok)
	assert.Equal(t, DemoEmail, u.Email)

	_, ok = s.FindUserByEmail("nobody@khula.com")
	assert.False(t, ok)
}

func TestAddUser_AllowsDuplicates(t *testing.T) {
	s := newSeeded(t)
	s.AddUser(models.User{Email: DemoEmail, Password: "other"})

	assert.Len(t, s.Users(), 4)
	u, ok := s.FindUserByEmail(DemoEmail)
	require.True(t, ok)
	assert.Equal(t, DemoPassword, u.Password, "first match wins")
}

func TestUpdateUser(t *testing.T) {
	s := newSeeded(t)

	ok := s.UpdateUser("Demo@khula.com", models.ProfileUpdate{FirstName: ptr("Demo"), Phone: ptr("+27123456789")})
	require.True(t, ok)

	u, _ := s.FindUserByEmail(DemoEmail)
	assert.Equal(t, "Demo", u.Profile.FirstName)
	assert.Equal(t, "+27123456789", u.Profile.Phone)
	assert.Equal(t, DemoEmail, u.Profile.Email)

	assert.False(t, s.UpdateUser("ghost@khula.com", models.ProfileUpdate{FirstName: ptr("X")}))
}

func TestSession(t *testing.T) {
	s := newSeeded(t)

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.CurrentToken())

	u, _ := s.FindUserByEmail(DemoEmail)
	s.SetCurrentUser(u, "t1")
	s.UpdateUser(DemoEmail, models.ProfileUpdate{LastName: ptr("User")})

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "User", cur.Profile.LastName, "session sees profile updates")
	assert.Equal(t, "t1", s.CurrentToken())

	jane, _ := s.FindUserByEmail("jane@example.com")
	s.SetCurrentUser(jane, "t2")
	cur, _ = s.CurrentUser()
	assert.Equal(t, "jane@example.com", cur.Email)
	assert.Equal(t, "t2", s.CurrentToken())

	s.ClearSession()
	_, ok = s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.CurrentToken())
}

func TestSession_UserNotInList(t *testing.T) {
	s := New(nil)
	s.SetCurrentUser(models.User{Email: "x@y.io"}, "tok")

	cur, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "x@y.io", cur.Email)
}

func TestDocuments(t *testing.T) {
	s := newSeeded(t)

	docs := s.DocumentsByUserID(DemoEmail)
	require.Len(t, docs, 3)
	assert.Equal(t, "doc_1", docs[0].ID)
	assert.Empty(t, s.DocumentsByUserID("john@example.com"))

	s.AddDocument(models.Document{ID: "doc_9", UserID: "john@example.com", Type: "anything"})
	d, ok := s.DocumentByID("doc_9")
	require.True(t, ok)
	assert.Equal(t, models.DocumentType("anything"), d.Type)

	_, ok = s.DocumentByID("missing")
	assert.False(t, ok)
}

func TestUpdateDocumentStatus_RoundTrip(t *testing.T) {
	s := newSeeded(t)

	require.True(t, s.UpdateDocumentStatus("doc_2", models.DocumentApproved, "x"))
	d, ok := s.DocumentByID("doc_2")
	require.True(t, ok)
	assert.Equal(t, models.DocumentApproved, d.Status)
	assert.Equal(t, "x", d.ReviewNotes)

	// empty notes keep the previous ones
	require.True(t, s.UpdateDocumentStatus("doc_2", models.DocumentRejected, ""))
	d, _ = s.DocumentByID("doc_2")
	assert.Equal(t, models.DocumentRejected, d.Status)
	assert.Equal(t, "x", d.ReviewNotes)

	assert.False(t, s.UpdateDocumentStatus("nope", models.DocumentApproved, "x"))
}

func TestRemoveDocument_FirstMatch(t *testing.T) {
	s := New(nil)
	s.AddDocument(models.Document{ID: "d", Name: "first"})
	s.AddDocument(models.Document{ID: "d", Name: "second"})

	require.True(t, s.RemoveDocument("d"))
	d, ok := s.DocumentByID("d")
	require.True(t, ok)
	assert.Equal(t, "second", d.Name)

	require.True(t, s.RemoveDocument("d"))
	assert.False(t, s.RemoveDocument("d"))
}

func TestDocumentsAreCopies(t *testing.T) {
	s := newSeeded(t)
	docs := s.DocumentsByUserID(DemoEmail)
	docs[0].Status = models.DocumentRejected

	d, _ := s.DocumentByID(docs[0].ID)
	assert.Equal(t, models.DocumentApproved, d.Status)
}

func TestCreateApplication_NoUniqueness(t *testing.T) {
	s := New(nil)

	a1 := s.CreateApplication("a@b.com")
	a2 := s.CreateApplication("a@b.com")

	assert.Equal(t, models.ApplicationDraft, a1.Status)
	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Equal(t, 2, s.Summary().TotalApplications)

	got, ok := s.ApplicationByUserID("a@b.com")
	require.True(t, ok)
	assert.Equal(t, a1.ID, got.ID, "first match wins")
}

func TestUpdateApplicationStatus_Timestamps(t *testing.T) {
	s := New(nil)
	fixed := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	a := s.CreateApplication("a@b.com")

	require.True(t, s.UpdateApplicationStatus(a.ID, models.ApplicationSubmitted, ""))
	got, _ := s.ApplicationByUserID("a@b.com")
	require.NotNil(t, got.SubmittedAt)
	assert.Equal(t, fixed, *got.SubmittedAt)
	assert.Nil(t, got.ReviewedAt)
	assert.Empty(t, got.ReviewNotes)

	for _, st := range []models.ApplicationStatus{models.ApplicationUnderReview, models.ApplicationApproved, models.ApplicationRejected} {
		fixed = fixed.Add(time.Hour)
		require.True(t, s.UpdateApplicationStatus(a.ID, st, "note "+string(st)))
		got, _ = s.ApplicationByUserID("a@b.com")
		assert.Equal(t, st, got.Status)
		require.NotNil(t, got.ReviewedAt)
		assert.Equal(t, fixed, *got.ReviewedAt)
		assert.Equal(t, "note "+string(st), got.ReviewNotes)
	}

	// any status may follow any other
	require.True(t, s.UpdateApplicationStatus(a.ID, models.ApplicationDraft, ""))
	got, _ = s.ApplicationByUserID("a@b.com")
	assert.Equal(t, models.ApplicationDraft, got.Status)
	assert.Equal(t, "note rejected", got.ReviewNotes)

	assert.False(t, s.UpdateApplicationStatus("app_missing", models.ApplicationApproved, ""))
}

func TestApplicationIsCopy(t *testing.T) {
	s := newSeeded(t)
	a, ok := s.ApplicationByUserID(DemoEmail)
	require.True(t, ok)
	*a.SubmittedAt = time.Time{}

	again, _ := s.ApplicationByUserID(DemoEmail)
	assert.False(t, again.SubmittedAt.IsZero())
}

func TestGenerateToken_Unique(t *testing.T) {
	s := New(nil)
	t1, err := s.GenerateToken(DemoEmail)
	require.NoError(t, err)
	t2, err := s.GenerateToken(DemoEmail)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestTokenSubject(t *testing.T) {
	s := New(cryptox.NewTokens([]byte("test"), 0))
	tok, err := s.GenerateToken(DemoEmail)
	require.NoError(t, err)

	sub, err := s.TokenSubject(tok)
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, sub)

	other := New(cryptox.NewTokens([]byte("other"), 0))
	_, err = other.TokenSubject(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSummaryAndReset(t *testing.T) {
	s := newSeeded(t)
	assert.Equal(t, Summary{TotalUsers: 3, TotalDocuments: 3, TotalApplications: 2}, s.Summary())

	u, _ := s.FindUserByEmail(DemoEmail)
	s.SetCurrentUser(u, "tok")
	sum := s.Summary()
	assert.Equal(t, DemoEmail, sum.CurrentUser)
	assert.True(t, sum.HasActiveSession)

	s.ResetAllData()
	assert.Equal(t, Summary{}, s.Summary())
	assert.Empty(t, s.Users())
}

func TestExportImport(t *testing.T) {
	s := newSeeded(t)
	u, _ := s.FindUserByEmail("john@example.com")
	s.SetCurrentUser(u, "tok")

	st := s.Export()
	assert.Equal(t, "john@example.com", st.SessionEmail)
	assert.Equal(t, "tok", st.SessionToken)

	other := New(nil)
	other.Import(st)
	assert.Equal(t, s.Summary(), other.Summary())
	assert.Equal(t, "tok", other.CurrentToken())

	// the export is detached from the source store
	st.Users[0].Password = "changed"
	*st.Applications[0].SubmittedAt = time.Time{}
	got, _ := s.FindUserByEmail(DemoEmail)
	assert.Equal(t, DemoPassword, got.Password)
	app, _ := s.ApplicationByUserID(DemoEmail)
	assert.False(t, app.SubmittedAt.IsZero())
}

func TestImport_DropsSessionOfUnknownUser(t *testing.T) {
	s := New(nil)
	s.Import(State{SessionEmail: "ghost@khula.com", SessionToken: "tok"})

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.CurrentToken())
}
