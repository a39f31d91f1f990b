package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/khula/internal/client/mockdata"
	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/snapshot"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/logging"
	"github.com/google/uuid"
)

// profileFieldCount is the number of profile fields tracked for completion.
const profileFieldCount = 6

// DocumentUploadStatus tells which required document types the current user
// has uploaded. Duplicates of a type count once.
type DocumentUploadStatus struct {
	ApplicantID         bool `json:"applicantId"`
	DirectorsID         bool `json:"directorsId"`
	CompanyRegistration bool `json:"companyRegistration"`
	TotalUploaded       int  `json:"totalUploaded"`
	TotalRequired       int  `json:"totalRequired"`
}

type UserSummary struct {
	IsLoggedIn                  bool `json:"isLoggedIn"`
	ProfileComplete             bool `json:"profileComplete"`
	ProfileCompletionPercentage int  `json:"profileCompletionPercentage"`
}

type DocumentsSummary struct {
	DocumentUploadStatus
	UploadPercentage int `json:"uploadPercentage"`
}

type ApplicationSummary struct {
	Status     models.ApplicationStatus `json:"status"`
	IsComplete bool                     `json:"isComplete"`
}

// DataSummary is the dashboard view of the current user.
type DataSummary struct {
	User        UserSummary        `json:"user"`
	Documents   DocumentsSummary   `json:"documents"`
	Application ApplicationSummary `json:"application"`
}

// AppDataService answers questions about the user of the current session:
// profile completion, uploaded documents and application status.
//
// Accessors never fail; without a session they report empty or zero values.
// Mutations that need an owner (AddUserDocument, CreateUserApplication,
// UpdateApplicationStatus) return common.ErrNoSession instead. Every mutation
// ends with a snapshot save.
type AppDataService interface {
	CurrentUser() (models.User, bool)
	CurrentProfile() (models.Profile, bool)
	UpdateCurrentProfile(ctx context.Context, upd models.ProfileUpdate) bool
	IsUserLoggedIn() bool
	CurrentToken() string

	UserDocuments() []models.Document
	AddUserDocument(ctx context.Context, doc models.NewDocument) (models.Document, error)
	UpdateDocumentStatus(ctx context.Context, id string, status models.DocumentStatus, notes string) bool
	RemoveUserDocument(ctx context.Context, id string) bool
	DocumentByType(t models.DocumentType) (models.Document, bool)
	HasDocumentOfType(t models.DocumentType) bool

	UserApplication() (models.Application, bool)
	CreateUserApplication(ctx context.Context) (models.Application, error)
	UpdateApplicationStatus(ctx context.Context, status models.ApplicationStatus, notes string) error

	IsProfileComplete() bool
	ProfileCompletionPercentage() int
	DocumentUploadStatus() DocumentUploadStatus
	DocumentUploadPercentage() int
	ApplicationStatus() models.ApplicationStatus
	IsApplicationComplete() bool
	DataSummary() DataSummary

	ClearAllData(ctx context.Context)
	MockDataSummary() mockdata.Summary
}

type appDataService struct {
	store    *mockdata.Store
	snapshot *snapshot.Bridge
	log      logging.Logger
	now      func() time.Time
}

// NewAppDataService builds the facade. snap may be nil to disable snapshots.
func NewAppDataService(store *mockdata.Store, snap *snapshot.Bridge, log logging.Logger) AppDataService {
	return &appDataService{store: store, snapshot: snap, log: log.With("service", "appdata"), now: time.Now}
}

func (s *appDataService) save(ctx context.Context) {
	_ = s.snapshot.Save(ctx)
}

func (s *appDataService) CurrentUser() (models.User, bool) {
	return s.store.CurrentUser()
}

func (s *appDataService) CurrentProfile() (models.Profile, bool) {
	u, ok := s.store.CurrentUser()
	if !ok {
		return models.Profile{}, false
	}
	return u.Profile, true
}

// UpdateCurrentProfile merges upd into the session user's profile.
func (s *appDataService) UpdateCurrentProfile(ctx context.Context, upd models.ProfileUpdate) bool {
	u, ok := s.store.CurrentUser()
	if !ok {
		return false
	}
	if !s.store.UpdateUser(u.Email, upd) {
		return false
	}
	s.save(ctx)
	return true
}

func (s *appDataService) IsUserLoggedIn() bool {
	_, ok := s.store.CurrentUser()
	return ok
}

func (s *appDataService) CurrentToken() string {
	return s.store.CurrentToken()
}

func (s *appDataService) UserDocuments() []models.Document {
	u, ok := s.store.CurrentUser()
	if !ok {
		return nil
	}
	return s.store.DocumentsByUserID(u.Email)
}

// AddUserDocument stores doc as a pending upload of the session user.
func (s *appDataService) AddUserDocument(ctx context.Context, doc models.NewDocument) (models.Document, error) {
	u, ok := s.store.CurrentUser()
	if !ok {
		return models.Document{}, common.ErrNoSession
	}

	d := models.Document{
		ID:         doc.ID,
		UserID:     u.Email,
		Name:       doc.Name,
		Type:       doc.Type,
		URI:        doc.URI,
		UploadedAt: doc.UploadedAt,
		Status:     models.DocumentPending,
	}
	if d.ID == "" {
		d.ID = "doc_" + uuid.NewString()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = s.now().UTC()
	}

	s.store.AddDocument(d)
	s.log.Info(ctx, "document added", "id", d.ID, "type", d.Type, "user", u.Email)
	s.save(ctx)
	return d, nil
}

func (s *appDataService) UpdateDocumentStatus(ctx context.Context, id string, status models.DocumentStatus, notes string) bool {
	if !s.store.UpdateDocumentStatus(id, status, notes) {
		return false
	}
	s.log.Info(ctx, "document reviewed", "id", id, "status", status)
	s.save(ctx)
	return true
}

// RemoveUserDocument removes a document by id. Ownership is not checked.
func (s *appDataService) RemoveUserDocument(ctx context.Context, id string) bool {
	if !s.store.RemoveDocument(id) {
		return false
	}
	s.log.Info(ctx, "document removed", "id", id)
	s.save(ctx)
	return true
}

func (s *appDataService) DocumentByType(t models.DocumentType) (models.Document, bool) {
	for _, d := range s.UserDocuments() {
		if d.Type == t {
			return d, true
		}
	}
	return models.Document{}, false
}

func (s *appDataService) HasDocumentOfType(t models.DocumentType) bool {
	_, ok := s.DocumentByType(t)
	return ok
}

func (s *appDataService) UserApplication() (models.Application, bool) {
	u, ok := s.store.CurrentUser()
	if !ok {
		return models.Application{}, false
	}
	return s.store.ApplicationByUserID(u.Email)
}

// CreateUserApplication starts a new draft. It does not check whether the
// user already has one; lookups return the oldest.
func (s *appDataService) CreateUserApplication(ctx context.Context) (models.Application, error) {
	u, ok := s.store.CurrentUser()
	if !ok {
		return models.Application{}, common.ErrNoSession
	}
	a := s.store.CreateApplication(u.Email)
	s.log.Info(ctx, "application created", "id", a.ID, "user", u.Email)
	s.save(ctx)
	return a, nil
}

// UpdateApplicationStatus moves the session user's application to status.
func (s *appDataService) UpdateApplicationStatus(ctx context.Context, status models.ApplicationStatus, notes string) error {
	u, ok := s.store.CurrentUser()
	if !ok {
		return common.ErrNoSession
	}
	a, ok := s.store.ApplicationByUserID(u.Email)
	if !ok {
		return common.ErrorNotFound
	}
	if !s.store.UpdateApplicationStatus(a.ID, status, notes) {
		return common.ErrorNotFound
	}
	s.log.Info(ctx, "application status changed", "id", a.ID, "from", a.Status, "to", status)
	s.save(ctx)
	return nil
}

func (s *appDataService) IsProfileComplete() bool {
	p, ok := s.CurrentProfile()
	return ok && p.HasName()
}

// ProfileCompletionPercentage counts the non-blank tracked profile fields,
// rounded to the nearest percent.
func (s *appDataService) ProfileCompletionPercentage() int {
	p, ok := s.CurrentProfile()
	if !ok {
		return 0
	}
	n := 0
	for _, f := range p.TrackedFields() {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return percent(n, profileFieldCount)
}

func (s *appDataService) DocumentUploadStatus() DocumentUploadStatus {
	st := DocumentUploadStatus{TotalRequired: common.RequiredDocumentCount}
	for _, d := range s.UserDocuments() {
		switch d.Type {
		case models.DocumentTypeApplicantID:
			st.ApplicantID = true
		case models.DocumentTypeDirectorsID:
			st.DirectorsID = true
		case models.DocumentTypeCompanyRegistration:
			st.CompanyRegistration = true
		}
	}
	for _, b := range []bool{st.ApplicantID, st.DirectorsID, st.CompanyRegistration} {
		if b {
			st.TotalUploaded++
		}
	}
	return st
}

func (s *appDataService) DocumentUploadPercentage() int {
	st := s.DocumentUploadStatus()
	return percent(st.TotalUploaded, st.TotalRequired)
}

// ApplicationStatus returns models.ApplicationNotStarted when the user has
// no application.
func (s *appDataService) ApplicationStatus() models.ApplicationStatus {
	a, ok := s.UserApplication()
	if !ok {
		return models.ApplicationNotStarted
	}
	return a.Status
}

// IsApplicationComplete is true once the review concluded either way.
func (s *appDataService) IsApplicationComplete() bool {
	a, ok := s.UserApplication()
	return ok && a.Status.IsFinal()
}

// DataSummary queries every accessor afresh; nothing is cached.
func (s *appDataService) DataSummary() DataSummary {
	return DataSummary{
		User: UserSummary{
			IsLoggedIn:                  s.IsUserLoggedIn(),
			ProfileComplete:             s.IsProfileComplete(),
			ProfileCompletionPercentage: s.ProfileCompletionPercentage(),
		},
		Documents: DocumentsSummary{
			DocumentUploadStatus: s.DocumentUploadStatus(),
			UploadPercentage:     s.DocumentUploadPercentage(),
		},
		Application: ApplicationSummary{
			Status:     s.ApplicationStatus(),
			IsComplete: s.IsApplicationComplete(),
		},
	}
}

// ClearAllData wipes the store, session included, and drops the saved
// snapshot so the next launch starts from the demo data again.
func (s *appDataService) ClearAllData(ctx context.Context) {
	s.store.ResetAllData()
	_ = s.snapshot.Clear(ctx)
	s.log.Warn(ctx, "all data cleared")
}

func (s *appDataService) MockDataSummary() mockdata.Summary {
	return s.store.Summary()
}

func percent(n, of int) int {
	if of == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(of)))
}
