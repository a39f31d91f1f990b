package mockdata

import (
	"time"

	"github.com/dmitrijs2005/khula/internal/client/models"
)

const (
	DemoEmail    = "demo@khula.com"
	DemoPassword = "Demo123!"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func atPtr(s string) *time.Time {
	t := at(s)
	return &t
}

// Fixtures returns the demo data set: three accounts, the demo account's
// three documents and two applications. Passwords are plaintext.
func Fixtures() State {
	return State{
		Users: []models.User{
			{
				Email:    DemoEmail,
				Password: DemoPassword,
				Profile:  models.Profile{Email: DemoEmail, IsLoggedIn: true},
			},
			{
				Email:    "john@example.com",
				Password: "Password123!",
				Profile: models.Profile{
					FirstName:   "John",
					LastName:    "Doe",
					Email:       "john@example.com",
					Phone:       "+1987654321",
					Address:     "456 Oak Avenue, Springfield, IL 62701",
					DateOfBirth: "1985-06-20",
					IsLoggedIn:  true,
				},
			},
			{
				Email:    "jane@example.com",
				Password: "SecurePass456!",
				Profile: models.Profile{
					FirstName:   "Jane",
					LastName:    "Smith",
					Email:       "jane@example.com",
					Phone:       "+1555123456",
					Address:     "789 Pine Road, Portland, OR 97201",
					DateOfBirth: "1992-12-10",
					IsLoggedIn:  true,
				},
			},
		},
		Documents: []models.Document{
			{
				ID:          "doc_1",
				UserID:      DemoEmail,
				Name:        "john_doe_id.pdf",
				Type:        models.DocumentTypeApplicantID,
				URI:         "file://mock/path/john_doe_id.pdf",
				UploadedAt:  at("2024-01-15T10:30:00Z"),
				Status:      models.DocumentApproved,
				ReviewNotes: "Document verified successfully",
			},
			{
				ID:         "doc_2",
				UserID:     DemoEmail,
				Name:       "directors_id_1.jpg",
				Type:       models.DocumentTypeDirectorsID,
				URI:        "file://mock/path/directors_id_1.jpg",
				UploadedAt: at("2024-01-15T11:15:00Z"),
				Status:     models.DocumentPending,
			},
			{
				ID:          "doc_3",
				UserID:      DemoEmail,
				Name:        "company_registration.pdf",
				Type:        models.DocumentTypeCompanyRegistration,
				URI:         "file://mock/path/company_registration.pdf",
				UploadedAt:  at("2024-01-15T12:00:00Z"),
				Status:      models.DocumentApproved,
				ReviewNotes: "Registration documents are valid",
			},
		},
		Applications: []models.Application{
			{
				ID:          "app_1",
				UserID:      DemoEmail,
				Status:      models.ApplicationSubmitted,
				SubmittedAt: atPtr("2024-01-15T14:30:00Z"),
				ReviewedAt:  atPtr("2024-01-16T09:15:00Z"),
				ReviewNotes: "Application approved pending final document verification",
			},
			{
				ID:          "app_2",
				UserID:      "john@example.com",
				Status:      models.ApplicationApproved,
				SubmittedAt: atPtr("2024-01-10T16:45:00Z"),
				ReviewedAt:  atPtr("2024-01-12T11:20:00Z"),
				ReviewNotes: "All documents verified and application approved",
			},
		},
	}
}
