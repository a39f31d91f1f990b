package models

import (
	"fmt"
	"time"
)

type DocumentType string

const (
	DocumentTypeApplicantID         DocumentType = "applicant-id"
	DocumentTypeDirectorsID         DocumentType = "directors-id"
	DocumentTypeCompanyRegistration DocumentType = "company-registration"

	// Legacy types still accepted from older uploads.
	DocumentTypeID             DocumentType = "id"
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeDriversLicense DocumentType = "drivers-license"
	DocumentTypeUtilityBill    DocumentType = "utility-bill"
	DocumentTypeBankStatement  DocumentType = "bank-statement"
	DocumentTypePayslip        DocumentType = "payslip"
)

// RequiredDocumentTypes are the uploads an application needs.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeApplicantID,
	DocumentTypeDirectorsID,
	DocumentTypeCompanyRegistration,
}

var knownDocumentTypes = map[DocumentType]struct{}{
	DocumentTypeApplicantID:         {},
	DocumentTypeDirectorsID:         {},
	DocumentTypeCompanyRegistration: {},
	DocumentTypeID:                  {},
	DocumentTypePassport:            {},
	DocumentTypeDriversLicense:      {},
	DocumentTypeUtilityBill:         {},
	DocumentTypeBankStatement:       {},
	DocumentTypePayslip:             {},
}

// ParseDocumentType accepts any known document type, legacy ones included.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if _, ok := knownDocumentTypes[t]; !ok {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return t, nil
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch st := DocumentStatus(s); st {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown document status %q", s)
}

// Document is an uploaded file record. UserID holds the owner's email and is
// not checked against the user list.
type Document struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Name        string         `json:"name"`
	Type        DocumentType   `json:"type"`
	URI         string         `json:"uri"`
	UploadedAt  time.Time      `json:"uploadedAt"`
	Status      DocumentStatus `json:"status"`
	ReviewNotes string         `json:"reviewNotes,omitempty"`
}

// NewDocument is what a caller supplies on upload; owner and status are
// filled in by the service. Empty ID and zero UploadedAt are generated.
type NewDocument struct {
	ID         string
	Name       string
	Type       DocumentType
	URI        string
	UploadedAt time.Time
}
