package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/services"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/validation"
)

// Docs lists the current user's documents and the required-type checklist.
func (a *App) Docs(ctx context.Context) error {
	docs := a.appData.UserDocuments()
	if len(docs) == 0 {
		a.println("No documents uploaded")
	}
	for _, d := range docs {
		line := fmt.Sprintf("%-14s %-20s %-9s %s", d.ID, d.Type, d.Status, d.Name)
		if d.ReviewNotes != "" {
			line += " (" + d.ReviewNotes + ")"
		}
		a.println(line)
	}

	st := a.appData.DocumentUploadStatus()
	a.printf("Required: applicant ID %s, directors ID %s, company registration %s\n",
		tick(st.ApplicantID), tick(st.DirectorsID), tick(st.CompanyRegistration))
	a.printf("Uploaded %d of %d required (%d%%)\n", st.TotalUploaded, st.TotalRequired, a.appData.DocumentUploadPercentage())
	return nil
}

func tick(ok bool) string {
	if ok {
		return "[x]"
	}
	return "[ ]"
}

// Upload records a document. The location may be a URL or a local path;
// paths are stored as file:// URIs.
func (a *App) Upload(ctx context.Context) error {
	names := make([]string, 0, len(models.RequiredDocumentTypes))
	for _, t := range models.RequiredDocumentTypes {
		names = append(names, string(t))
	}
	typeText, err := getSimpleText(a.reader, "Document type ("+strings.Join(names, ", ")+")", a.out)
	if err != nil {
		return err
	}
	typ, err := models.ParseDocumentType(typeText)
	if err != nil {
		a.printf("Unknown document type %q\n", typeText)
		return err
	}

	location, err := getSimpleText(a.reader, "File path or URL", a.out)
	if err != nil {
		return err
	}
	if r := validation.Required(location, "File"); !r.IsValid {
		a.println(r.Message)
		return errInvalidInput
	}

	uri, name, err := documentURI(location)
	if err != nil {
		a.println(err.Error())
		return err
	}

	d, err := a.appData.AddUserDocument(ctx, models.NewDocument{Name: name, Type: typ, URI: uri})
	if err != nil {
		a.println(services.UserMessage(err))
		return err
	}
	a.printf("Uploaded %s as %s (pending review)\n", d.Name, d.ID)
	return nil
}

func documentURI(location string) (uri, name string, err error) {
	if validation.URL(location).IsValid {
		return location, filepath.Base(strings.TrimRight(location, "/")), nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid path %q: %w", location, err)
	}
	return "file://" + filepath.ToSlash(abs), filepath.Base(abs), nil
}

// Review sets the status of a document, as a reviewer would.
func (a *App) Review(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Document id", a.out)
	if err != nil {
		return err
	}
	statusText, err := getSimpleText(a.reader, "New status (pending, approved, rejected)", a.out)
	if err != nil {
		return err
	}
	status, err := models.ParseDocumentStatus(statusText)
	if err != nil {
		a.printf("Unknown status %q\n", statusText)
		return err
	}
	notes, err := getSimpleText(a.reader, "Review notes (optional)", a.out)
	if err != nil {
		return err
	}

	if !a.appData.UpdateDocumentStatus(ctx, id, status, notes) {
		a.printf("Document %s not found\n", id)
		return common.ErrorNotFound
	}
	a.printf("Document %s is now %s\n", id, status)
	return nil
}

// RemoveDocument deletes a document by id.
func (a *App) RemoveDocument(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id to remove", a.out)
	if err != nil {
		return err
	}
	if !a.appData.RemoveUserDocument(ctx, id) {
		a.printf("Document %s not found\n", id)
		return common.ErrorNotFound
	}
	a.printf("Document %s removed\n", id)
	return nil
}
