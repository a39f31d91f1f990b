package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/services"
)

var errNotReady = errors.New("application is not ready")

// Apply starts a draft application unless the user already has one.
func (a *App) Apply(ctx context.Context) error {
	if app, ok := a.appData.UserApplication(); ok {
		a.printf("You already have application %s (%s)\n", app.ID, app.Status)
		return nil
	}

	app, err := a.appData.CreateUserApplication(ctx)
	if err != nil {
		a.println(services.UserMessage(err))
		return err
	}
	a.printf("Draft application %s created\n", app.ID)
	return nil
}

// Submit sends the application for review once the profile is complete and
// every required document is uploaded. A draft is created when needed.
func (a *App) Submit(ctx context.Context) error {
	var missing []string
	if !a.appData.IsProfileComplete() {
		missing = append(missing, "complete your profile ('profile')")
	}
	if a.appData.DocumentUploadPercentage() < 100 {
		missing = append(missing, "upload all required documents ('upload')")
	}
	if len(missing) > 0 {
		a.println("Before submitting:")
		for _, m := range missing {
			a.println("  - " + m)
		}
		return errNotReady
	}

	app, ok := a.appData.UserApplication()
	if !ok {
		if err := a.Apply(ctx); err != nil {
			return err
		}
	} else if app.Status != models.ApplicationDraft {
		a.printf("Application %s is already %s\n", app.ID, app.Status)
		return nil
	}

	if err := a.appData.UpdateApplicationStatus(ctx, models.ApplicationSubmitted, ""); err != nil {
		a.println(services.UserMessage(err))
		return err
	}
	a.println("Application submitted")
	return nil
}

// Status prints the onboarding progress summary.
func (a *App) Status(ctx context.Context) error {
	s := a.appData.DataSummary()

	a.printf("Profile:     %d%% complete\n", s.User.ProfileCompletionPercentage)
	a.printf("Documents:   %d of %d required (%d%%)\n",
		s.Documents.TotalUploaded, s.Documents.TotalRequired, s.Documents.UploadPercentage)
	a.printf("Application: %s\n", s.Application.Status)
	if s.Application.IsComplete {
		a.println("Review finished")
	}
	if app, ok := a.appData.UserApplication(); ok && app.ReviewNotes != "" {
		a.printf("Notes:       %s\n", app.ReviewNotes)
	}

	m := a.appData.MockDataSummary()
	a.log.Debug(ctx, "store summary", "users", m.TotalUsers, "documents", m.TotalDocuments,
		"applications", m.TotalApplications, "session", m.HasActiveSession)
	return nil
}

// Reset wipes every account, document and application after confirmation,
// ends the session and empties local storage.
func (a *App) Reset(ctx context.Context) error {
	if !Confirm(a.reader, "This deletes all accounts and documents. Continue?", a.out) {
		a.println("Cancelled")
		return nil
	}

	// logout first: it saves a snapshot that ClearAllData then removes
	a.authService.Logout(ctx)
	a.appData.ClearAllData(ctx)

	entries, err := a.storage.Metadata.List(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to list local storage", "error", err)
	}
	if err := a.storage.Metadata.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear local storage", "error", err)
	} else {
		a.log.Info(ctx, "local storage cleared", "entries", len(entries))
	}

	a.println("All data cleared")
	return nil
}
