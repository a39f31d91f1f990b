package cli

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/khula/internal/client/models"
	"github.com/dmitrijs2005/khula/internal/client/services"
	"github.com/dmitrijs2005/khula/internal/common"
	"github.com/dmitrijs2005/khula/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errInvalidInput is returned by commands whose input failed validation;
// the field messages have already been printed.
var errInvalidInput = errors.New("invalid input")

func (a *App) printFieldErrors(errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		a.printf("  %s: %s\n", f, errs[f])
	}
}

// readCredentials prompts for email and password. The caller wipes the
// returned password.
func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for email, password and its confirmation, validates them
// and creates the account. The new account is logged in straight away.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	errs := validation.Errors{}
	if r := validation.Email(email); !r.IsValid {
		errs["email"] = r.Message
	}
	if r := validation.Password(string(password)); !r.IsValid {
		errs["password"] = r.Message
	} else if r := validation.PasswordsMatch(string(password), string(confirm)); !r.IsValid {
		errs["confirmPassword"] = r.Message
	}
	if len(errs) > 0 {
		a.printFieldErrors(errs)
		return errInvalidInput
	}

	a.println("Creating account...")
	res, err := a.authService.Register(ctx, models.RegisterRequest{Email: email, Password: string(password)})
	if err != nil {
		a.println(services.UserMessage(err))
		return err
	}

	a.printf("Welcome, %s! Complete your profile with 'profile'.\n", res.Profile.Email)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if r := validation.Login(email, string(password)); !r.IsValid {
		a.println(r.Message)
		return errInvalidInput
	}

	a.println("Signing in...")
	res, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		a.println(services.UserMessage(err))
		return err
	}

	a.printf("Logged in as %s\n", displayName(res.Profile))
	return nil
}

// Logout ends the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.println("Logged out")
	return nil
}

// WhoAmI prints the current profile and how complete it is.
func (a *App) WhoAmI(ctx context.Context) error {
	p, ok := a.authService.CurrentUser(ctx)
	if !ok {
		a.println(services.UserMessage(common.ErrNoSession))
		return common.ErrNoSession
	}

	a.printf("Name:          %s\n", orDash(strings.TrimSpace(p.FirstName+" "+p.LastName)))
	a.printf("Email:         %s\n", orDash(p.Email))
	a.printf("Phone:         %s\n", orDash(p.Phone))
	a.printf("Address:       %s\n", orDash(p.Address))
	a.printf("Date of birth: %s\n", orDash(p.DateOfBirth))
	a.printf("Profile:       %d%% complete\n", a.appData.ProfileCompletionPercentage())
	return nil
}

// Profile prompts for each editable field, keeping the current value on an
// empty answer. The merged profile is validated before it is saved.
func (a *App) Profile(ctx context.Context) error {
	cur, ok := a.appData.CurrentProfile()
	if !ok {
		a.println(services.UserMessage(common.ErrNoSession))
		return common.ErrNoSession
	}

	var upd models.ProfileUpdate
	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"First name", cur.FirstName, &upd.FirstName},
		{"Last name", cur.LastName, &upd.LastName},
		{"Phone", cur.Phone, &upd.Phone},
		{"Address", cur.Address, &upd.Address},
		{"Date of birth (YYYY-MM-DD)", cur.DateOfBirth, &upd.DateOfBirth},
	}
	for _, f := range fields {
		v, err := GetOptional(a.reader, f.label, f.current, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if upd.IsEmpty() {
		a.println("Nothing changed")
		return nil
	}

	merged := upd.Apply(cur)
	errs := validation.Profile(validation.ProfileFields{
		FirstName:   merged.FirstName,
		LastName:    merged.LastName,
		Phone:       merged.Phone,
		Address:     merged.Address,
		DateOfBirth: merged.DateOfBirth,
	})
	if len(errs) > 0 {
		a.printFieldErrors(errs)
		return errInvalidInput
	}

	a.println("Saving profile...")
	if _, err := a.authService.UpdateProfile(ctx, upd); err != nil {
		a.println(services.UserMessage(err))
		return err
	}

	a.printf("Profile saved, %d%% complete\n", a.appData.ProfileCompletionPercentage())
	return nil
}

func displayName(p models.Profile) string {
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	return p.Email
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
