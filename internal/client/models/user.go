// Package models defines the client-side data models of the Khula onboarding
// client: accounts, profiles, documents and applications.
package models

import "strings"

// Profile is the user-facing part of an account.
type Profile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	IsLoggedIn  bool   `json:"isLoggedIn"`
}

// TrackedFields returns the six fields counted by profile completion.
func (p Profile) TrackedFields() []string {
	return []string{p.FirstName, p.LastName, p.Email, p.Phone, p.Address, p.DateOfBirth}
}

// HasName reports whether both names are filled in.
func (p Profile) HasName() bool {
	return strings.TrimSpace(p.FirstName) != "" && strings.TrimSpace(p.LastName) != ""
}

// ProfileUpdate is a partial profile. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	IsLoggedIn  *bool   `json:"isLoggedIn,omitempty"`
}

// Apply returns p with the set fields of u merged in.
func (u ProfileUpdate) Apply(p Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, u.FirstName)
	set(&p.LastName, u.LastName)
	set(&p.Email, u.Email)
	set(&p.Phone, u.Phone)
	set(&p.Address, u.Address)
	set(&p.DateOfBirth, u.DateOfBirth)
	if u.IsLoggedIn != nil {
		p.IsLoggedIn = *u.IsLoggedIn
	}
	return p
}

// IsEmpty reports whether the update changes nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u == ProfileUpdate{}
}

// User is an account record. Email is the account key and is matched
// case-insensitively. Password holds either plaintext or a bcrypt hash,
// depending on how the store was configured.
type User struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Profile  Profile `json:"user"`
}

// SameEmail compares two account emails the way the store does.
func SameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}
