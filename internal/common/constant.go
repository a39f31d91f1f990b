package common

// Durable storage keys. The values match the keys written by earlier mobile
// builds so existing storage stays readable.
const (
	StorageKeyAuthToken    = "auth_token"
	StorageKeyUserProfile  = "user_profile"
	StorageKeyRefreshToken = "refresh_token"
	StorageKeyAppState     = "khula_app_state"

	// StorageKeyTokenSecret holds the generated signing key when none is
	// configured.
	StorageKeyTokenSecret = "token_secret"
)

// RequiredDocumentCount is the number of document types an applicant must upload.
const RequiredDocumentCount = 3
