// Package cli provides the interactive Khula onboarding command-line client.
//
// It wires configuration, local storage, the mock data store and the
// application services, then runs a REPL over them. Typical flow: log in
// (or register), fill in the profile, upload the three required documents
// and submit the application.
//
// Key features:
//   - Register / Login / Logout with simulated backend latency
//   - Profile editing with per-field validation
//   - Document upload, review and removal
//   - Application creation, submission and a progress summary
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp for how the pieces are put together.
package cli
