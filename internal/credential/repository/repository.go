package repository

import (
	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	authdomain "github.com/MSHIVVANI/smart-job-tracker/internal/auth/domain"
	creddomain "github.com/MSHIVVANI/smart-job-tracker/internal/credential/domain"
)

// ActiveCredential is one active credential joined with its owning user and
// that user's tracked applications, as the scan orchestrator consumes it.
type ActiveCredential struct {
	Credential   *creddomain.Credential
	User         *authdomain.User
	Applications []*appdomain.Application
}

// CredentialRepository defines the interface for mailbox credential persistence
type CredentialRepository interface {
	// LoadActive returns every active credential for the given service,
	// each joined with its user and the user's applications.
	LoadActive(service string) ([]*ActiveCredential, error)
	FindByUserAndService(userID, service string) (*creddomain.Credential, error)
	// Upsert stores freshly issued consent tokens, creating the row or
	// overwriting an existing one and resetting status to active.
	Upsert(cred *creddomain.Credential) error
	// UpdateTokens persists tokens issued on refresh. The refresh token is
	// only overwritten when the provider supplied a new one.
	UpdateTokens(id, accessToken, refreshToken, expiryDate string) error
	// MarkRevoked flips the credential to revoked. Terminal until a new
	// consent flow upserts fresh tokens.
	MarkRevoked(id string) error
}
