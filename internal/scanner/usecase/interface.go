package usecase

import (
	"context"

	"github.com/MSHIVVANI/smart-job-tracker/pkg/gmail"
)

// ScannerUsecase defines the interface for the inbox scan pipeline
type ScannerUsecase interface {
	// ScanAllInboxes runs one full cycle over every active credential.
	// Cycles are single-flight: a call arriving while one is running
	// returns immediately without starting a second cycle.
	ScanAllInboxes()
}

// MailboxClient is one provider session bound to a credential's tokens.
type MailboxClient interface {
	ListUnread(ctx context.Context) ([]string, error)
	FetchMetadata(ctx context.Context, id string) (*gmail.Metadata, error)
	FetchFull(ctx context.Context, id string) (*gmail.Message, error)
	MarkRead(ctx context.Context, id string) error
}

// MailboxProvider builds MailboxClients. onRefresh persists rotated tokens
// before the provider call that triggered the rotation proceeds.
type MailboxProvider interface {
	NewClient(ctx context.Context, accessToken, refreshToken, expiryDate string, onRefresh gmail.TokenRefreshFunc) (MailboxClient, error)
}

// EventService defines interface for sending notifications
type EventService interface {
	SendToUser(userID string, eventType string, payload interface{})
}

// gmailProvider adapts the concrete Gmail service to MailboxProvider.
type gmailProvider struct {
	svc *gmail.Service
}

// NewGmailProvider wraps a Gmail service factory as a MailboxProvider.
func NewGmailProvider(svc *gmail.Service) MailboxProvider {
	return &gmailProvider{svc: svc}
}

func (p *gmailProvider) NewClient(ctx context.Context, accessToken, refreshToken, expiryDate string, onRefresh gmail.TokenRefreshFunc) (MailboxClient, error) {
	return p.svc.NewClient(ctx, accessToken, refreshToken, expiryDate, onRefresh)
}
