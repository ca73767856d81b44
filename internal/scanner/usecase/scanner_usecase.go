package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	apprepo "github.com/MSHIVVANI/smart-job-tracker/internal/application/repository"
	creddomain "github.com/MSHIVVANI/smart-job-tracker/internal/credential/domain"
	credrepo "github.com/MSHIVVANI/smart-job-tracker/internal/credential/repository"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/ai"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/gmail"
)

// EventApplicationUpdated is published whenever a scan transitions an
// application's status.
const EventApplicationUpdated = "application-updated"

// scannerUsecase implements ScannerUsecase interface
type scannerUsecase struct {
	credRepo   credrepo.CredentialRepository
	appRepo    apprepo.ApplicationRepository
	mailbox    MailboxProvider
	classifier ai.ClassifierService
	events     EventService

	workers     int
	callTimeout time.Duration
	running     atomic.Bool
}

// NewScannerUsecase creates a new instance of scannerUsecase
func NewScannerUsecase(
	credRepo credrepo.CredentialRepository,
	appRepo apprepo.ApplicationRepository,
	mailbox MailboxProvider,
	classifier ai.ClassifierService,
	events EventService,
	workers int,
) ScannerUsecase {
	if workers <= 0 {
		workers = 1
	}
	return &scannerUsecase{
		credRepo:    credRepo,
		appRepo:     appRepo,
		mailbox:     mailbox,
		classifier:  classifier,
		events:      events,
		workers:     workers,
		callTimeout: 30 * time.Second,
	}
}

func (u *scannerUsecase) ScanAllInboxes() {
	if !u.running.CompareAndSwap(false, true) {
		log.Println("[SCANNER] Scan already in flight, skipping trigger")
		return
	}
	defer u.running.Store(false)

	log.Println("[SCANNER] Starting inbox scan cycle")

	// A missing inference key would fail every single classification the
	// same way; abort the cycle before touching any mailbox.
	if u.classifier == nil || !u.classifier.Configured() {
		log.Println("[SCANNER] Inference service not configured, aborting cycle")
		return
	}

	creds, err := u.credRepo.LoadActive(creddomain.ServiceGmail)
	if err != nil {
		log.Printf("[SCANNER] Failed to load credentials: %v", err)
		return
	}
	if len(creds) == 0 {
		log.Println("[SCANNER] No connected mailboxes, cycle finished")
		return
	}

	// Credentials touch disjoint provider sessions and disjoint rows, so
	// they can be scanned concurrently; the semaphore bounds pressure on
	// the provider and the inference service.
	sem := make(chan struct{}, u.workers)
	var wg sync.WaitGroup
	for _, ac := range creds {
		wg.Add(1)
		go func(ac *credrepo.ActiveCredential) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			u.scanCredential(ac)
		}(ac)
	}
	wg.Wait()

	log.Println("[SCANNER] Inbox scan cycle finished")
}

// scanCredential processes one user's mailbox. Every failure is contained
// here: nothing it returns or panics with may abort the cycle for other
// credentials.
func (u *scannerUsecase) scanCredential(ac *credrepo.ActiveCredential) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[SCANNER] Panic scanning user %s: %v", ac.User.Email, r)
		}
	}()

	if len(ac.Applications) == 0 {
		log.Printf("[SCANNER] User %s has no applications to track, skipping", ac.User.Email)
		return
	}

	cred := ac.Credential
	onRefresh := func(accessToken, refreshToken, expiryDate string) error {
		log.Printf("[SCANNER] Persisting refreshed token for %s", ac.User.Email)
		return u.credRepo.UpdateTokens(cred.ID, accessToken, refreshToken, expiryDate)
	}

	ctx := context.Background()
	client, err := u.mailbox.NewClient(ctx, cred.AccessToken, cred.RefreshToken, cred.ExpiryDate, onRefresh)
	if err != nil {
		log.Printf("[SCANNER] Failed to build mailbox client for %s: %v", ac.User.Email, err)
		return
	}

	listCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	ids, err := client.ListUnread(listCtx)
	cancel()
	if err != nil {
		if gmail.IsAuthError(err) {
			log.Printf("[SCANNER] Credential for %s permanently rejected, marking revoked: %v", ac.User.Email, err)
			if mErr := u.credRepo.MarkRevoked(cred.ID); mErr != nil {
				log.Printf("[SCANNER] Failed to mark credential revoked for %s: %v", ac.User.Email, mErr)
			}
		} else {
			log.Printf("[SCANNER] Transient error listing unread for %s, deferring to next cycle: %v", ac.User.Email, err)
		}
		return
	}

	if len(ids) == 0 {
		log.Printf("[SCANNER] No unread emails for %s", ac.User.Email)
		return
	}
	log.Printf("[SCANNER] Found %d unread email(s) for %s", len(ids), ac.User.Email)

	// Messages are processed sequentially per mailbox to bound concurrent
	// provider calls per account. A failed message is skipped and stays
	// unread; the next cycle picks it up again.
	for _, id := range ids {
		if err := u.processMessage(ctx, client, ac, id); err != nil {
			log.Printf("[SCANNER] Skipping message %s for %s: %v", id, ac.User.Email, err)
		}
	}
}

// processMessage runs the fetch-classify-reconcile-markread pipeline for one
// message. Returning an error leaves the message unread for the next cycle.
func (u *scannerUsecase) processMessage(ctx context.Context, client MailboxClient, ac *credrepo.ActiveCredential, msgID string) error {
	mdCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	md, err := client.FetchMetadata(mdCtx, msgID)
	cancel()
	if err != nil {
		return fmt.Errorf("fetch metadata: %w", err)
	}

	candidates := make([]ai.Candidate, 0, len(ac.Applications))
	for _, app := range ac.Applications {
		candidates = append(candidates, ai.Candidate{
			ID:        app.ID,
			Company:   app.Company,
			RoleTitle: app.RoleTitle,
		})
	}

	relCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	matchID, err := u.classifier.ClassifyRelevance(relCtx, md.Subject, md.Snippet, candidates)
	cancel()
	if err != nil {
		return fmt.Errorf("relevance classification: %w", err)
	}
	if matchID == ai.RelevanceNone {
		// Not about any tracked application; leave it unread and move on.
		return nil
	}

	app := findApplication(ac, matchID)
	if app == nil {
		return nil
	}
	log.Printf("[SCANNER] Message %s matched application at %q for %s", msgID, app.Company, ac.User.Email)

	fullCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	full, err := client.FetchFull(fullCtx, msgID)
	cancel()
	if err != nil {
		return fmt.Errorf("fetch full message: %w", err)
	}
	if full.Body == "" {
		return fmt.Errorf("no decodable plain-text body")
	}

	intCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	intent, err := u.classifier.ClassifyIntent(intCtx, full.Subject, full.Body)
	cancel()
	if err != nil {
		return fmt.Errorf("intent classification: %w", err)
	}
	log.Printf("[SCANNER] Message %s classified as %s", msgID, intent)

	if newStatus, ok := TargetStatus(intent); ok && ShouldTransition(app.Status, newStatus) {
		updated, err := u.appRepo.UpdateStatus(app.ID, newStatus)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		// Keep the in-memory snapshot current so a second match in the
		// same cycle reconciles against the new status.
		app.Status = newStatus
		log.Printf("[SCANNER] Updated application %q to status %s", app.RoleTitle, newStatus)

		// Best-effort broadcast; the status write above already committed.
		if u.events != nil {
			u.events.SendToUser(ac.User.ID, EventApplicationUpdated, map[string]interface{}{
				"user_id":     ac.User.ID,
				"application": updated,
			})
		}
	}

	// Marked read only after the classification was fully applied. If this
	// fails the message is reprocessed next cycle, which the idempotent
	// transition above makes harmless.
	mrCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	defer cancel()
	if err := client.MarkRead(mrCtx, msgID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func findApplication(ac *credrepo.ActiveCredential, id string) *appdomain.Application {
	for _, app := range ac.Applications {
		if app.ID == id {
			return app
		}
	}
	return nil
}
