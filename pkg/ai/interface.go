package ai

import "context"

// RelevanceNone is the sentinel returned when an email matches none of the
// candidate applications.
const RelevanceNone = "NONE"

// Intent is the hiring-process meaning of a matched email.
type Intent string

const (
	IntentRejection Intent = "REJECTION"
	IntentInterview Intent = "INTERVIEW"
	IntentOffer     Intent = "OFFER"
	IntentNextSteps Intent = "NEXT_STEPS"
	IntentUnknown   Intent = "UNKNOWN"
)

// Candidate is one open application offered to the relevance classifier.
type Candidate struct {
	ID        string
	Company   string
	RoleTitle string
}

// ClassifierService is the interface for the two-stage email classification.
// Implement this interface to add new inference providers.
type ClassifierService interface {
	// ClassifyRelevance decides which candidate application (if any) the
	// email concerns, from its subject and snippet alone. Returns the
	// candidate id or RelevanceNone.
	ClassifyRelevance(ctx context.Context, subject, snippet string, candidates []Candidate) (string, error)
	// ClassifyIntent labels a matched email's full content with exactly one
	// Intent.
	ClassifyIntent(ctx context.Context, subject, body string) (Intent, error)
	// Configured reports whether the underlying provider is usable at all;
	// when false a scan cycle aborts before touching any mailbox.
	Configured() bool
}
