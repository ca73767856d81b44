package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/MSHIVVANI/smart-job-tracker/pkg/groq"
)

// Truncation caps keep prompts inside the model context and the response
// deterministic for long marketing-style emails.
const (
	maxSnippetLen = 500
	maxBodyLen    = 4000
)

// GroqClassifier implements ClassifierService using the Groq chat API.
type GroqClassifier struct {
	client *groq.Client
}

// NewGroqClassifier creates a new Groq-backed classifier.
func NewGroqClassifier(client *groq.Client) *GroqClassifier {
	return &GroqClassifier{client: client}
}

func (g *GroqClassifier) Configured() bool {
	return g.client.Configured()
}

// ClassifyRelevance implements ClassifierService. The prompt enumerates every
// candidate by id so the model answers with an exact id or NONE; subject-line
// heuristics (company substring matching) are deliberately not used here
// because they miss reply threads and ambiguous company names.
func (g *GroqClassifier) ClassifyRelevance(ctx context.Context, subject, snippet string, candidates []Candidate) (string, error) {
	if len(candidates) == 0 {
		return RelevanceNone, nil
	}

	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen]
	}

	var list strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&list, "- id: %s | company: %s | role: %s\n", c.ID, c.Company, c.RoleTitle)
	}

	prompt := fmt.Sprintf(`You match emails to job applications.

Here are the job applications a candidate is tracking:
%s
Here is an email:
Subject: %s
Snippet: %s

If this email is about exactly one of the applications above (from the company, a recruiter, or an application system acting for it), reply with that application's id and nothing else.
If it is about none of them, reply with NONE and nothing else.`, list.String(), subject, snippet)

	raw, err := g.client.ChatCompletion(ctx, prompt, 0, 50)
	if err != nil {
		return "", err
	}

	answer := strings.Trim(strings.TrimSpace(raw), "\"'`")
	for _, c := range candidates {
		if answer == c.ID {
			return c.ID, nil
		}
	}
	// Anything that is not an exact candidate id is a non-match, including
	// chatty answers the prompt failed to suppress.
	return RelevanceNone, nil
}

// ClassifyIntent implements ClassifierService.
func (g *GroqClassifier) ClassifyIntent(ctx context.Context, subject, body string) (Intent, error) {
	if len(body) > maxBodyLen {
		body = body[:maxBodyLen]
	}

	prompt := fmt.Sprintf(`You classify emails sent to a job candidate about an application.

Subject: %s

Body:
%s

Classify the email as exactly one of these labels:
REJECTION - the candidate is not moving forward
INTERVIEW - an interview is being scheduled or confirmed
OFFER - a job offer is being extended
NEXT_STEPS - the process continues (assessments, follow-ups, scheduling requests)
UNKNOWN - none of the above

Reply with the label only, no other text.`, subject, body)

	raw, err := g.client.ChatCompletion(ctx, prompt, 0, 10)
	if err != nil {
		return IntentUnknown, err
	}
	return NormalizeIntent(raw), nil
}

// NormalizeIntent maps raw model output onto the closed intent set. The model
// is not guaranteed to return exactly the requested token, so the output is
// trimmed, uppercased and stripped of anything outside A-Z and underscore
// before a strict comparison; unrecognized results fall back to UNKNOWN.
func NormalizeIntent(raw string) Intent {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range cleaned {
		if (r >= 'A' && r <= 'Z') || r == '_' {
			b.WriteRune(r)
		}
	}

	switch Intent(b.String()) {
	case IntentRejection:
		return IntentRejection
	case IntentInterview:
		return IntentInterview
	case IntentOffer:
		return IntentOffer
	case IntentNextSteps:
		return IntentNextSteps
	default:
		return IntentUnknown
	}
}
