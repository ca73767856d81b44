package usecase

import (
	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/ai"
)

// intentStatus maps a classified intent to the application status it implies.
// UNKNOWN has no entry: it never moves an application.
var intentStatus = map[ai.Intent]string{
	ai.IntentInterview: appdomain.StatusInterviewing,
	ai.IntentNextSteps: appdomain.StatusInterviewing,
	ai.IntentRejection: appdomain.StatusRejected,
	ai.IntentOffer:     appdomain.StatusOffer,
}

// terminalStatuses are decided outcomes. A later INTERVIEW or NEXT_STEPS
// classification must not drag an application back out of them; classifier
// output can oscillate across cycles on ambiguous emails.
var terminalStatuses = map[string]bool{
	appdomain.StatusRejected: true,
	appdomain.StatusOffer:    true,
	appdomain.StatusAccepted: true,
}

// TargetStatus returns the status an intent transitions to, if any.
func TargetStatus(intent ai.Intent) (string, bool) {
	status, ok := intentStatus[intent]
	return status, ok
}

// ShouldTransition reports whether moving from current to next is an
// effective transition. Equal statuses are a no-op, which keeps repeated
// classification of the same message idempotent (no redundant write, no
// duplicate notification).
func ShouldTransition(current, next string) bool {
	if next == current {
		return false
	}
	if terminalStatuses[current] && next == appdomain.StatusInterviewing {
		return false
	}
	return true
}
