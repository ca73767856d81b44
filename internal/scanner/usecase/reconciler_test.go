package usecase

import (
	"testing"

	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/ai"

	"github.com/stretchr/testify/assert"
)

func TestTargetStatus(t *testing.T) {
	tests := []struct {
		intent ai.Intent
		status string
		ok     bool
	}{
		{ai.IntentInterview, appdomain.StatusInterviewing, true},
		{ai.IntentNextSteps, appdomain.StatusInterviewing, true},
		{ai.IntentRejection, appdomain.StatusRejected, true},
		{ai.IntentOffer, appdomain.StatusOffer, true},
		{ai.IntentUnknown, "", false},
	}

	for _, tt := range tests {
		status, ok := TargetStatus(tt.intent)
		assert.Equal(t, tt.ok, ok, "intent %s", tt.intent)
		assert.Equal(t, tt.status, status, "intent %s", tt.intent)
	}
}

func TestShouldTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    bool
	}{
		{"applied to interviewing", appdomain.StatusApplied, appdomain.StatusInterviewing, true},
		{"applied to rejected", appdomain.StatusApplied, appdomain.StatusRejected, true},
		{"interviewing to offer", appdomain.StatusInterviewing, appdomain.StatusOffer, true},
		{"same status is a no-op", appdomain.StatusInterviewing, appdomain.StatusInterviewing, false},
		{"rejected stays rejected on interview", appdomain.StatusRejected, appdomain.StatusInterviewing, false},
		{"offer stays on interview", appdomain.StatusOffer, appdomain.StatusInterviewing, false},
		{"accepted stays on interview", appdomain.StatusAccepted, appdomain.StatusInterviewing, false},
		{"offer can still be rejected", appdomain.StatusOffer, appdomain.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldTransition(tt.current, tt.next))
		})
	}
}
