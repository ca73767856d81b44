package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MSHIVVANI/smart-job-tracker/pkg/groq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want Intent
	}{
		{"INTERVIEW", IntentInterview},
		{" interview.\n", IntentInterview},
		{"\"OFFER\"", IntentOffer},
		{"next_steps", IntentNextSteps},
		{"REJECTION", IntentRejection},
		{"UNKNOWN", IntentUnknown},
		{"", IntentUnknown},
		{"Looks like a REJECTION, sorry", IntentUnknown},
		{"INTERVIEW_MAYBE", IntentUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIntent(tt.raw), "raw %q", tt.raw)
	}
}

// newTestClassifier returns a classifier whose model always answers with the
// given content.
func newTestClassifier(t *testing.T, content string) (*GroqClassifier, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
	client := groq.NewClient("test-key", "test-model")
	client.BaseURL = server.URL
	return NewGroqClassifier(client), server
}

func TestClassifyRelevanceMatch(t *testing.T) {
	classifier, server := newTestClassifier(t, "app-42")
	defer server.Close()

	candidates := []Candidate{
		{ID: "app-41", Company: "Acme", RoleTitle: "Engineer"},
		{ID: "app-42", Company: "Globex", RoleTitle: "Analyst"},
	}
	got, err := classifier.ClassifyRelevance(context.Background(), "Globex interview", "snippet", candidates)
	require.NoError(t, err)
	assert.Equal(t, "app-42", got)
}

func TestClassifyRelevanceQuotedAnswer(t *testing.T) {
	classifier, server := newTestClassifier(t, "\"app-42\"\n")
	defer server.Close()

	got, err := classifier.ClassifyRelevance(context.Background(), "subject", "snippet", []Candidate{
		{ID: "app-42", Company: "Globex", RoleTitle: "Analyst"},
	})
	require.NoError(t, err)
	assert.Equal(t, "app-42", got)
}

func TestClassifyRelevanceChattyAnswerIsNone(t *testing.T) {
	classifier, server := newTestClassifier(t, "I believe this matches app-42 because the sender is Globex.")
	defer server.Close()

	got, err := classifier.ClassifyRelevance(context.Background(), "subject", "snippet", []Candidate{
		{ID: "app-42", Company: "Globex", RoleTitle: "Analyst"},
	})
	require.NoError(t, err)
	assert.Equal(t, RelevanceNone, got)
}

func TestClassifyRelevanceNoCandidatesSkipsCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected with zero candidates")
	}))
	defer server.Close()

	client := groq.NewClient("test-key", "")
	client.BaseURL = server.URL
	classifier := NewGroqClassifier(client)

	got, err := classifier.ClassifyRelevance(context.Background(), "subject", "snippet", nil)
	require.NoError(t, err)
	assert.Equal(t, RelevanceNone, got)
}

func TestClassifyIntentNormalizesAnswer(t *testing.T) {
	classifier, server := newTestClassifier(t, " offer.\n")
	defer server.Close()

	got, err := classifier.ClassifyIntent(context.Background(), "Your offer", "We are pleased to offer you the role.")
	require.NoError(t, err)
	assert.Equal(t, IntentOffer, got)
}

func TestConfiguredFollowsClient(t *testing.T) {
	assert.False(t, NewGroqClassifier(groq.NewClient("", "")).Configured())
	assert.True(t, NewGroqClassifier(groq.NewClient("key", "")).Configured())
}
