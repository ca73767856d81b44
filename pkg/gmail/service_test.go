package gmail

import (
	"encoding/base64"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	gmailapi "google.golang.org/api/gmail/v1"
)

type staticTokenSource struct {
	tok *oauth2.Token
	err error
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) { return s.tok, s.err }

func TestNotifyTokenSourcePersistsRotatedToken(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	rotated := &oauth2.Token{
		AccessToken:  "new-access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}

	var gotAccess, gotRefresh, gotExpiry string
	src := &notifyTokenSource{
		src:     &staticTokenSource{tok: rotated},
		current: &oauth2.Token{AccessToken: "old-access", RefreshToken: "refresh"},
		onUpdate: func(accessToken, refreshToken, expiryDate string) error {
			gotAccess, gotRefresh, gotExpiry = accessToken, refreshToken, expiryDate
			return nil
		},
	}

	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "new-access", tok.AccessToken)
	assert.Equal(t, "new-access", gotAccess)
	assert.Empty(t, gotRefresh, "unchanged refresh token must not be rewritten")
	assert.Equal(t, strconv.FormatInt(expiry.UnixMilli(), 10), gotExpiry)
}

func TestNotifyTokenSourcePersistsNewRefreshToken(t *testing.T) {
	rotated := &oauth2.Token{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		Expiry:       time.Now().Add(time.Hour),
	}

	var gotRefresh string
	src := &notifyTokenSource{
		src:     &staticTokenSource{tok: rotated},
		current: &oauth2.Token{AccessToken: "old-access", RefreshToken: "old-refresh"},
		onUpdate: func(accessToken, refreshToken, expiryDate string) error {
			gotRefresh = refreshToken
			return nil
		},
	}

	_, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "new-refresh", gotRefresh)
}

func TestNotifyTokenSourcePersistFailureAbortsCall(t *testing.T) {
	src := &notifyTokenSource{
		src: &staticTokenSource{tok: &oauth2.Token{
			AccessToken: "new-access",
			Expiry:      time.Now().Add(time.Hour),
		}},
		current: &oauth2.Token{AccessToken: "old-access"},
		onUpdate: func(accessToken, refreshToken, expiryDate string) error {
			return errors.New("database unavailable")
		},
	}

	_, err := src.Token()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist refreshed token")
}

func TestNotifyTokenSourceSkipsPersistWhenUnchanged(t *testing.T) {
	tok := &oauth2.Token{AccessToken: "access", Expiry: time.Now().Add(time.Hour)}
	src := &notifyTokenSource{
		src:     &staticTokenSource{tok: tok},
		current: tok,
		onUpdate: func(accessToken, refreshToken, expiryDate string) error {
			t.Error("persist must not run for an unchanged token")
			return nil
		},
	}

	got, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
}

func encodeBody(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestGetPlainTextBody(t *testing.T) {
	t.Run("single part", func(t *testing.T) {
		payload := &gmailapi.MessagePart{
			MimeType: "text/plain",
			Body:     &gmailapi.MessagePartBody{Data: encodeBody("hello")},
		}
		assert.Equal(t, "hello", getPlainTextBody(payload))
	})

	t.Run("nested multipart", func(t *testing.T) {
		payload := &gmailapi.MessagePart{
			MimeType: "multipart/mixed",
			Parts: []*gmailapi.MessagePart{
				{
					MimeType: "multipart/alternative",
					Parts: []*gmailapi.MessagePart{
						{
							MimeType: "text/plain",
							Body:     &gmailapi.MessagePartBody{Data: encodeBody("plain body")},
						},
						{
							MimeType: "text/html",
							Body:     &gmailapi.MessagePartBody{Data: encodeBody("<p>html body</p>")},
						},
					},
				},
			},
		}
		assert.Equal(t, "plain body", getPlainTextBody(payload))
	})

	t.Run("html only", func(t *testing.T) {
		payload := &gmailapi.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmailapi.MessagePart{
				{
					MimeType: "text/html",
					Body:     &gmailapi.MessagePartBody{Data: encodeBody("<p>html</p>")},
				},
			},
		}
		assert.Empty(t, getPlainTextBody(payload))
	})

	t.Run("nil payload", func(t *testing.T) {
		assert.Empty(t, getPlainTextBody(nil))
	})
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid_grant retrieve error", &oauth2.RetrieveError{
			Response:  nil,
			ErrorCode: "invalid_grant",
		}, true},
		{"unauthorized api error", &googleapi.Error{Code: 401}, true},
		{"wrapped unauthorized", errors.Join(errors.New("list failed"), &googleapi.Error{Code: 401}), true},
		{"rate limit", &googleapi.Error{Code: 429}, false},
		{"server error", &googleapi.Error{Code: 500}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthError(tt.err))
		})
	}
}
