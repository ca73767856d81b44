package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// TokenRefreshFunc persists refreshed token material. It is invoked
// synchronously before the provider request that triggered the refresh is
// sent; returning an error aborts that request. Losing a refreshed token is
// unrecoverable once the provider invalidates the old one, so persistence
// must come first.
type TokenRefreshFunc func(accessToken, refreshToken, expiryDate string) error

// Metadata is the cheap per-message view used by the relevance stage.
type Metadata struct {
	Subject string
	Snippet string
}

// Message is the full view used by the intent stage. Body is the decoded
// text/plain part, or empty when the message has none.
type Message struct {
	Subject string
	Body    string
}

// Service builds per-credential Gmail clients.
type Service struct {
	clientID     string
	clientSecret string
}

// NewService creates a new Gmail service factory.
func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	onUpdate TokenRefreshFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.onUpdate != nil && s.current.AccessToken != t.AccessToken {
		expiry := strconv.FormatInt(t.Expiry.UnixMilli(), 10)
		// The provider may omit the refresh token on refresh.
		refresh := ""
		if t.RefreshToken != s.current.RefreshToken {
			refresh = t.RefreshToken
		}
		if err := s.onUpdate(t.AccessToken, refresh, expiry); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.current = t
	}
	return t, nil
}

// Client is a Gmail connection bound to one credential's tokens.
type Client struct {
	srv *gmail.Service
}

// NewClient builds a Gmail client for the given token material. expiryDate is
// the stored opaque millisecond-epoch string; if it cannot be parsed the
// access token is treated as expired so the first call refreshes it.
func (s *Service) NewClient(ctx context.Context, accessToken, refreshToken, expiryDate string, onRefresh TokenRefreshFunc) (*Client, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	if ms, err := strconv.ParseInt(expiryDate, 10, 64); err == nil {
		token.Expiry = time.UnixMilli(ms)
	} else if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	wrapped := &notifyTokenSource{
		src:      config.TokenSource(ctx, token),
		current:  token,
		onUpdate: onRefresh,
	}

	httpClient := oauth2.NewClient(ctx, wrapped)
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return &Client{srv: srv}, nil
}

// ListUnread returns the ids of every unread message in the mailbox.
func (c *Client) ListUnread(ctx context.Context) ([]string, error) {
	user := "me"
	var ids []string
	pageToken := ""

	for {
		call := c.srv.Users.Messages.List(user).Q("is:unread").Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list unread messages: %w", err)
		}
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return ids, nil
}

// FetchMetadata retrieves a message's subject and snippet without the body.
func (c *Client) FetchMetadata(ctx context.Context, id string) (*Metadata, error) {
	msg, err := c.srv.Users.Messages.Get("me", id).
		Format("metadata").MetadataHeaders("Subject").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message metadata: %w", err)
	}
	return &Metadata{
		Subject: getHeader(msg.Payload.Headers, "Subject"),
		Snippet: msg.Snippet,
	}, nil
}

// FetchFull retrieves a message and decodes its plain-text body.
func (c *Client) FetchFull(ctx context.Context, id string) (*Message, error) {
	msg, err := c.srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve message: %w", err)
	}
	return &Message{
		Subject: getHeader(msg.Payload.Headers, "Subject"),
		Body:    getPlainTextBody(msg.Payload),
	}, nil
}

// MarkRead removes the UNREAD label from a message.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	modifyReq := &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}
	_, err := c.srv.Users.Messages.Modify("me", id, modifyReq).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to mark message as read: %w", err)
	}
	return nil
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

func getPlainTextBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	// Single-part messages carry the body on the payload itself.
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data)
		}
	}

	var plain string
	var findBody func(parts []*gmail.MessagePart)
	findBody = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if plain != "" {
				return
			}
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
					plain = string(data)
					return
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)
	return plain
}
