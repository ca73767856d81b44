package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	authdto "github.com/MSHIVVANI/smart-job-tracker/internal/auth/dto"
	creddomain "github.com/MSHIVVANI/smart-job-tracker/internal/credential/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Read-only plus modify: the scanner clears the unread flag after processing.
var gmailScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.modify",
}

func (u *authUsecase) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     u.config.GoogleClientID,
		ClientSecret: u.config.GoogleClientSecret,
		RedirectURL:  u.config.GoogleRedirectURI,
		Scopes:       gmailScopes,
		Endpoint:     google.Endpoint,
	}
}

// GoogleAuthURL builds the consent screen URL for linking the user's Gmail
// account. The state parameter is a short-lived signed token carrying the
// user id, verified again on callback.
func (u *authUsecase) GoogleAuthURL(userID string) (string, error) {
	state, err := u.signState(userID)
	if err != nil {
		return "", err
	}

	// access_type=offline and prompt=consent are required for Google to
	// issue a refresh token.
	url := u.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, nil
}

// HandleGoogleCallback exchanges the one-time code for tokens and stores the
// credential, resetting a previously revoked connection to active.
func (u *authUsecase) HandleGoogleCallback(code, state string) error {
	userID, err := u.verifyState(state)
	if err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	token, err := u.oauthConfig().Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	// Expiry is stored as an opaque millisecond string so it round-trips
	// exactly back into the provider client.
	expiry := ""
	if !token.Expiry.IsZero() {
		expiry = strconv.FormatInt(token.Expiry.UnixMilli(), 10)
	}

	return u.credRepo.Upsert(&creddomain.Credential{
		UserID:       userID,
		Service:      creddomain.ServiceGmail,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiryDate:   expiry,
	})
}

// ConnectionStatus reports the Gmail connection state for the settings UI.
// A revoked credential surfaces here; there is no push notification for it.
func (u *authUsecase) ConnectionStatus(userID string) (*authdto.ConnectionStatusResponse, error) {
	cred, err := u.credRepo.FindByUserAndService(userID, creddomain.ServiceGmail)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return &authdto.ConnectionStatusResponse{IsConnected: false, Status: "disconnected"}, nil
	}
	return &authdto.ConnectionStatusResponse{
		IsConnected: cred.Status == creddomain.StatusActive,
		Status:      cred.Status,
	}, nil
}

func (u *authUsecase) signState(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": "gmail_connect",
		"exp":     time.Now().Add(10 * time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) verifyState(state string) (string, error) {
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired state token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid state claims")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "gmail_connect" {
		return "", errors.New("unexpected state purpose")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("state missing user id")
	}
	return userID, nil
}
