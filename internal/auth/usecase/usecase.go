package usecase

import (
	authdomain "github.com/MSHIVVANI/smart-job-tracker/internal/auth/domain"
	authdto "github.com/MSHIVVANI/smart-job-tracker/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication use cases
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	// Mailbox connection (Google OAuth consent flow)
	GoogleAuthURL(userID string) (string, error)
	HandleGoogleCallback(code, state string) error
	ConnectionStatus(userID string) (*authdto.ConnectionStatusResponse, error)
}
