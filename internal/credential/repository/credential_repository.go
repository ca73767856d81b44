package repository

import (
	"errors"
	"time"

	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	authdomain "github.com/MSHIVVANI/smart-job-tracker/internal/auth/domain"
	creddomain "github.com/MSHIVVANI/smart-job-tracker/internal/credential/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// credentialRepository implements CredentialRepository interface
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new instance of credentialRepository
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{
		db: db,
	}
}

func (r *credentialRepository) LoadActive(service string) ([]*ActiveCredential, error) {
	var creds []*creddomain.Credential
	err := r.db.Where("service = ? AND status = ?", service, creddomain.StatusActive).Find(&creds).Error
	if err != nil {
		return nil, err
	}

	result := make([]*ActiveCredential, 0, len(creds))
	for _, cred := range creds {
		var user authdomain.User
		if err := r.db.Where("id = ?", cred.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Orphaned credential; nothing to scan for.
				continue
			}
			return nil, err
		}

		var apps []*appdomain.Application
		if err := r.db.Where("user_id = ?", cred.UserID).Find(&apps).Error; err != nil {
			return nil, err
		}

		result = append(result, &ActiveCredential{
			Credential:   cred,
			User:         &user,
			Applications: apps,
		})
	}
	return result, nil
}

func (r *credentialRepository) FindByUserAndService(userID, service string) (*creddomain.Credential, error) {
	var cred creddomain.Credential
	err := r.db.Where("user_id = ? AND service = ?", userID, service).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Upsert(cred *creddomain.Credential) error {
	existing, err := r.FindByUserAndService(cred.UserID, cred.Service)
	if err != nil {
		return err
	}

	if existing == nil {
		cred.ID = uuid.New().String()
		cred.Status = creddomain.StatusActive
		cred.CreatedAt = time.Now()
		cred.UpdatedAt = time.Now()
		return r.db.Create(cred).Error
	}

	existing.AccessToken = cred.AccessToken
	// Google omits the refresh token when the user re-consents and one is
	// already outstanding; keep the stored one in that case.
	if cred.RefreshToken != "" {
		existing.RefreshToken = cred.RefreshToken
	}
	existing.ExpiryDate = cred.ExpiryDate
	existing.Status = creddomain.StatusActive
	existing.UpdatedAt = time.Now()
	return r.db.Save(existing).Error
}

func (r *credentialRepository) UpdateTokens(id, accessToken, refreshToken, expiryDate string) error {
	updates := map[string]interface{}{
		"access_token": accessToken,
		"expiry_date":  expiryDate,
		"updated_at":   time.Now(),
	}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	return r.db.Model(&creddomain.Credential{}).Where("id = ?", id).Updates(updates).Error
}

func (r *credentialRepository) MarkRevoked(id string) error {
	return r.db.Model(&creddomain.Credential{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": creddomain.StatusRevoked, "updated_at": time.Now()}).Error
}
