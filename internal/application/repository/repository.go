package repository

import appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"

// ApplicationRepository defines the interface for application persistence.
// UpdateStatus is the only write the scan pipeline performs; it returns the
// updated row so callers can broadcast it.
type ApplicationRepository interface {
	Create(app *appdomain.Application) error
	FindByUser(userID string) ([]*appdomain.Application, error)
	FindByID(id, userID string) (*appdomain.Application, error)
	Update(app *appdomain.Application) error
	Delete(id, userID string) error
	UpdateStatus(id, status string) (*appdomain.Application, error)
}
