package repository

import (
	"errors"
	"time"

	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrApplicationNotFound is returned when a status update targets a row that
// no longer exists.
var ErrApplicationNotFound = errors.New("application not found")

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new instance of applicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{
		db: db,
	}
}

func (r *applicationRepository) Create(app *appdomain.Application) error {
	app.ID = uuid.New().String()
	if app.Status == "" {
		app.Status = appdomain.StatusApplied
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	return r.db.Create(app).Error
}

func (r *applicationRepository) FindByUser(userID string) ([]*appdomain.Application, error) {
	var apps []*appdomain.Application
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) FindByID(id, userID string) (*appdomain.Application, error) {
	var app appdomain.Application
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Update(app *appdomain.Application) error {
	app.UpdatedAt = time.Now()
	return r.db.Save(app).Error
}

func (r *applicationRepository) Delete(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&appdomain.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *applicationRepository) UpdateStatus(id, status string) (*appdomain.Application, error) {
	res := r.db.Model(&appdomain.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrApplicationNotFound
	}

	var app appdomain.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}
