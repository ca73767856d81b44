package usecase

import (
	"errors"

	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	appdto "github.com/MSHIVVANI/smart-job-tracker/internal/application/dto"
	"github.com/MSHIVVANI/smart-job-tracker/internal/application/repository"
)

// ErrNotFound is returned when the application does not exist or belongs to
// another user.
var ErrNotFound = errors.New("application not found")

// applicationUsecase implements ApplicationUsecase interface
type applicationUsecase struct {
	appRepo repository.ApplicationRepository
}

// NewApplicationUsecase creates a new instance of applicationUsecase
func NewApplicationUsecase(appRepo repository.ApplicationRepository) ApplicationUsecase {
	return &applicationUsecase{
		appRepo: appRepo,
	}
}

func (u *applicationUsecase) List(userID string) ([]*appdomain.Application, error) {
	return u.appRepo.FindByUser(userID)
}

func (u *applicationUsecase) Create(userID string, req *appdto.CreateApplicationRequest) (*appdomain.Application, error) {
	app := &appdomain.Application{
		UserID:        userID,
		Company:       req.Company,
		RoleTitle:     req.RoleTitle,
		Status:        req.Status,
		JobURL:        req.JobURL,
		Notes:         req.Notes,
		InterviewDate: req.InterviewDate,
		OfferDeadline: req.OfferDeadline,
		FollowUpDate:  req.FollowUpDate,
	}
	if err := u.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) Update(userID, id string, req *appdto.UpdateApplicationRequest) (*appdomain.Application, error) {
	app, err := u.appRepo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrNotFound
	}

	app.Company = req.Company
	app.RoleTitle = req.RoleTitle
	if req.Status != "" {
		app.Status = req.Status
	}
	app.JobURL = req.JobURL
	app.Notes = req.Notes
	app.InterviewDate = req.InterviewDate
	app.OfferDeadline = req.OfferDeadline
	app.FollowUpDate = req.FollowUpDate

	if err := u.appRepo.Update(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) Delete(userID, id string) error {
	if err := u.appRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
