package usecase

import (
	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	appdto "github.com/MSHIVVANI/smart-job-tracker/internal/application/dto"
)

// ApplicationUsecase defines the interface for application tracking use cases
type ApplicationUsecase interface {
	List(userID string) ([]*appdomain.Application, error)
	Create(userID string, req *appdto.CreateApplicationRequest) (*appdomain.Application, error)
	Update(userID, id string, req *appdto.UpdateApplicationRequest) (*appdomain.Application, error)
	Delete(userID, id string) error
}
