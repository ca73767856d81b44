package delivery

import (
	"errors"
	"net/http"

	appdto "github.com/MSHIVVANI/smart-job-tracker/internal/application/dto"
	"github.com/MSHIVVANI/smart-job-tracker/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles application tracking endpoints.
type ApplicationHandler struct {
	appUsecase usecase.ApplicationUsecase
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appUsecase usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{appUsecase: appUsecase}
}

func (h *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	apps, err := h.appUsecase.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req appdto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appUsecase.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create application"})
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	var req appdto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.appUsecase.Update(userID, id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update application"})
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	id := c.Param("id")

	if err := h.appUsecase.Delete(userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete application"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted"})
}
