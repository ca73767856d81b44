package delivery

import (
	"log"
	"net/http"

	"github.com/MSHIVVANI/smart-job-tracker/internal/scanner/usecase"

	"github.com/gin-gonic/gin"
)

// ScanHandler exposes the on-demand scan trigger.
type ScanHandler struct {
	scanner usecase.ScannerUsecase
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanner usecase.ScannerUsecase) *ScanHandler {
	return &ScanHandler{scanner: scanner}
}

// TriggerScan starts a scan cycle in the background and returns immediately.
func (h *ScanHandler) TriggerScan(c *gin.Context) {
	userID := c.GetString("userID")
	log.Printf("[SCANNER] Manual email scan triggered by user: %s", userID)

	go h.scanner.ScanAllInboxes()

	c.JSON(http.StatusAccepted, gin.H{"message": "Email scan has been triggered and will run in the background."})
}
