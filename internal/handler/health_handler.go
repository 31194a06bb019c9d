package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/employee-search/api/internal/dto"
)

// HealthHandler reports static liveness metadata.
type HealthHandler struct {
	provider string
	now      func() time.Time
}

// NewHealthHandler constructs a health handler for the active provider.
func NewHealthHandler(provider string) *HealthHandler {
	return &HealthHandler{provider: provider, now: time.Now}
}

// Health handles GET / and GET /healthz.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Message:   "LinkedIn Employee Data Extractor API is running!",
		Status:    "healthy",
		Provider:  h.provider,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
