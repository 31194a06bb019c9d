package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/employee-search/api/internal/dto"
	"github.com/octobees/employee-search/api/internal/service"
)

// Error sends an error response in the {error, details} shape clients expect.
func Error(c echo.Context, status int, message, details string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, dto.ErrorResponse{Error: message, Details: details})
}

// SearchError renders a search failure. Errors that are not normalized are treated as
// upstream failures.
func SearchError(c echo.Context, err error) error {
	var nerr *service.NormalizedError
	if !errors.As(err, &nerr) {
		nerr = service.Classify(err)
	}
	return Error(c, nerr.HTTPStatus, nerr.Message, nerr.Details)
}
