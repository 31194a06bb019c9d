package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/employee-search/api/internal/dto"
	"github.com/octobees/employee-search/api/internal/people"
)

// Searcher runs one employee search.
type Searcher interface {
	Run(ctx context.Context, params people.SearchParams, apiKey string) (people.SearchResult, error)
}

// SearchHandler serves the employee search endpoint.
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler constructs a search handler.
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// Search handles POST /api/search-employees.
func (h *SearchHandler) Search(c echo.Context) error {
	var req dto.SearchEmployeesRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload", "")
	}

	params := people.NewSearchParams(req.SearchParams.Company, req.SearchParams.JobTitle, req.SearchParams.Location)
	result, err := h.searcher.Run(c.Request().Context(), params, req.APIKey)
	if err != nil {
		return SearchError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
