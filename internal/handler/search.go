package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/search"
)

// SearchHandler returns mock travel offers.  Nothing is persisted.
type SearchHandler struct {
	Gen *search.Generator
}

func NewSearchHandler(gen *search.Generator) *SearchHandler {
	return &SearchHandler{Gen: gen}
}

type searchReq struct {
	From string `json:"from" query:"from"`
	To   string `json:"to" query:"to"`
	Date string `json:"date" query:"date"`
}

// Search accepts the route either as a JSON body (POST) or as query
// parameters (GET).
func (h *SearchHandler) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	return c.JSON(http.StatusOK, h.Gen.Search(req.From, req.To, req.Date))
}
