package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/artifact"
)

// UploadsHandler serves stored QR codes and payment proofs.
type UploadsHandler struct {
	Files *artifact.FileStore
}

func NewUploadsHandler(files *artifact.FileStore) *UploadsHandler {
	return &UploadsHandler{Files: files}
}

func (h *UploadsHandler) Serve(c echo.Context) error {
	path, err := h.Files.Resolve(c.Param("kind"), c.Param("file"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "file not found"})
	}
	return c.File(path)
}
