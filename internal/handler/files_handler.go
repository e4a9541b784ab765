package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/storage"
)

// FilesHandler serves stored profile images.
type FilesHandler struct {
	store storage.ObjectStore
}

// NewFilesHandler constructs a FilesHandler.
func NewFilesHandler(store storage.ObjectStore) *FilesHandler {
	return &FilesHandler{store: store}
}

// Routes returns the file download route.
func (h *FilesHandler) Routes() []Route {
	return []Route{
		{
			Method: http.MethodGet, Path: "/files/:name", Tag: "files",
			Summary: "Download a stored profile image",
			Serve:   h.Get,
		},
	}
}

// Get handles GET /files/:name requests.
func (h *FilesHandler) Get(c echo.Context) error {
	data, contentType, err := h.store.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return Error(c, http.StatusNotFound, "file not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to read file")
	}
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, contentType, data)
}
