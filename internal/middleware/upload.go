package middleware

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadedFile is the multipart file extracted by FileUpload.
type UploadedFile struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// UploadFromContext returns the file stored by FileUpload.
func UploadFromContext(c echo.Context) (UploadedFile, bool) {
	f, ok := c.Get(ContextKeyUpload).(UploadedFile)
	return f, ok
}

// FileUpload reads the multipart field into memory before the handler runs. Requests without the
// field are rejected with 400 and files larger than maxBytes with 413.
func FileUpload(field string, maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if maxBytes > 0 {
				// multipart framing adds a little on top of the file itself
				c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxBytes+1<<20)
			}

			header, err := c.FormFile(field)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					return reject(c, http.StatusRequestEntityTooLarge, "file too large")
				}
				return reject(c, http.StatusBadRequest, fmt.Sprintf("missing %s file", field))
			}
			if maxBytes > 0 && header.Size > maxBytes {
				return reject(c, http.StatusRequestEntityTooLarge, "file too large")
			}

			file, err := header.Open()
			if err != nil {
				return reject(c, http.StatusBadRequest, "unable to open file")
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				return reject(c, http.StatusBadRequest, "unable to read file")
			}

			c.Set(ContextKeyUpload, UploadedFile{
				Name:        header.Filename,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
			return next(c)
		}
	}
}
