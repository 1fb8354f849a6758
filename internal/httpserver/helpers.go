package httpserver

import (
	"errors"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_backend/internal/upload"
)

// fileFromForm extracts an optional uploaded file from the multipart form.
// An absent file (or a non-multipart request) yields (nil, nil, nil).
func fileFromForm(c echo.Context, field string) (*upload.File, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// both http.ErrMissingFile and a non-multipart body mean "no upload"
		return nil, nil, nil
	}

	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &upload.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     src,
	}, src, nil
}

func userIDFromContext(c echo.Context) (uint, error) {
	v := c.Get("userID")
	id, ok := v.(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}
