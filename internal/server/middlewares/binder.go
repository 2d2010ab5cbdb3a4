package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/lostfound/internal/lferror"
)

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
	mediatypes      []string
}

// NewBinder returns a wrapp of the default binder implementation with extra checks.
// Bodies are required and must be JSON or form encoded.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
		mediatypes: []string{
			echo.MIMEApplicationJSON,
			echo.MIMEApplicationForm,
			echo.MIMEMultipartForm,
		},
	}
}

// Bind implements the echo.Bind interface.
func (b *binder) Bind(i any, c echo.Context) (err error) {
	req := c.Request()
	if !b.methodsWithBody[req.Method] {
		return b.DefaultBinder.Bind(i, c)
	}

	if req.ContentLength == 0 {
		return lferror.NewWithTagCode(http.StatusBadRequest, "empty-body", "Request body can't be empty.")
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	for _, mediatype := range b.mediatypes {
		if strings.HasPrefix(ctype, mediatype) {
			return b.DefaultBinder.Bind(i, c)
		}
	}
	return lferror.NewWithTagCode(http.StatusUnsupportedMediaType, "unsupported-media-type", "Unsupported content type.")
}
