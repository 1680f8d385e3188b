package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
)

// writeError maps the domain taxonomy onto the client-facing status
// codes: 404 for not-found, 500 for storage faults, 400 for everything
// else, with the message passed through.
func writeError(c echo.Context, err error) error {
	status := http.StatusBadRequest
	switch domainErrors.KindOf(err) {
	case domainErrors.KindNotFound:
		status = http.StatusNotFound
	case domainErrors.KindStorage:
		status = http.StatusInternalServerError
	}

	message := err.Error()
	var domainErr *domainErrors.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	return c.JSON(status, echo.Map{"error": message})
}
