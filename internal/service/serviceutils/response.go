// Package serviceutils holds the JSON envelopes shared by HTTP handlers.
package serviceutils

import (
	"github.com/labstack/echo/v4"

	"github.com/locvowork/hrrecords/internal/logger"
)

// ResponseMessage is the body of every non-data response.
type ResponseMessage struct {
	Message string `json:"message"`
}

// ResponseSuccess writes data as JSON, or a message envelope when data is nil.
func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	if data == nil {
		return c.JSON(status, ResponseMessage{Message: message})
	}
	return c.JSON(status, data)
}

// ResponseError logs err against the request and writes message to the client.
func ResponseError(c echo.Context, status int, message string, err error) error {
	ctx := c.Request().Context()
	if status >= 500 {
		logger.ErrorLog(ctx, err, "%s %s: %s", c.Request().Method, c.Path(), message)
	} else {
		logger.WarnLog(ctx, "%s %s: %s (%v)", c.Request().Method, c.Path(), message, err)
	}
	return c.JSON(status, ResponseMessage{Message: message})
}
