// Package respond implements the response envelope every endpoint shares:
// {success, data, meta?} on success, {success: false, error, details?} on
// failure.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Meta carries pagination and other collection metadata.
type Meta struct {
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
	Total  int64  `json:"total,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// Envelope is the shared response shape.
type Envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Meta    *Meta          `json:"meta,omitempty"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// OK writes a success envelope.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKWithMeta writes a success envelope with collection metadata.
func OKWithMeta(c echo.Context, data any, meta Meta) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Meta: &meta})
}

// Fail writes a failure envelope. Details may be nil.
func Fail(c echo.Context, status int, message string, details map[string]any) error {
	return c.JSON(status, Envelope{Success: false, Error: message, Details: details})
}
