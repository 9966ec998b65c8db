package middleware

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/pkg/appctx"
	"github.com/vukovuko/football-rag/pkg/routes/respond"
	"github.com/vukovuko/football-rag/pkg/tracing"
)

// Error translates unhandled errors into the shared response envelope.
// Internal error details are only exposed outside production.
func Error(logger ectologger.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		ctx := c.Request().Context()
		logger.WithContext(ctx).WithError(err).Error("api is returning an error")
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal Server Error"
		details := map[string]any{
			"request_id": appctx.GetRequestID(ctx),
		}
		if traceID := tracing.GetTraceID(ctx); traceID != "" {
			details["trace_id"] = traceID
		}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		if httperror.IsHTTPError(err) {
			httperr := httperror.ToHTTPError(err)
			code = httperror.GetStatusCode(err)
			message = httperr.Error()
			for key, value := range httperr.Meta {
				details[key] = value
			}
		} else if !production {
			details["internal"] = err.Error()
		}

		_ = respond.Fail(c, code, message, details)
	}
}
