package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/pkg/appctx"
)

func Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := req.Context()
			ctx = appctx.SetRequestID(ctx, requestID)
			ctx = appctx.SetRoute(ctx, req.URL.Path)

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}
