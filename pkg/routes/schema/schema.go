package schema

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/pkg/routes/respond"
	"github.com/vukovuko/football-rag/pkg/schemainfo"
)

// Handler handles schema introspection routes
type Handler struct {
	service *schemainfo.Service
}

func NewHandler(service *schemainfo.Service) *Handler {
	return &Handler{service: service}
}

// Register registers schema routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.DescribeSchema)
	g.POST("/refresh", h.RefreshSchema)
}

// DescribeSchema returns every public table with its columns and estimated
// row counts
func (h *Handler) DescribeSchema(c echo.Context) error {
	described, err := h.service.Describe(c.Request().Context())
	if err != nil {
		return err
	}

	return respond.OK(c, described)
}

// RefreshSchema drops the cached schema so the next describe re-reads the
// catalog
func (h *Handler) RefreshSchema(c echo.Context) error {
	h.service.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"status": "refreshed"})
}
