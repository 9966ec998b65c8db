package query

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/pkg/routes/respond"
	"github.com/vukovuko/football-rag/pkg/sandbox"
)

// Request is an ad-hoc read-only SQL query.
type Request struct {
	Query string `json:"query" validate:"required"`
}

// Handler handles ad-hoc query routes
type Handler struct {
	executor *sandbox.Executor
}

func NewHandler(executor *sandbox.Executor) *Handler {
	return &Handler{executor: executor}
}

// Register registers query routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.RunQuery)
}

// RunQuery executes one SELECT against the read-only sandbox
func (h *Handler) RunQuery(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "request body must be JSON with a query field")
	}
	if err := c.Validate(&req); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	result, err := h.executor.Execute(c.Request().Context(), req.Query)
	if err != nil {
		return err
	}

	if result.Violation != nil {
		return respond.Fail(c, http.StatusBadRequest, "query rejected", map[string]any{
			"rule":   result.Violation.Rule,
			"detail": result.Violation.Detail,
		})
	}
	if result.Error != "" {
		return respond.Fail(c, http.StatusBadRequest, "query failed", map[string]any{
			"message": result.Error,
		})
	}

	return respond.OK(c, result)
}
