package teams

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/internal/repositories/team"
	"github.com/vukovuko/football-rag/pkg/routes/respond"
)

// Handler handles team routes
type Handler struct {
	repo *team.Repository
}

func NewHandler(repo *team.Repository) *Handler {
	return &Handler{repo: repo}
}

// Register registers team routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.ListTeams)
	g.GET("/:id", h.GetTeam)
}

// ListTeams lists teams with their match records
func (h *Handler) ListTeams(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	page, err := listing.NewPage(limit, offset, c.QueryParam("sort"), c.QueryParam("order"), team.SortKeys(), "t.name ASC")
	if err != nil {
		return err
	}

	teams, total, err := h.repo.List(ctx, c.QueryParam("name"), page)
	if err != nil {
		return err
	}

	return respond.OKWithMeta(c, teams, respond.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
		Sort:   page.Sort,
	})
}

// GetTeam gets a team by id
func (h *Handler) GetTeam(c echo.Context) error {
	ctx := c.Request().Context()

	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "team id must be an integer")
	}

	found, err := h.repo.Get(ctx, teamID)
	if err != nil {
		return err
	}

	return respond.OK(c, found)
}
