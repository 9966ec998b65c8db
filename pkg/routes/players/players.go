package players

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/internal/repositories/player"
	"github.com/vukovuko/football-rag/pkg/routes/respond"
)

// Handler handles player routes
type Handler struct {
	repo *player.Repository
}

func NewHandler(repo *player.Repository) *Handler {
	return &Handler{repo: repo}
}

// Register registers player routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.ListPlayers)
	g.GET("/:id", h.GetPlayer)
	g.GET("/:id/appearances", h.ListAppearances)
}

// ListPlayers lists players with optional filters and aggregate sorting
func (h *Handler) ListPlayers(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	page, err := listing.NewPage(limit, offset, c.QueryParam("sort"), c.QueryParam("order"), player.SortKeys(), "name ASC")
	if err != nil {
		return err
	}

	filter := player.Filter{Name: c.QueryParam("name")}
	if v := c.QueryParam("team_id"); v != "" {
		filter.TeamID, err = strconv.Atoi(v)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "team_id must be an integer")
		}
	}
	if v := c.QueryParam("min_goals"); v != "" {
		filter.MinGoals, err = strconv.Atoi(v)
		if err != nil {
			return httperror.NewHTTPError(http.StatusBadRequest, "min_goals must be an integer")
		}
	}

	players, total, err := h.repo.List(ctx, filter, page)
	if err != nil {
		return err
	}

	return respond.OKWithMeta(c, players, respond.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
		Sort:   page.Sort,
	})
}

// GetPlayer gets a player by id
func (h *Handler) GetPlayer(c echo.Context) error {
	ctx := c.Request().Context()

	playerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "player id must be an integer")
	}

	found, err := h.repo.Get(ctx, playerID)
	if err != nil {
		return err
	}

	return respond.OK(c, found)
}

// ListAppearances lists a player's matches, most recent first
func (h *Handler) ListAppearances(c echo.Context) error {
	ctx := c.Request().Context()

	playerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "player id must be an integer")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	page, err := listing.NewPage(limit, offset, "", "", nil, "m.match_date DESC")
	if err != nil {
		return err
	}

	appearances, err := h.repo.Appearances(ctx, playerID, page)
	if err != nil {
		return err
	}

	return respond.OKWithMeta(c, appearances, respond.Meta{Limit: page.Limit, Offset: page.Offset})
}
