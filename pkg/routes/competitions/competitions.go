package competitions

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/vukovuko/football-rag/internal/repositories/competition"
	"github.com/vukovuko/football-rag/internal/repositories/listing"
	"github.com/vukovuko/football-rag/pkg/routes/respond"
)

// Handler handles competition routes
type Handler struct {
	repo *competition.Repository
}

func NewHandler(repo *competition.Repository) *Handler {
	return &Handler{repo: repo}
}

// Register registers competition routes
func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.ListCompetitions)
	g.GET("/:id", h.GetCompetition)
}

// ListCompetitions lists competitions
func (h *Handler) ListCompetitions(c echo.Context) error {
	ctx := c.Request().Context()

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	page, err := listing.NewPage(limit, offset, c.QueryParam("sort"), c.QueryParam("order"), competition.SortKeys(), "c.name ASC")
	if err != nil {
		return err
	}

	competitions, total, err := h.repo.List(ctx, page)
	if err != nil {
		return err
	}

	return respond.OKWithMeta(c, competitions, respond.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
		Sort:   page.Sort,
	})
}

// GetCompetition gets a competition with its seasons
func (h *Handler) GetCompetition(c echo.Context) error {
	ctx := c.Request().Context()

	competitionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, "competition id must be an integer")
	}

	found, err := h.repo.Get(ctx, competitionID)
	if err != nil {
		return err
	}

	return respond.OK(c, found)
}
