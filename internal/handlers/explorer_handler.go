package handlers

import (
	"net/http"

	"github.com/JackSmar98/jsonplaceholder/internal/explorer"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/labstack/echo/v4"
)

// ExplorerHandler handles the random-post explorer and the discovered
// history view
type ExplorerHandler struct {
	explorer *explorer.Explorer
	source   posts.Source
}

// NewExplorerHandler creates a new ExplorerHandler
func NewExplorerHandler(exp *explorer.Explorer, source posts.Source) *ExplorerHandler {
	return &ExplorerHandler{explorer: exp, source: source}
}

// RegisterExplorerRoutes registers explorer routes
func (h *ExplorerHandler) RegisterExplorerRoutes(g *echo.Group) {
	g.POST("/discover", h.Discover)
	g.GET("/discovered", h.Discovered)
	g.DELETE("/discovered", h.ClearDiscovered)
}

// Discover draws a fresh random selection for the current user
func (h *ExplorerHandler) Discover(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}

	selection := h.explorer.Draw(c.Request().Context(), claims.UserID, explorer.NumRandomPosts)
	return c.JSON(http.StatusOK, echo.Map{"posts": selection})
}

// Discovered returns the posts previously surfaced by the random explorer,
// most recently discovered first
func (h *ExplorerHandler) Discovered(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}

	discovered := h.explorer.Discovered(c.Request().Context(), claims.UserID)
	return c.JSON(http.StatusOK, echo.Map{"posts": discovered})
}

// ClearDiscovered empties the user's discovered history. The confirm query
// parameter stands in for the UI confirmation step.
func (h *ExplorerHandler) ClearDiscovered(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if c.QueryParam("confirm") != "true" {
		return echo.NewHTTPError(http.StatusBadRequest, "Clearing history requires confirm=true")
	}

	if err := h.explorer.ClearHistory(c.Request().Context(), claims.UserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error clearing history: "+err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"cleared": true})
}
