package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/labstack/echo/v4"
)

// PostHandler serves the fetched post list and single-post detail
type PostHandler struct {
	source posts.Source
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(source posts.Source) *PostHandler {
	return &PostHandler{source: source}
}

// RegisterPostRoutes registers the public post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// ListPosts returns the fetched post list, optionally filtered by a search
// term matched against title and body
func (h *PostHandler) ListPosts(c echo.Context) error {
	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}
	if snap.Err != "" {
		return echo.NewHTTPError(http.StatusBadGateway, "Error loading posts: "+snap.Err)
	}

	result := snap.Posts
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		lower := strings.ToLower(q)
		filtered := make([]models.Post, 0, len(result))
		for _, post := range result {
			if strings.Contains(strings.ToLower(post.Title), lower) ||
				strings.Contains(strings.ToLower(post.Body), lower) {
				filtered = append(filtered, post)
			}
		}
		result = filtered
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": result})
}

// GetPost returns one post by id from the fetched list
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}
	if snap.Err != "" {
		return echo.NewHTTPError(http.StatusBadGateway, "Error loading posts: "+snap.Err)
	}

	post, ok := h.source.Find(id)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}
