package handlers

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/metrics"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/JackSmar98/jsonplaceholder/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FavoriteHandler handles favorite relation HTTP requests
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	source             posts.Source
	activityLog        *activity.Log

	mu         sync.Mutex
	processing map[string]bool // (user, post) pairs with a toggle in flight
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, source posts.Source, activityLog *activity.Log) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepository: favoriteRepo,
		source:             source,
		activityLog:        activityLog,
		processing:         make(map[string]bool),
	}
}

// RegisterFavoriteRoutes registers favorite routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.GET("/posts/:id/favorite", h.GetFavoriteStatus)
	g.POST("/posts/:id/favorite", h.ToggleFavorite)
	g.GET("/favorites", h.ListFavorites)
}

// GetFavoriteStatus reports whether the current user has favorited the post.
// A failed existence check degrades to "not a favorite".
func (h *FavoriteHandler) GetFavoriteStatus(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	isFavorite, err := h.favoriteRepository.IsFavorite(claims.UserID, postID)
	if err != nil {
		log.Printf("Error checking favorite for post %d: %v", postID, err)
		isFavorite = false
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorite": isFavorite}})
}

// ToggleFavorite flips the favorite membership for the current user. At most
// one toggle per (user, post) is in flight at a time; a concurrent attempt
// gets 409. On failure the membership is left unchanged and no activity is
// recorded.
func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}
	post, ok := h.source.Find(postID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	key := claims.UserID + ":" + strconv.Itoa(postID)
	h.mu.Lock()
	if h.processing[key] {
		h.mu.Unlock()
		return echo.NewHTTPError(http.StatusConflict, "A favorite change for this post is already in progress")
	}
	h.processing[key] = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.processing, key)
		h.mu.Unlock()
	}()

	isFavorite, err := h.favoriteRepository.IsFavorite(claims.UserID, postID)
	if err != nil {
		log.Printf("Error checking favorite for post %d: %v", postID, err)
		isFavorite = false
	}

	if isFavorite {
		if err := h.favoriteRepository.RemoveFavorite(claims.UserID, postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Error removing favorite: "+err.Error())
		}
		h.recordActivity(c, claims.UserID, models.ActivityRemovedFavorite, post)
		metrics.FavoriteToggles.WithLabelValues("removed").Inc()
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorite": false}})
	}

	favorite := &models.Favorite{UserID: claims.UserID, PostID: postID}
	if err := h.favoriteRepository.AddFavorite(favorite); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error adding favorite: "+err.Error())
	}
	h.recordActivity(c, claims.UserID, models.ActivityAddedFavorite, post)
	metrics.FavoriteToggles.WithLabelValues("added").Inc()
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"favorite": true}})
}

func (h *FavoriteHandler) recordActivity(c echo.Context, userID, activityType string, post models.Post) {
	err := h.activityLog.Add(c.Request().Context(), userID, models.Activity{
		Type:      activityType,
		PostID:    post.ID,
		PostTitle: post.Title,
	})
	if err != nil {
		log.Printf("Error recording %s activity for user %s: %v", activityType, userID, err)
	}
}

// ListFavorites returns the details of the current user's favorite posts,
// resolved against the in-memory post list
func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}

	favorites, err := h.favoriteRepository.GetFavoritesByUser(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading favorites: "+err.Error())
	}

	details := make([]models.Post, 0, len(favorites))
	for _, favorite := range favorites {
		if post, ok := h.source.Find(favorite.PostID); ok {
			details = append(details, post)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": details})
}
