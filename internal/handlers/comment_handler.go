package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/metrics"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/JackSmar98/jsonplaceholder/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// snippetLength is how much comment text goes into the activity record.
const snippetLength = 30

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	source            posts.Source
	activityLog       *activity.Log
	sanitizer         *bluemonday.Policy
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, source posts.Source, activityLog *activity.Log) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		source:            source,
		activityLog:       activityLog,
		sanitizer:         bluemonday.StrictPolicy(),
	}
}

// RegisterCommentRoutes registers comment routes: reads are public, writes
// require authentication
func (h *CommentHandler) RegisterCommentRoutes(public, protected *echo.Group) {
	public.GET("/posts/:id/comments", h.GetCommentsByPostID)
	protected.POST("/posts/:id/comments", h.CreateComment)
}

// GetCommentsByPostID retrieves all comments for a post, newest first, with
// author profile fields joined in
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	snap := h.source.Snapshot()
	if !snap.Initialized {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Post list is not initialized yet")
	}
	if _, ok := h.source.Find(postID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading comments: "+err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

// CreateComment inserts a comment for the current user and responds with the
// re-fetched full comment list. Empty or whitespace-only content is rejected
// before any insert happens.
func (h *CommentHandler) CreateComment(c echo.Context) error {
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

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment content cannot be empty")
	}
	content = h.sanitizer.Sanitize(content)

	comment := &models.Comment{
		PostID:  postID,
		UserID:  claims.UserID,
		Content: content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error creating comment: "+err.Error())
	}
	metrics.CommentsCreated.Inc()

	activityErr := h.activityLog.Add(c.Request().Context(), claims.UserID, models.Activity{
		Type:           models.ActivityCommented,
		PostID:         post.ID,
		PostTitle:      post.Title,
		CommentSnippet: snippet(content),
	})
	if activityErr != nil {
		log.Printf("Error recording comment activity for user %s: %v", claims.UserID, activityErr)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		log.Printf("Error re-fetching comments for post %d: %v", postID, err)
		return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment, "comments": comments})
}

// snippet truncates comment content for the activity record.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}
