package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests for the user's own profile and its
// recent-activity section
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	activityLog       *activity.Log
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, activityLog *activity.Log) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		activityLog:       activityLog,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/profile/activity", h.GetActivity)
	g.DELETE("/profile/activity", h.ClearActivity)
}

// GetProfile retrieves the current user's profile row. A missing row is not
// an error: it means the profile has not been completed yet, and the
// response says so instead of failing.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	profile, err := h.profileRepository.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return c.JSON(http.StatusOK, echo.Map{
				"email":    claims.Email,
				"profile":  nil,
				"complete": true,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading profile: "+err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"email":    claims.Email,
		"profile":  profile,
		"complete": false,
	})
}

// UpdateProfile upserts the editable profile fields. Empty optional fields
// are normalized to unset; after a successful write the row is re-fetched so
// the response reflects any store-layer defaults.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Nombre is required")
	}

	profile := &models.Profile{
		ID:              claims.UserID,
		Email:           claims.Email,
		Nombre:          nombre,
		FechaNacimiento: optionalField(req.FechaNacimiento),
		Telefono:        optionalField(req.Telefono),
		AvatarURL:       optionalField(req.AvatarURL),
		UpdatedAt:       time.Now(),
	}
	if err := h.profileRepository.UpsertProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error updating profile: "+err.Error())
	}

	updated, err := h.profileRepository.GetProfile(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error reloading profile: "+err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}

// GetActivity returns the user's bounded activity log, most recent first
func (h *ProfileHandler) GetActivity(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	activities := h.activityLog.List(c.Request().Context(), claims.UserID)
	if activities == nil {
		activities = []models.Activity{}
	}
	return c.JSON(http.StatusOK, echo.Map{"activities": activities})
}

// ClearActivity wipes the user's activity log. The confirm query parameter
// stands in for the UI confirmation step.
func (h *ProfileHandler) ClearActivity(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if c.QueryParam("confirm") != "true" {
		return echo.NewHTTPError(http.StatusBadRequest, "Clearing activity requires confirm=true")
	}

	if err := h.activityLog.Clear(c.Request().Context(), claims.UserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error clearing activity: "+err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"cleared": true})
}

// optionalField maps an empty or whitespace-only input to unset.
func optionalField(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
