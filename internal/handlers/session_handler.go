package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JackSmar98/jsonplaceholder/internal/middleware"
	"github.com/JackSmar98/jsonplaceholder/internal/session"
	"github.com/labstack/echo/v4"
)

// SessionHandler exposes session retrieval and the session-change stream
type SessionHandler struct {
	sessions  *session.Store
	jwtSecret string
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *session.Store, jwtSecret string) *SessionHandler {
	return &SessionHandler{sessions: sessions, jwtSecret: jwtSecret}
}

// RegisterSessionRoutes registers session routes. Both work for anonymous
// callers, so they live on the public group.
func (h *SessionHandler) RegisterSessionRoutes(g *echo.Group) {
	g.GET("/session", h.GetSession)
	g.GET("/session/events", h.StreamEvents)
}

// GetSession returns the current session's user, or null for anonymous or
// invalid credentials. Inability to determine identity is "no user" here,
// never an error.
func (h *SessionHandler) GetSession(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}

	claims, err := middleware.ParseClaims(authHeader, h.jwtSecret)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"user": nil})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{"id": claims.UserID, "email": claims.Email},
	})
}

// StreamEvents streams session-change events as server-sent events. The
// subscription is cancelled when the client disconnects.
func (h *SessionHandler) StreamEvents(c echo.Context) error {
	events, cancel := h.sessions.Subscribe()
	defer cancel()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(resp, "data: %s\n\n", data)
			resp.Flush()
		}
	}
}
