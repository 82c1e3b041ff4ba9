package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/repositories"
	"github.com/JackSmar98/jsonplaceholder/internal/session"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	firebaseAuth      *auth.Client
	sessions          *session.Store
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when Firebase login is not configured.
func NewAuthHandler(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	firebaseAuthClient *auth.Client,
	sessions *session.Store,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
		firebaseAuth:      firebaseAuthClient,
		sessions:          sessions,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.GET("/confirm", h.Confirm)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup registers a new account. Registration ends in a pending state: the
// account must confirm its email before it can sign in, so no session token
// is issued here.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.userRepository.GetUserByEmail(req.Email)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.AuthUser{
		ID:                uuid.NewString(),
		Email:             req.Email,
		Password:          string(hashedPassword),
		ConfirmationToken: uuid.NewString(),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// No mailer is attached; the confirmation link goes to the server log.
	log.Printf("Confirmation token for %s: %s", user.Email, user.ConfirmationToken)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":              "Registration successful. Check your email to confirm your account.",
		"confirmation_pending": true,
	})
}

// Confirm marks an account's email as confirmed via its confirmation token
func (h *AuthHandler) Confirm(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Confirmation token is required")
	}

	user, err := h.userRepository.GetUserByConfirmationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Invalid confirmation token")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user.EmailConfirmed = true
	user.ConfirmationToken = ""
	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"confirmed": true})
}

// SignIn authenticates with email and password. On the first successful
// login a minimal profile row is created; a failure there does not block the
// login, it only surfaces as a warning.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if !user.EmailConfirmed {
		return echo.NewHTTPError(http.StatusUnauthorized, "Email not confirmed")
	}

	return h.establishSession(c, user)
}

// FirebaseLogin verifies a Firebase ID token, provisions or links the local
// account, and establishes a session
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase authentication is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Firebase token carries no email")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
		user, err = h.userRepository.GetUserByEmail(email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
			}
			// New user; the hosted service already verified the email.
			user = &models.AuthUser{
				ID:             uuid.NewString(),
				Email:          email,
				FirebaseUID:    token.UID,
				EmailConfirmed: true,
			}
			if err := h.userRepository.CreateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
			}
		} else {
			user.FirebaseUID = token.UID
			user.EmailConfirmed = true
			if err := h.userRepository.UpdateUser(user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to link Firebase account")
			}
		}
	}

	return h.establishSession(c, user)
}

// SignOut ends the current session. JWTs are stateless, so the server's part
// is announcing the sign-out to session subscribers.
func (h *AuthHandler) SignOut(c echo.Context) error {
	claims := getUserFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	h.sessions.Publish(session.Event{
		Type:   session.SignedOut,
		UserID: claims.UserID,
		Email:  claims.Email,
	})
	return c.JSON(http.StatusOK, echo.Map{"signed_out": true})
}

// establishSession creates the lazy profile row if needed, issues the JWT,
// and announces the sign-in.
func (h *AuthHandler) establishSession(c echo.Context, user *models.AuthUser) error {
	warning := h.ensureProfile(user)

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	h.sessions.Publish(session.Event{
		Type:   session.SignedIn,
		UserID: user.ID,
		Email:  user.Email,
	})

	resp := echo.Map{
		"token": token,
		"user":  echo.Map{"id": user.ID, "email": user.Email},
	}
	if warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(http.StatusOK, resp)
}

// ensureProfile lazily creates the minimal profile row on first login. The
// returned warning is empty when nothing went wrong.
func (h *AuthHandler) ensureProfile(user *models.AuthUser) string {
	_, err := h.profileRepository.GetProfile(user.ID)
	if err == nil {
		return ""
	}
	if !errors.Is(err, models.ErrProfileNotFound) {
		log.Printf("Error verifying profile for %s: %v", user.Email, err)
		return "Could not verify your profile: " + err.Error()
	}

	profile := &models.Profile{
		ID:        user.ID,
		Email:     user.Email,
		UpdatedAt: time.Now(),
	}
	if err := h.profileRepository.CreateProfile(profile); err != nil {
		log.Printf("Error creating profile on first login for %s: %v", user.Email, err)
		return "Signed in, but your initial profile could not be created: " + err.Error()
	}
	return ""
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.AuthUser) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
