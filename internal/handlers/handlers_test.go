package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/labstack/echo/v4"
)

// --- shared test doubles ---

type fakeSource struct {
	posts       []models.Post
	initialized bool
	errMsg      string
}

func (f *fakeSource) Snapshot() posts.Snapshot {
	return posts.Snapshot{
		Posts:       f.posts,
		Err:         f.errMsg,
		Initialized: f.initialized,
	}
}

func (f *fakeSource) Find(id int) (models.Post, bool) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func readySource(n int) *fakeSource {
	list := make([]models.Post, n)
	for i := range list {
		list[i] = models.Post{UserID: 1, ID: i + 1, Title: fmt.Sprintf("title %d", i+1), Body: fmt.Sprintf("body %d", i+1)}
	}
	return &fakeSource{posts: list, initialized: true}
}

type mockFavoriteRepo struct {
	AddFavoriteFunc        func(favorite *models.Favorite) error
	RemoveFavoriteFunc     func(userID string, postID int) error
	IsFavoriteFunc         func(userID string, postID int) (bool, error)
	GetFavoritesByUserFunc func(userID string) ([]models.Favorite, error)
}

func (m *mockFavoriteRepo) AddFavorite(favorite *models.Favorite) error {
	return m.AddFavoriteFunc(favorite)
}
func (m *mockFavoriteRepo) RemoveFavorite(userID string, postID int) error {
	return m.RemoveFavoriteFunc(userID, postID)
}
func (m *mockFavoriteRepo) IsFavorite(userID string, postID int) (bool, error) {
	return m.IsFavoriteFunc(userID, postID)
}
func (m *mockFavoriteRepo) GetFavoritesByUser(userID string) ([]models.Favorite, error) {
	return m.GetFavoritesByUserFunc(userID)
}

type mockCommentRepo struct {
	CreateCommentFunc       func(comment *models.Comment) error
	GetCommentsByPostIDFunc func(postID int) ([]models.CommentWithAuthor, error)
}

func (m *mockCommentRepo) CreateComment(comment *models.Comment) error {
	return m.CreateCommentFunc(comment)
}
func (m *mockCommentRepo) GetCommentsByPostID(postID int) ([]models.CommentWithAuthor, error) {
	return m.GetCommentsByPostIDFunc(postID)
}

type mockProfileRepo struct {
	GetProfileFunc    func(userID string) (*models.Profile, error)
	CreateProfileFunc func(profile *models.Profile) error
	UpsertProfileFunc func(profile *models.Profile) error
}

func (m *mockProfileRepo) GetProfile(userID string) (*models.Profile, error) {
	return m.GetProfileFunc(userID)
}
func (m *mockProfileRepo) CreateProfile(profile *models.Profile) error {
	return m.CreateProfileFunc(profile)
}
func (m *mockProfileRepo) UpsertProfile(profile *models.Profile) error {
	return m.UpsertProfileFunc(profile)
}

// --- request plumbing ---

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, userID, email string) {
	c.Set("user", &models.JwtCustomClaims{UserID: userID, Email: email})
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
