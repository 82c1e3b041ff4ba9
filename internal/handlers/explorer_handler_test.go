package handlers

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/explorer"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/storage"
)

func newExplorerFixture(source *fakeSource) *ExplorerHandler {
	exp := explorer.New(
		source,
		storage.NewMemoryStore(),
		activity.NewLog(storage.NewMemoryStore()),
		rand.New(rand.NewSource(1)),
	)
	return NewExplorerHandler(exp, source)
}

func TestDiscoverReturnsSelection(t *testing.T) {
	h := newExplorerFixture(readySource(10))

	c, rec := newTestContext(t, "POST", "/api/v1/discover", "")
	authenticate(c, "u1", "u1@example.com")

	if err := h.Discover(c); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Posts) != explorer.NumRandomPosts {
		t.Fatalf("expected %d posts, got %d", explorer.NumRandomPosts, len(resp.Posts))
	}
}

func TestDiscoveredAccumulatesAcrossDraws(t *testing.T) {
	h := newExplorerFixture(readySource(10))

	for i := 0; i < 2; i++ {
		c, _ := newTestContext(t, "POST", "/api/v1/discover", "")
		authenticate(c, "u1", "u1@example.com")
		if err := h.Discover(c); err != nil {
			t.Fatalf("Discover failed: %v", err)
		}
	}

	c, rec := newTestContext(t, "GET", "/api/v1/discovered", "")
	authenticate(c, "u1", "u1@example.com")
	if err := h.Discovered(c); err != nil {
		t.Fatalf("Discovered failed: %v", err)
	}
	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Posts) < explorer.NumRandomPosts {
		t.Fatalf("history too short after two draws: %d", len(resp.Posts))
	}
	seen := make(map[int]bool)
	for _, p := range resp.Posts {
		if seen[p.ID] {
			t.Fatalf("history contains duplicate post %d", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestClearDiscoveredRequiresConfirmation(t *testing.T) {
	h := newExplorerFixture(readySource(10))

	c, _ := newTestContext(t, "POST", "/api/v1/discover", "")
	authenticate(c, "u1", "u1@example.com")
	if err := h.Discover(c); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	c, _ = newTestContext(t, "DELETE", "/api/v1/discovered", "")
	authenticate(c, "u1", "u1@example.com")
	if got := httpStatus(t, h.ClearDiscovered(c)); got != 400 {
		t.Fatalf("status without confirm = %d, want 400", got)
	}

	c, _ = newTestContext(t, "DELETE", "/api/v1/discovered?confirm=true", "")
	authenticate(c, "u1", "u1@example.com")
	if err := h.ClearDiscovered(c); err != nil {
		t.Fatalf("confirmed clear failed: %v", err)
	}

	c, rec := newTestContext(t, "GET", "/api/v1/discovered", "")
	authenticate(c, "u1", "u1@example.com")
	if err := h.Discovered(c); err != nil {
		t.Fatalf("Discovered failed: %v", err)
	}
	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Posts) != 0 {
		t.Fatalf("history should be empty after clear, got %d posts", len(resp.Posts))
	}
}

func TestExplorerAnonymous(t *testing.T) {
	h := newExplorerFixture(readySource(10))

	c, _ := newTestContext(t, "POST", "/api/v1/discover", "")
	if got := httpStatus(t, h.Discover(c)); got != 401 {
		t.Fatalf("status = %d, want 401", got)
	}
}

func TestDiscoverUninitializedListing(t *testing.T) {
	h := newExplorerFixture(&fakeSource{})

	c, _ := newTestContext(t, "POST", "/api/v1/discover", "")
	authenticate(c, "u1", "u1@example.com")
	if got := httpStatus(t, h.Discover(c)); got != 503 {
		t.Fatalf("status = %d, want 503", got)
	}
}
