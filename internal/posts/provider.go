// Package posts fetches the post listing once per process and shares the
// result with every consumer.
package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/JackSmar98/jsonplaceholder/internal/metrics"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
)

// DefaultListingURL is the public demo API the post list is sourced from.
const DefaultListingURL = "https://jsonplaceholder.typicode.com/posts"

// maxPosts caps how much of the listing is retained.
const maxPosts = 10

// Snapshot is the provider state exposed to consumers. A non-empty Err with
// Initialized=true means the one-time fetch failed; it is never retried.
type Snapshot struct {
	Posts       []models.Post
	Loading     bool
	Err         string
	Initialized bool
}

// Source is the read interface consumers depend on.
type Source interface {
	Snapshot() Snapshot
	Find(id int) (models.Post, bool)
}

// Provider fetches a fixed-size page of posts once and holds the result for
// the rest of the process lifetime.
type Provider struct {
	url    string
	client *http.Client

	mu   sync.RWMutex
	snap Snapshot
	once sync.Once
}

// NewProvider creates a Provider for the given listing URL. An empty url
// selects DefaultListingURL; a nil client gets a timeout-bounded default.
func NewProvider(url string, client *http.Client) *Provider {
	if url == "" {
		url = DefaultListingURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Provider{
		url:    url,
		client: client,
		snap:   Snapshot{Loading: true},
	}
}

// Fetch performs the one-time listing request. Subsequent calls are no-ops
// regardless of the first outcome.
func (p *Provider) Fetch(ctx context.Context) {
	p.once.Do(func() { p.fetch(ctx) })
}

func (p *Provider) fetch(ctx context.Context) {
	var fetched []models.Post
	var errMsg string

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		errMsg = err.Error()
	} else {
		resp, err := p.client.Do(req)
		if err != nil {
			errMsg = err.Error()
		} else {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				errMsg = fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
			} else if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
				errMsg = err.Error()
			}
		}
	}

	if errMsg != "" {
		log.Printf("Error fetching posts listing from %s: %s", p.url, errMsg)
		fetched = nil
		metrics.ListingFetches.WithLabelValues("error").Inc()
	} else {
		if len(fetched) > maxPosts {
			fetched = fetched[:maxPosts]
		}
		metrics.ListingFetches.WithLabelValues("success").Inc()
	}

	p.mu.Lock()
	p.snap = Snapshot{Posts: fetched, Loading: false, Err: errMsg, Initialized: true}
	p.mu.Unlock()
}

// Snapshot returns the current provider state. Consumers must treat
// Initialized=false as "unknown", not as an empty list.
func (p *Provider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap := p.snap
	snap.Posts = append([]models.Post(nil), snap.Posts...)
	return snap
}

// Find resolves a post id against the fetched list.
func (p *Provider) Find(id int) (models.Post, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, post := range p.snap.Posts {
		if post.ID == id {
			return post, true
		}
	}
	return models.Post{}, false
}
