// Package explorer derives random subsets of the fetched posts and records
// which post ids have already been shown to each user.
package explorer

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/metrics"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/JackSmar98/jsonplaceholder/internal/storage"
)

// NumRandomPosts is the size of each random selection.
const NumRandomPosts = 3

const viewedKeyPrefix = "postsVistosAleatoriamente:"

// Explorer draws random posts and maintains the per-user viewed-id history.
type Explorer struct {
	source      posts.Source
	store       storage.Store
	activityLog *activity.Log

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// New creates an Explorer. A nil rng gets a time-seeded source; tests inject
// a deterministic one.
func New(source posts.Source, store storage.Store, activityLog *activity.Log, rng *rand.Rand) *Explorer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Explorer{
		source:      source,
		store:       store,
		activityLog: activityLog,
		rng:         rng,
	}
}

func viewedKey(userID string) string { return viewedKeyPrefix + userID }

// Draw returns n posts picked uniformly from the fetched list (fewer when
// the pool is smaller). An empty pool yields an empty selection and writes
// nothing. Otherwise the selected ids are appended to the user's viewed list
// (deduplicated, insertion order preserved) and a discovered_random activity
// record is added. Storage failures are logged and do not fail the draw.
func (e *Explorer) Draw(ctx context.Context, userID string, n int) []models.Post {
	snap := e.source.Snapshot()
	if len(snap.Posts) == 0 {
		return []models.Post{}
	}
	if n > len(snap.Posts) {
		n = len(snap.Posts)
	}

	shuffled := append([]models.Post(nil), snap.Posts...)
	e.mu.Lock()
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	e.mu.Unlock()
	selected := shuffled[:n]

	ids := make([]int, len(selected))
	for i, p := range selected {
		ids[i] = p.ID
	}
	if err := e.recordViewed(ctx, userID, ids); err != nil {
		log.Printf("Error saving viewed post ids for user %s: %v", userID, err)
	}
	err := e.activityLog.Add(ctx, userID, models.Activity{
		Type:  models.ActivityDiscoveredRandom,
		Count: len(selected),
	})
	if err != nil {
		log.Printf("Error recording discovery activity for user %s: %v", userID, err)
	}
	metrics.RandomDraws.Inc()
	return selected
}

// recordViewed appends ids to the persisted viewed list, skipping ones
// already present.
func (e *Explorer) recordViewed(ctx context.Context, userID string, ids []int) error {
	viewed := e.Viewed(ctx, userID)
	seen := make(map[int]bool, len(viewed))
	for _, id := range viewed {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			viewed = append(viewed, id)
			seen[id] = true
		}
	}
	data, err := json.Marshal(viewed)
	if err != nil {
		return err
	}
	return e.store.Set(ctx, viewedKey(userID), data)
}

// Viewed returns the persisted viewed-id list in insertion order. Read or
// parse failures degrade to an empty list.
func (e *Explorer) Viewed(ctx context.Context, userID string) []int {
	data, err := e.store.Get(ctx, viewedKey(userID))
	if err != nil {
		log.Printf("Error reading viewed post ids for user %s: %v", userID, err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("Error parsing viewed post ids for user %s: %v", userID, err)
		return nil
	}
	return ids
}

// Discovered resolves the persisted viewed ids against the in-memory post
// list, silently dropping ids whose post is not found, and returns the most
// recently added first.
func (e *Explorer) Discovered(ctx context.Context, userID string) []models.Post {
	ids := e.Viewed(ctx, userID)
	resolved := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := e.source.Find(id); ok {
			resolved = append(resolved, post)
		}
	}
	for i, j := 0, len(resolved)-1; i < j; i, j = i+1, j-1 {
		resolved[i], resolved[j] = resolved[j], resolved[i]
	}
	return resolved
}

// ClearHistory empties the persisted viewed-id list.
func (e *Explorer) ClearHistory(ctx context.Context, userID string) error {
	return e.store.Remove(ctx, viewedKey(userID))
}
