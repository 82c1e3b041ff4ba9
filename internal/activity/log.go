// Package activity stores a bounded, most-recent-first list of user activity
// records in key-value storage.
package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/storage"
)

// MaxActivities bounds the per-user activity log.
const MaxActivities = 10

const logKeyPrefix = "userActivityLog:"

// Log wraps the activity list for all users. Each user's list lives under
// its own key.
type Log struct {
	store storage.Store
}

// NewLog creates a Log on top of the given key-value store.
func NewLog(store storage.Store) *Log {
	return &Log{store: store}
}

func logKey(userID string) string { return logKeyPrefix + userID }

// Add prepends an activity record to the user's log, trimming the list to
// MaxActivities. A missing timestamp is filled in.
func (l *Log) Add(ctx context.Context, userID string, act models.Activity) error {
	if act.Timestamp.IsZero() {
		act.Timestamp = time.Now()
	}
	activities := l.List(ctx, userID)
	activities = append([]models.Activity{act}, activities...)
	if len(activities) > MaxActivities {
		activities = activities[:MaxActivities]
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	return l.store.Set(ctx, logKey(userID), data)
}

// List returns the stored activities, most recent first. Read or parse
// failures degrade to an empty list; they are logged, never propagated.
func (l *Log) List(ctx context.Context, userID string) []models.Activity {
	data, err := l.store.Get(ctx, logKey(userID))
	if err != nil {
		log.Printf("Error reading activity log for user %s: %v", userID, err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var activities []models.Activity
	if err := json.Unmarshal(data, &activities); err != nil {
		log.Printf("Error parsing activity log for user %s: %v", userID, err)
		return nil
	}
	return activities
}

// Clear removes the user's whole activity log.
func (l *Log) Clear(ctx context.Context, userID string) error {
	return l.store.Remove(ctx, logKey(userID))
}
