// Package metrics collects and exposes Prometheus counters for the app's
// domain events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ListingFetches counts the one-shot listing fetch by result.
	ListingFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jsonplaceholder_listing_fetch_total",
		Help: "Listing API fetch attempts by result.",
	}, []string{"result"})

	// FavoriteToggles counts favorite toggles by action (added/removed).
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jsonplaceholder_favorite_toggle_total",
		Help: "Favorite toggles by action.",
	}, []string{"action"})

	// CommentsCreated counts successfully inserted comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jsonplaceholder_comments_created_total",
		Help: "Comments successfully created.",
	})

	// RandomDraws counts random post selections.
	RandomDraws = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jsonplaceholder_random_draws_total",
		Help: "Random post selections performed.",
	})
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
