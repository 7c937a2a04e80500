package pipeline

import (
	"github.com/morispolanco/recamazon/internal/parse"
	"github.com/morispolanco/recamazon/internal/services"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusHalted    Status = "halted"
)

const (
	// NoRecommendations replaces an empty or failed recommendation.
	NoRecommendations = "No recommendations generated"
	// ReasonNoItemsFound is the halt reason when discovery yields nothing.
	ReasonNoItemsFound = "no related items found"
)

// Result is the outcome of one run. A halted result carries only the query,
// catalog, status, and reason; a completed one carries every payload, any of
// which may be empty.
type Result struct {
	Query          string                `json:"query"`
	Catalog        string                `json:"catalog"`
	Status         Status                `json:"status"`
	Reason         string                `json:"reason,omitempty"`
	Items          []parse.ItemReference `json:"items"`
	Details        []parse.Record        `json:"details"`
	Reviews        []parse.Record        `json:"reviews"`
	Recommendation string                `json:"recommendation"`
}

// Completed reports whether all four stages ran.
func (r Result) Completed() bool {
	return r.Status == StatusCompleted
}

// HasRecommendation reports whether the recommendation is real text rather than the sentinel.
func (r Result) HasRecommendation() bool {
	return r.Recommendation != "" && r.Recommendation != NoRecommendations
}

// Err returns services.ErrNoItemsFound for a halted run and nil otherwise.
func (r Result) Err() error {
	if r.Status == StatusHalted {
		return services.ErrNoItemsFound
	}
	return nil
}
