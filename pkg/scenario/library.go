package scenario

import "context"

// Entry summarizes one scenario of a library.
type Entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       int      `json:"steps"`
	Tags        []string `json:"tags,omitempty"`
}

// Library serves named scenarios.
type Library interface {
	// List returns every scenario, sorted by ID.
	List(ctx context.Context) ([]Entry, error)

	// Get loads and validates one scenario.
	Get(ctx context.Context, id string) (*Scenario, error)
}
