package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no profile exists for the given user.
var ErrNotFound = errors.New("profile not found")

// UserProfile is the stored per-user record. Recommendation holds the last
// generated report as raw JSON, nil if none has been saved (or it was
// cleared by a restart).
type UserProfile struct {
	UserID         string
	Email          string
	Name           string
	Grade          string
	Stream         string
	Recommendation json.RawMessage
	UpdatedAt      time.Time
}

// ProfilePatch is a partial profile update. Only non-nil fields change;
// everything else keeps its stored value (merge semantics).
type ProfilePatch struct {
	Email          *string
	Name           *string
	Grade          *string
	Stream         *string
	Recommendation json.RawMessage
}

// ProfileRepo manages per-user profiles and their cached recommendation.
type ProfileRepo interface {
	// Get returns the profile for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*UserProfile, error)

	// Save upserts the profile for userID, merging only the fields the
	// patch provides.
	Save(ctx context.Context, userID string, patch ProfilePatch) error

	// ClearRecommendation removes the stored recommendation for userID.
	// A missing profile is not an error.
	ClearRecommendation(ctx context.Context, userID string) error
}

// LLMRequestEventData captures the data for a single generation event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored generation event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = default 20)
}

// UsageStat is aggregated token usage for one purpose.
type UsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to generation events.
type EventRepo interface {
	// AppendLLMRequest records a generation API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)
}
