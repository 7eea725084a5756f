package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeSessionStarted    ActivityType = "session_started"
	TypeSessionCompleted  ActivityType = "session_completed"
	TypeSessionFailed     ActivityType = "session_failed"
	TypeSessionSuperseded ActivityType = "session_superseded"
	TypeReviewsImported   ActivityType = "reviews_imported"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           string       `json:"id"`
	ProjectKey   string       `json:"project_key"`
	SessionID    string       `json:"session_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Pages        int          `json:"pages"`
	Assets       int          `json:"assets"`
	Error        string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
