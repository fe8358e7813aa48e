package history

import (
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
)

// RecordID identifier type
type RecordID string

// Record represents one completed analysis stored for auditing and retrieval.
// Records are immutable once appended.
type Record struct {
	ID         RecordID        `json:"id"`
	Username   string          `json:"username"`
	Profile    profile.Profile `json:"profile"`
	Report     report.Report   `json:"analysis"`
	CreatedAt  time.Time       `json:"createdAt"`
	ArchiveURL string          `json:"archiveUrl,omitempty"`
}
