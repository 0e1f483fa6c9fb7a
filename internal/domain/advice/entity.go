package advice

import (
	"time"

	"github.com/google/uuid"
)

// Report is one archived investment advice document: the synthesized
// summary plus the full markdown assembled from the analyst sections.
type Report struct {
	ID        uuid.UUID `db:"id"`
	Ticker    string    `db:"ticker"`
	Summary   string    `db:"summary"`
	Document  string    `db:"document"`
	Filename  string    `db:"filename"`
	AppName   string    `db:"app_name"`
	UserID    string    `db:"user_id"`
	SessionID string    `db:"session_id"`
	CreatedAt time.Time `db:"created_at"`
}
