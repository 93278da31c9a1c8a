package rating

import "time"

// DefaultRating is the rating assumed for a user with no record yet.
const DefaultRating = 1200

// Record is the persisted per-user rating state. Invariant: Rating equals
// the NewRating of the last history entry whenever history is non-empty.
type Record struct {
	Email                string
	Rating               int
	ContestsParticipated int
	RatingHistory        []HistoryEntry
	ContestStats         map[string]*ModeStats
	Version              int // optimistic locking
}

// HistoryEntry is one finalized contest in a user's rating history.
// The list is append-only.
type HistoryEntry struct {
	ContestID         string    `json:"contest_id"`
	Mode              string    `json:"mode"`
	OldRating         int       `json:"old_rating"`
	NewRating         int       `json:"new_rating"`
	RatingChange      int       `json:"rating_change"`
	Placement         int       `json:"placement"`
	TotalParticipants int       `json:"total_participants"`
	Timestamp         time.Time `json:"timestamp"`
}

// ModeStats are per-mode placement counters, bucketed by placement
// percentile at finalization.
type ModeStats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Top10  int `json:"top10"`
	Top25  int `json:"top25"`
	Top50  int `json:"top50"`
	Other  int `json:"other"`
}

// Bucket names a placement percentile band.
type Bucket string

const (
	BucketWin   Bucket = "win"
	BucketTop10 Bucket = "top10"
	BucketTop25 Bucket = "top25"
	BucketTop50 Bucket = "top50"
	BucketOther Bucket = "other"
)

// PlacementBucket categorizes a 1-based placement within a field of the
// given size. Placement 1 always counts as a win.
func PlacementBucket(placement, total int) Bucket {
	if placement == 1 {
		return BucketWin
	}
	if total <= 0 {
		return BucketOther
	}
	pct := float64(placement) / float64(total)
	switch {
	case pct <= 0.10:
		return BucketTop10
	case pct <= 0.25:
		return BucketTop25
	case pct <= 0.50:
		return BucketTop50
	default:
		return BucketOther
	}
}

func newRecord(email string) *Record {
	return &Record{
		Email:        email,
		Rating:       DefaultRating,
		ContestStats: make(map[string]*ModeStats),
	}
}
