package rating

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/codeclash/backend/srvcerror"
)

// maxHistoryReturned caps how many history entries a history query
// returns; the stored list itself is unbounded.
const maxHistoryReturned = 50

// saveAttempts bounds the optimistic-locking retry loop when two contest
// finalizations touch the same user back to back.
const saveAttempts = 3

// RatingSrvc owns all reads and writes of persisted rating records.
type RatingSrvc struct {
	logger *slog.Logger
	repo   Repo
}

func NewRatingSrvc(repo Repo) *RatingSrvc {
	return &RatingSrvc{
		logger: slog.Default().With("module", "rating"),
		repo:   repo,
	}
}

// CurrentRating returns the user's rating, or the default for a user
// without a record. An existing record is always read as-is, never
// re-defaulted.
func (s *RatingSrvc) CurrentRating(ctx context.Context, email string) (int, error) {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return DefaultRating, nil
	}
	return rec.Rating, nil
}

// ApplyContestResult records one finalized contest for a user: appends a
// history entry, moves the rating by ratingChange, and bumps the per-mode
// placement counters. The record is created lazily on first finalization.
// The history entry's old/new ratings are derived from the stored rating
// at apply time, which keeps the rating == last-entry-NewRating invariant
// even if another contest finalized for this user in between.
func (s *RatingSrvc) ApplyContestResult(
	ctx context.Context,
	email string,
	contestID string,
	mode string,
	ratingChange int,
	placement int,
	totalParticipants int,
	now time.Time,
) (*HistoryEntry, error) {
	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		rec, err := s.repo.Get(ctx, email)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			rec = newRecord(email)
		}

		// guard against the same finalization being applied twice
		for _, h := range rec.RatingHistory {
			if h.ContestID == contestID {
				return &h, nil
			}
		}

		entry := HistoryEntry{
			ContestID:         contestID,
			Mode:              mode,
			OldRating:         rec.Rating,
			NewRating:         rec.Rating + ratingChange,
			RatingChange:      ratingChange,
			Placement:         placement,
			TotalParticipants: totalParticipants,
			Timestamp:         now,
		}

		rec.Rating = entry.NewRating
		rec.ContestsParticipated++
		rec.RatingHistory = append(rec.RatingHistory, entry)

		stats, ok := rec.ContestStats[mode]
		if !ok {
			stats = &ModeStats{}
			rec.ContestStats[mode] = stats
		}
		stats.Played++
		switch PlacementBucket(placement, totalParticipants) {
		case BucketWin:
			stats.Wins++
		case BucketTop10:
			stats.Top10++
		case BucketTop25:
			stats.Top25++
		case BucketTop50:
			stats.Top50++
		default:
			stats.Other++
		}

		err = s.repo.Save(ctx, rec)
		if err == nil {
			return &entry, nil
		}
		srvcErr := &srvcerror.Error{}
		if errors.As(err, &srvcErr) && srvcErr.ErrorCode() == ErrCodeRatingConflict {
			lastErr = err
			continue // another finalization won the write, re-read and retry
		}
		return nil, err
	}
	return nil, lastErr
}

type Stats struct {
	Rating           int      `json:"rating"`
	Rank             int      `json:"rank"`
	Tier             string   `json:"tier"`
	ContestsPlayed   int      `json:"contests_played"`
	WinRate          float64  `json:"win_rate"`
	AveragePlacement float64  `json:"average_placement"`
	BestRating       int      `json:"best_rating"`
	RecentForm       []string `json:"recent_form"`
}

type Statistics struct {
	ContestsPlayed   int     `json:"contests_played"`
	Wins             int     `json:"wins"`
	WinRate          float64 `json:"win_rate"`
	AveragePlacement float64 `json:"average_placement"`
	BestRating       int     `json:"best_rating"`
}

type History struct {
	CurrentRating int                   `json:"current_rating"`
	PeakRating    int                   `json:"peak_rating"`
	RatingHistory []HistoryEntry        `json:"rating_history"`
	Statistics    Statistics            `json:"statistics"`
	ContestStats  map[string]*ModeStats `json:"contest_stats"`
	Rank          int                   `json:"rank"`
}

// GetStats answers the rating-stats query for one user. Users without a
// record get default-rating stats rather than an error.
func (s *RatingSrvc) GetStats(ctx context.Context, email string) (*Stats, error) {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = newRecord(email)
	}

	rank, err := s.rank(ctx, email, rec.Rating)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Rating:           rec.Rating,
		Rank:             rank,
		Tier:             TierForRating(rec.Rating),
		ContestsPlayed:   rec.ContestsParticipated,
		WinRate:          winRate(rec),
		AveragePlacement: averagePlacement(rec.RatingHistory),
		BestRating:       bestRating(rec.RatingHistory),
		RecentForm:       recentForm(rec.RatingHistory),
	}, nil
}

// GetHistory answers the rating-history query: the most recent entries
// (newest first), aggregate statistics, and per-mode counters.
func (s *RatingSrvc) GetHistory(ctx context.Context, email string) (*History, error) {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = newRecord(email)
	}

	rank, err := s.rank(ctx, email, rec.Rating)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, maxHistoryReturned)
	for i := len(rec.RatingHistory) - 1; i >= 0 && len(history) < maxHistoryReturned; i-- {
		history = append(history, rec.RatingHistory[i])
	}

	wins := 0
	for _, stats := range rec.ContestStats {
		wins += stats.Wins
	}

	return &History{
		CurrentRating: rec.Rating,
		PeakRating:    bestRating(rec.RatingHistory),
		RatingHistory: history,
		Statistics: Statistics{
			ContestsPlayed:   rec.ContestsParticipated,
			Wins:             wins,
			WinRate:          winRate(rec),
			AveragePlacement: averagePlacement(rec.RatingHistory),
			BestRating:       bestRating(rec.RatingHistory),
		},
		ContestStats: rec.ContestStats,
		Rank:         rank,
	}, nil
}

// rank is 1 + the number of users with a strictly higher rating.
func (s *RatingSrvc) rank(ctx context.Context, email string, myRating int) (int, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	rank := 1
	for _, rec := range recs {
		if rec.Email == email {
			continue
		}
		if rec.Rating > myRating {
			rank++
		}
	}
	return rank, nil
}

func winRate(rec *Record) float64 {
	if rec.ContestsParticipated == 0 {
		return 0
	}
	wins := 0
	for _, stats := range rec.ContestStats {
		wins += stats.Wins
	}
	return float64(wins) / float64(rec.ContestsParticipated) * 100
}

func averagePlacement(history []HistoryEntry) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, h := range history {
		sum += h.Placement
	}
	return float64(sum) / float64(len(history))
}

func bestRating(history []HistoryEntry) int {
	best := DefaultRating
	for _, h := range history {
		if h.NewRating > best {
			best = h.NewRating
		}
	}
	return best
}

// recentForm renders the last up-to-5 contests as "W" (finished in the
// top half) or "L", newest first.
func recentForm(history []HistoryEntry) []string {
	form := make([]string, 0, 5)
	for i := len(history) - 1; i >= 0 && len(form) < 5; i-- {
		h := history[i]
		if h.TotalParticipants > 0 && h.Placement*2 <= h.TotalParticipants {
			form = append(form, "W")
		} else {
			form = append(form, "L")
		}
	}
	return form
}
