package contest

import (
	"context"
	"time"
)

// scheduleEndTimer arms the deferred end-of-contest finalization. The
// callback races against the all-submitted and creator-left paths; the
// status gate in finalizeLocked makes whichever fires second a no-op.
// Caller holds the room lock.
func (c *Coordinator) scheduleEndTimer(room *Room) {
	room.endTimer = c.schedule(room.Mode.Duration(), func() {
		c.Finalize(context.Background(), room)
	})
}

// Finalize ends a room and applies scoring and rating effects. Safe to
// call any number of times; only the first call has effects.
func (c *Coordinator) Finalize(ctx context.Context, room *Room) {
	room.mu.Lock()
	defer room.mu.Unlock()
	c.finalizeLocked(ctx, room, c.now())
}

// finalizeLocked is the single place a room transitions to ended. It
// ranks participants, computes rating deltas, and persists one rating
// history entry per participant. The status transition happens before
// the rating writes: a persistence failure is logged and leaves the
// room ended, the write itself being idempotent per contest ID.
// Caller holds the room lock.
func (c *Coordinator) finalizeLocked(ctx context.Context, room *Room, now time.Time) {
	if room.Status == StatusEnded {
		return
	}
	if room.endTimer != nil {
		room.endTimer.Stop()
	}
	if err := room.transitionTo(StatusEnded, now); err != nil {
		c.logger.Error("failed to end contest", "contest_id", room.ID, "error", err)
		return
	}

	rankParticipants(room.Participants)
	total := len(room.Participants)

	standings := make([]Standing, 0, total)
	for _, p := range room.Participants {
		delta := RatingDelta(p.RatingAtJoin, p.Placement, total)
		p.RatingChange = delta
		p.NewRating = p.RatingAtJoin + delta

		entry, err := c.ratings.ApplyContestResult(ctx,
			p.Email, room.ID, string(room.Mode),
			delta, p.Placement, total, now)
		if err != nil {
			c.logger.Error("failed to persist rating change",
				"contest_id", room.ID, "user", p.Email, "error", err)
		} else if entry != nil {
			p.NewRating = entry.NewRating
		}

		standings = append(standings, Standing{
			Email:        p.Email,
			Name:         p.Name,
			Score:        p.Score,
			Placement:    p.Placement,
			RatingChange: p.RatingChange,
			NewRating:    p.NewRating,
		})
	}

	room.Results = &Results{
		TotalParticipants: total,
		Standings:         standings,
	}

	c.logger.Info("contest finalized",
		"contest_id", room.ID, "participants", total)
}
