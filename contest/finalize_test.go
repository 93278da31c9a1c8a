package contest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeIsIdempotent(t *testing.T) {
	f := newTestFixture(t)
	room := f.startDuel(t)

	// simulate the timer racing the all-submitted trigger
	f.coordinator.Finalize(context.Background(), room)
	firstResults := room.Snapshot().Results
	f.coordinator.Finalize(context.Background(), room)

	v := room.Snapshot()
	assert.Equal(t, StatusEnded, v.Status)
	assert.Equal(t, firstResults, v.Results)

	for _, email := range []string{"alice@example.com", "bob@example.com"} {
		rec, err := f.ratingRepo.Get(context.Background(), email)
		require.NoError(t, err)
		require.NotNil(t, rec, "no rating record for %s", email)
		assert.Len(t, rec.RatingHistory, 1)
		assert.Equal(t, 1, rec.ContestsParticipated)
	}
}

func TestFinalizePersistsRatingChanges(t *testing.T) {
	f := newTestFixture(t)
	room := f.startDuel(t)

	f.advance(600 * time.Second)
	_, err := f.coordinator.SubmitSolution(context.Background(), ident("alice"), room.ID,
		SubmitParams{ProblemID: "two-sum-pairs", Code: "a", Language: "go"})
	require.NoError(t, err)
	res, err := f.coordinator.SubmitSolution(context.Background(), ident("bob"), room.ID,
		SubmitParams{ProblemID: "two-sum-pairs", Code: "b", Language: "go"})
	require.NoError(t, err)
	require.True(t, res.ContestEnded)

	// in a duel the expected placement is 1, so the winner is neutral
	// and the loser pays round(40 * (1-2) / 2)
	aliceRec, err := f.ratingRepo.Get(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, aliceRec)
	assert.Equal(t, 1200, aliceRec.Rating)
	require.Len(t, aliceRec.RatingHistory, 1)
	assert.Equal(t, room.ID, aliceRec.RatingHistory[0].ContestID)
	assert.Equal(t, 1, aliceRec.RatingHistory[0].Placement)

	bobRec, err := f.ratingRepo.Get(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, bobRec)
	assert.Equal(t, 1180, bobRec.Rating)
	assert.Equal(t, -20, bobRec.RatingHistory[0].RatingChange)
	assert.Equal(t, 2, bobRec.RatingHistory[0].Placement)

	stats := bobRec.ContestStats[string(ModeDuel)]
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Played)
	assert.Equal(t, 0, stats.Wins)
}

func TestFinalizeEndedTimestampAndTransition(t *testing.T) {
	f := newTestFixture(t)
	room := f.startDuel(t)

	f.advance(10 * time.Minute)
	f.coordinator.Finalize(context.Background(), room)

	v := room.Snapshot()
	assert.Equal(t, StatusEnded, v.Status)
	require.NotNil(t, v.EndedAt)
	assert.Equal(t, f.now, *v.EndedAt)
	require.NotNil(t, v.Results)
	assert.Equal(t, 2, v.Results.TotalParticipants)
}

func TestEndTimerFiresFinalization(t *testing.T) {
	f := newTestFixture(t)
	var fire func()
	f.coordinator.schedule = func(d time.Duration, fn func()) *time.Timer {
		fire = fn
		return time.NewTimer(d)
	}

	room := f.startDuel(t)
	require.NotNil(t, fire, "auto-start must arm the end timer")
	assert.Equal(t, StatusActive, room.Snapshot().Status)

	f.advance(ModeDuel.Duration())
	fire()

	v := room.Snapshot()
	assert.Equal(t, StatusEnded, v.Status)
	require.NotNil(t, v.EndedAt)
	require.NotNil(t, v.Results)
	assert.Equal(t, 2, v.Results.TotalParticipants)

	// a late duplicate firing hits the idempotency gate
	fire()
	rec, err := f.ratingRepo.Get(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.RatingHistory, 1)
}

func TestDegenerateWaitingToEnded(t *testing.T) {
	f := newTestFixture(t)

	res, err := f.coordinator.CreateContest(context.Background(), ident("alice"), ModeQuad, nil)
	require.NoError(t, err)
	_, err = f.coordinator.JoinContest(context.Background(), ident("bob"), res.ContestID)
	require.NoError(t, err)

	// creator walks out of a waiting room that still has bob in it
	leaveRes, err := f.coordinator.LeaveContest(context.Background(), ident("alice"), res.ContestID)
	require.NoError(t, err)

	require.NotNil(t, leaveRes.Room)
	assert.Equal(t, StatusEnded, leaveRes.Room.Status)
	assert.Nil(t, leaveRes.Room.StartedAt)
	require.NotNil(t, leaveRes.Room.Results)
	assert.Equal(t, 1, leaveRes.Room.Results.TotalParticipants)
	assert.Equal(t, 0, leaveRes.Room.Results.Standings[0].RatingChange)
}
