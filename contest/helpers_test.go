package contest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/rating"
	"github.com/codeclash/backend/srvcerror"
)

type testFixture struct {
	coordinator *Coordinator
	registry    *InMemRegistry
	ratingRepo  *rating.InMemRatingRepo
	judge       *judge.StubJudge
	now         time.Time
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		registry:   NewInMemRegistry(),
		ratingRepo: rating.NewInMemRatingRepo(),
		judge:      judge.NewStubJudge(),
		now:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.coordinator = NewCoordinator(f.registry, rating.NewRatingSrvc(f.ratingRepo), f.judge)
	f.coordinator.now = func() time.Time { return f.now }
	return f
}

func (f *testFixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func ident(name string) Identity {
	return Identity{Email: name + "@example.com", Name: name}
}

// createDuel creates a duel room with alice as creator.
func (f *testFixture) createDuel(t *testing.T) *Room {
	t.Helper()
	res, err := f.coordinator.CreateContest(context.Background(), ident("alice"), ModeDuel, nil)
	require.NoError(t, err)
	room, ok := f.registry.Get(res.ContestID)
	require.True(t, ok)
	return room
}

// startDuel creates a duel and has bob join it, auto-starting it.
func (f *testFixture) startDuel(t *testing.T) *Room {
	t.Helper()
	room := f.createDuel(t)
	res, err := f.coordinator.JoinContest(context.Background(), ident("bob"), room.ID)
	require.NoError(t, err)
	require.True(t, res.AutoStarted)
	return room
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr), "expected a service error, got %v", err)
	require.Equal(t, code, srvcErr.ErrorCode())
}
