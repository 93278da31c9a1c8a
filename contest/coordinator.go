package contest

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/problemset"
	"github.com/codeclash/backend/rating"
	"github.com/codeclash/backend/srvcerror"
	"github.com/google/uuid"
)

// Coordinator orchestrates contest rooms: create/join/submit/leave
// requests, lifecycle transitions, and the scoring and rating steps at
// contest end. It is invoked per-request; the per-room locks are the
// only synchronization between concurrent participants.
type Coordinator struct {
	logger *slog.Logger

	registry Registry
	ratings  *rating.RatingSrvc
	judge    judge.Judge

	now      func() time.Time
	schedule func(d time.Duration, fn func()) *time.Timer
}

func NewCoordinator(registry Registry, ratings *rating.RatingSrvc, j judge.Judge) *Coordinator {
	return &Coordinator{
		logger:   slog.Default().With("module", "contest"),
		registry: registry,
		ratings:  ratings,
		judge:    j,
		now:      time.Now,
		schedule: time.AfterFunc,
	}
}

type CreateResult struct {
	ContestID string
	Room      RoomView
}

// CreateContest opens a new room with the caller pre-enrolled as its
// first participant. Problems may be chosen explicitly by ID; otherwise
// a random set sized for the mode is assigned.
func (c *Coordinator) CreateContest(ctx context.Context, ident Identity, mode Mode, problemIDs []string) (*CreateResult, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode()
	}

	var problems []problemset.Problem
	if len(problemIDs) > 0 {
		for _, id := range problemIDs {
			p, err := problemset.GetByID(id)
			if err != nil {
				return nil, err
			}
			problems = append(problems, p)
		}
	} else {
		problems = problemset.Pick(mode.ProblemCount())
	}

	ratingSnapshot, err := c.ratings.CurrentRating(ctx, ident.Email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	creator := Participant{
		Email:        ident.Email,
		Name:         ident.Name,
		RatingAtJoin: ratingSnapshot,
	}

	room, err := c.registry.Create(mode, creator, problems, c.now())
	if err != nil {
		return nil, err
	}

	c.logger.Info("contest created",
		"contest_id", room.ID, "mode", mode, "creator", ident.Email)

	return &CreateResult{ContestID: room.ID, Room: room.Snapshot()}, nil
}

type JoinResult struct {
	Room        RoomView
	AutoStarted bool
}

// JoinContest enrolls the caller into a waiting room. Filling the last
// slot starts the contest and schedules the end-of-contest timer.
func (c *Coordinator) JoinContest(ctx context.Context, ident Identity, contestID string) (*JoinResult, error) {
	room, ok := c.registry.Get(contestID)
	if !ok {
		return nil, ErrContestNotFound()
	}

	// rating snapshot is read before taking the room lock so that slow
	// storage never blocks other participants' operations on the room
	ratingSnapshot, err := c.ratings.CurrentRating(ctx, ident.Email)
	if err != nil {
		return nil, srvcerror.ErrInternalSE().SetDebug(err)
	}

	now := c.now()

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.deleted {
		return nil, ErrContestNotFound()
	}
	if room.Status != StatusWaiting {
		return nil, ErrContestAlreadyStarted()
	}
	if len(room.Participants) >= room.Mode.Capacity() {
		return nil, ErrContestFull()
	}
	if room.participant(ident.Email) != nil {
		return nil, ErrAlreadyJoined()
	}

	room.Participants = append(room.Participants, &Participant{
		Email:        ident.Email,
		Name:         ident.Name,
		JoinedAt:     now,
		RatingAtJoin: ratingSnapshot,
	})

	autoStarted := false
	if len(room.Participants) == room.Mode.Capacity() {
		if err := room.transitionTo(StatusActive, now); err != nil {
			return nil, srvcerror.ErrInternalSE().SetDebug(err)
		}
		c.scheduleEndTimer(room)
		autoStarted = true
		c.logger.Info("contest auto-started",
			"contest_id", room.ID, "participants", len(room.Participants))
	}

	return &JoinResult{Room: room.view(), AutoStarted: autoStarted}, nil
}

type SubmitParams struct {
	ProblemID string
	Code      string
	Language  string
}

type SubmitResult struct {
	Submission   Submission
	Participant  ParticipantView
	Room         RoomView
	ContestEnded bool

	// JudgeError carries the evaluator's error code when the verdict
	// could not be obtained; the submission is then scored as incorrect.
	JudgeError string
}

// SubmitSolution runs the caller's code through the judge and credits
// points by remaining contest time. The room lock is released for the
// duration of the judge call; membership and phase are re-checked after
// it returns.
func (c *Coordinator) SubmitSolution(ctx context.Context, ident Identity, contestID string, params SubmitParams) (*SubmitResult, error) {
	room, ok := c.registry.Get(contestID)
	if !ok {
		return nil, ErrContestNotFound()
	}

	room.mu.Lock()
	if room.deleted {
		room.mu.Unlock()
		return nil, ErrContestNotFound()
	}
	if room.Status != StatusActive {
		room.mu.Unlock()
		return nil, ErrContestNotActive()
	}
	if room.participant(ident.Email) == nil {
		room.mu.Unlock()
		return nil, ErrNotAParticipant()
	}
	startedAt := *room.StartedAt
	duration := room.Mode.Duration()
	room.mu.Unlock()

	verdict, judgeErr := c.judge.Evaluate(ctx, judge.EvalRequest{
		ProblemID: params.ProblemID,
		Code:      params.Code,
		Language:  params.Language,
	})
	if judgeErr != nil {
		c.logger.Warn("judge evaluation failed",
			"contest_id", contestID, "user", ident.Email, "error", judgeErr)
	}
	accepted := judgeErr == nil && verdict.Accepted

	now := c.now()

	room.mu.Lock()
	defer room.mu.Unlock()

	// the contest may have ended or been evicted while the judge was running
	if room.deleted {
		return nil, ErrContestNotFound()
	}
	if room.Status != StatusActive {
		return nil, ErrContestNotActive()
	}
	p := room.participant(ident.Email)
	if p == nil {
		return nil, ErrNotAParticipant()
	}

	elapsed := now.Sub(startedAt)
	points := SubmissionPoints(elapsed, duration, accepted)

	status := SubmWrongAnswer
	if accepted {
		status = SubmAccepted
	}
	sub := Submission{
		ID:          uuid.New().String(),
		ProblemID:   params.ProblemID,
		Code:        params.Code,
		Language:    params.Language,
		SubmittedAt: now,
		Status:      status,
		Score:       points,
		ExecTimeMs:  verdict.ExecTimeMs,
	}
	p.Submissions = append(p.Submissions, sub)
	p.Score += points

	ended := false
	if c.allSubmitted(room) || elapsed >= duration {
		c.finalizeLocked(ctx, room, now)
		ended = true
	}

	res := &SubmitResult{
		Submission:   sub,
		Participant:  participantView(p),
		Room:         room.view(),
		ContestEnded: ended,
	}
	if judgeErr != nil {
		res.JudgeError = judge.ErrCodeEvaluatorUnavailable
	}
	return res, nil
}

// allSubmitted reports whether every enrolled participant has made at
// least one submission. Caller holds the lock.
func (c *Coordinator) allSubmitted(room *Room) bool {
	for _, p := range room.Participants {
		if len(p.Submissions) == 0 {
			return false
		}
	}
	return true
}

type LeaveResult struct {
	Room           *RoomView
	ContestDeleted bool
}

// LeaveContest removes the caller from a room. An emptied room is
// evicted without finalization; the creator leaving a non-empty room
// finalizes it immediately, whatever phase it is in. Leaving an
// already-ended room changes nothing.
func (c *Coordinator) LeaveContest(ctx context.Context, ident Identity, contestID string) (*LeaveResult, error) {
	room, ok := c.registry.Get(contestID)
	if !ok {
		return nil, ErrContestNotFound()
	}

	now := c.now()

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.deleted {
		return nil, ErrContestNotFound()
	}
	p := room.participant(ident.Email)
	if p == nil {
		return nil, ErrNotAParticipant()
	}

	if room.Status == StatusEnded {
		v := room.view()
		return &LeaveResult{Room: &v}, nil
	}

	remaining := make([]*Participant, 0, len(room.Participants)-1)
	for _, rp := range room.Participants {
		if rp.Email != ident.Email {
			remaining = append(remaining, rp)
		}
	}
	room.Participants = remaining

	if len(room.Participants) == 0 {
		// no meaningful contest took place
		if room.endTimer != nil {
			room.endTimer.Stop()
		}
		room.deleted = true
		c.registry.Remove(room.ID)
		c.logger.Info("contest evicted, last participant left", "contest_id", room.ID)
		return &LeaveResult{ContestDeleted: true}, nil
	}

	if ident.Email == room.CreatorEmail {
		c.logger.Info("creator left, finalizing contest", "contest_id", room.ID)
		c.finalizeLocked(ctx, room, now)
	}

	v := room.view()
	return &LeaveResult{Room: &v}, nil
}

type StatusResult struct {
	Room          RoomView
	IsParticipant bool
}

func (c *Coordinator) GetContestStatus(ctx context.Context, ident Identity, contestID string) (*StatusResult, error) {
	room, ok := c.registry.Get(contestID)
	if !ok {
		return nil, ErrContestNotFound()
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.deleted {
		return nil, ErrContestNotFound()
	}
	return &StatusResult{
		Room:          room.view(),
		IsParticipant: room.participant(ident.Email) != nil,
	}, nil
}

func (c *Coordinator) ListActiveContests(ctx context.Context) []RoomView {
	return c.registry.List(func(v RoomView) bool {
		return v.Status == StatusActive
	})
}

// ListJoinableContests returns waiting, not-full rooms the caller has
// not already joined.
func (c *Coordinator) ListJoinableContests(ctx context.Context, ident Identity) []RoomView {
	return c.registry.List(func(v RoomView) bool {
		if v.Status != StatusWaiting {
			return false
		}
		if len(v.Participants) >= v.Capacity {
			return false
		}
		for _, p := range v.Participants {
			if p.Email == ident.Email {
				return false
			}
		}
		return true
	})
}
