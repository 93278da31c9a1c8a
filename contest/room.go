package contest

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/codeclash/backend/problemset"
)

// Status is the lifecycle state of a contest room.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusActive  Status = "active"
	StatusEnded   Status = "ended"
)

// SubmStatus is the recorded outcome of one submission.
type SubmStatus string

const (
	SubmAccepted    SubmStatus = "accepted"
	SubmWrongAnswer SubmStatus = "wrong_answer"
)

// Submission is immutable once appended to a participant.
type Submission struct {
	ID          string     `json:"id"`
	ProblemID   string     `json:"problem_id"`
	Code        string     `json:"code"`
	Language    string     `json:"language"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Status      SubmStatus `json:"status"`
	Score       int        `json:"score"`
	ExecTimeMs  int        `json:"exec_time_ms"`
}

// Identity names the caller of a coordinator operation.
type Identity struct {
	Email string
	Name  string
}

// Participant is one enrolled user inside a room. Placement, RatingChange
// and NewRating are set only by finalization.
type Participant struct {
	Email        string
	Name         string
	JoinedAt     time.Time
	RatingAtJoin int
	Submissions  []Submission
	Score        int

	Placement    int
	RatingChange int
	NewRating    int
}

func (p *Participant) lastSubmissionAt() (time.Time, bool) {
	if len(p.Submissions) == 0 {
		return time.Time{}, false
	}
	return p.Submissions[len(p.Submissions)-1].SubmittedAt, true
}

// Results is the summary attached to a room at finalization.
type Results struct {
	TotalParticipants int        `json:"total_participants"`
	Standings         []Standing `json:"standings"`
}

type Standing struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	Placement    int    `json:"placement"`
	RatingChange int    `json:"rating_change"`
	NewRating    int    `json:"new_rating"`
}

// Room is a live contest. All field access after construction goes
// through the room mutex; compound check-and-mutate sequences (capacity
// check then append, last-participant check then evict) hold it for the
// whole sequence.
type Room struct {
	mu sync.Mutex

	ID           string
	Mode         Mode
	Status       Status
	CreatorEmail string
	Participants []*Participant
	Problems     []problemset.Problem
	CreatedAt    time.Time
	StartedAt    *time.Time
	EndedAt      *time.Time
	Results      *Results

	endTimer *time.Timer // deferred finalization, nil until auto-start

	// deleted is set under the lock when the room is evicted from the
	// registry. An operation that resolved the room pointer before the
	// eviction must observe it after acquiring the lock.
	deleted bool
}

func newRoom(mode Mode, creator Participant, problems []problemset.Problem, now time.Time) *Room {
	creator.JoinedAt = now
	return &Room{
		ID:           newRoomID(now),
		Mode:         mode,
		Status:       StatusWaiting,
		CreatorEmail: creator.Email,
		Participants: []*Participant{&creator},
		Problems:     problems,
		CreatedAt:    now,
	}
}

// newRoomID builds a timestamp-plus-random-suffix identifier. Six random
// bytes keep the collision probability negligible over any realistic
// number of live rooms.
func newRoomID(now time.Time) string {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		// the platform RNG is broken; IDs without the full suffix
		// would silently collide
		panic(fmt.Sprintf("failed to read random room ID suffix: %v", err))
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), hex.EncodeToString(suffix))
}

// transitionTo enforces the room state machine: waiting -> active,
// waiting -> ended (creator left while waiting), active -> ended.
// Timestamps are set together with the transition. Caller holds the lock.
func (r *Room) transitionTo(status Status, now time.Time) error {
	switch {
	case r.Status == StatusWaiting && status == StatusActive:
		t := now
		r.StartedAt = &t
	case r.Status == StatusWaiting && status == StatusEnded,
		r.Status == StatusActive && status == StatusEnded:
		t := now
		r.EndedAt = &t
	default:
		return fmt.Errorf("illegal contest status transition %s -> %s", r.Status, status)
	}
	r.Status = status
	return nil
}

func (r *Room) participant(email string) *Participant {
	for _, p := range r.Participants {
		if p.Email == email {
			return p
		}
	}
	return nil
}

// View types are plain snapshots handed out to callers so that no one
// outside the coordinator holds a reference into a live room.

type RoomView struct {
	ID              string               `json:"id"`
	Mode            Mode                 `json:"mode"`
	Status          Status               `json:"status"`
	Capacity        int                  `json:"capacity"`
	DurationSeconds int                  `json:"duration_seconds"`
	CreatorEmail    string               `json:"creator_email"`
	Participants    []ParticipantView    `json:"participants"`
	Problems        []problemset.Problem `json:"problems"`
	CreatedAt       time.Time            `json:"created_at"`
	StartedAt       *time.Time           `json:"started_at,omitempty"`
	EndedAt         *time.Time           `json:"ended_at,omitempty"`
	Results         *Results             `json:"results,omitempty"`
}

type ParticipantView struct {
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	JoinedAt     time.Time    `json:"joined_at"`
	RatingAtJoin int          `json:"rating_at_join"`
	Submissions  []Submission `json:"submissions"`
	Score        int          `json:"score"`
	Placement    int          `json:"placement,omitempty"`
	RatingChange int          `json:"rating_change,omitempty"`
	NewRating    int          `json:"new_rating,omitempty"`
}

// view snapshots the room. Caller holds the lock.
func (r *Room) view() RoomView {
	v := RoomView{
		ID:              r.ID,
		Mode:            r.Mode,
		Status:          r.Status,
		Capacity:        r.Mode.Capacity(),
		DurationSeconds: int(r.Mode.Duration().Seconds()),
		CreatorEmail:    r.CreatorEmail,
		Problems:        r.Problems,
		CreatedAt:       r.CreatedAt,
		Results:         r.Results,
	}
	if r.StartedAt != nil {
		t := *r.StartedAt
		v.StartedAt = &t
	}
	if r.EndedAt != nil {
		t := *r.EndedAt
		v.EndedAt = &t
	}
	for _, p := range r.Participants {
		v.Participants = append(v.Participants, participantView(p))
	}
	return v
}

// Snapshot locks the room and returns a copy of its current state.
func (r *Room) Snapshot() RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view()
}

func participantView(p *Participant) ParticipantView {
	subs := make([]Submission, len(p.Submissions))
	copy(subs, p.Submissions)
	return ParticipantView{
		Email:        p.Email,
		Name:         p.Name,
		JoinedAt:     p.JoinedAt,
		RatingAtJoin: p.RatingAtJoin,
		Submissions:  subs,
		Score:        p.Score,
		Placement:    p.Placement,
		RatingChange: p.RatingChange,
		NewRating:    p.NewRating,
	}
}
