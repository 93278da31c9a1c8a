package contest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionPointsMidContest(t *testing.T) {
	// 1200 seconds remaining of a 1800 second contest
	points := SubmissionPoints(600*time.Second, 1800*time.Second, true)
	assert.Equal(t, 220, points)
}

func TestSubmissionPointsAtStart(t *testing.T) {
	points := SubmissionPoints(0, 1800*time.Second, true)
	assert.Equal(t, 280, points)
}

func TestSubmissionPointsIncorrect(t *testing.T) {
	points := SubmissionPoints(600*time.Second, 1800*time.Second, false)
	assert.Equal(t, 0, points)
}

func TestSubmissionPointsAfterDeadline(t *testing.T) {
	// remaining time clamps at zero, only the base remains
	points := SubmissionPoints(2000*time.Second, 1800*time.Second, true)
	assert.Equal(t, 100, points)
}

func subAt(at time.Time) Submission {
	return Submission{SubmittedAt: at, Status: SubmAccepted}
}

func TestRankParticipantsByScore(t *testing.T) {
	base := time.Now()
	ps := []*Participant{
		{Email: "low", Score: 100, Submissions: []Submission{subAt(base)}},
		{Email: "high", Score: 250, Submissions: []Submission{subAt(base)}},
	}
	rankParticipants(ps)

	assert.Equal(t, "high", ps[0].Email)
	assert.Equal(t, 1, ps[0].Placement)
	assert.Equal(t, "low", ps[1].Email)
	assert.Equal(t, 2, ps[1].Placement)
}

func TestRankParticipantsTieBreakByLastSubmission(t *testing.T) {
	base := time.Now()
	ps := []*Participant{
		{Email: "late", Score: 200, Submissions: []Submission{subAt(base.Add(10 * time.Minute))}},
		{Email: "early", Score: 200, Submissions: []Submission{subAt(base.Add(5 * time.Minute))}},
	}
	rankParticipants(ps)

	assert.Equal(t, "early", ps[0].Email)
	assert.Equal(t, "late", ps[1].Email)
}

func TestRankParticipantsZeroSubmissionsLast(t *testing.T) {
	// a participant without submissions ranks below one with a
	// zero-score submission
	base := time.Now()
	ps := []*Participant{
		{Email: "idle", Score: 0},
		{Email: "tried", Score: 0, Submissions: []Submission{
			{SubmittedAt: base, Status: SubmWrongAnswer},
		}},
	}
	rankParticipants(ps)

	assert.Equal(t, "tried", ps[0].Email)
	assert.Equal(t, 1, ps[0].Placement)
	assert.Equal(t, "idle", ps[1].Email)
	assert.Equal(t, 2, ps[1].Placement)
}

func TestRankParticipantsStrictTotalOrder(t *testing.T) {
	base := time.Now()
	ps := make([]*Participant, 0, 4)
	for i := 0; i < 4; i++ {
		ps = append(ps, &Participant{
			Score:       150,
			Submissions: []Submission{subAt(base.Add(time.Duration(i) * time.Minute))},
		})
	}
	rankParticipants(ps)

	seen := map[int]bool{}
	for _, p := range ps {
		assert.False(t, seen[p.Placement], "placement %d assigned twice", p.Placement)
		seen[p.Placement] = true
	}
	assert.Len(t, seen, 4)
}
