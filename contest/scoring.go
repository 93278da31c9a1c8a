package contest

import (
	"math"
	"sort"
	"time"
)

// SubmissionPoints computes the point value of one submission. An
// accepted solution is worth a 100-point base plus a tenth of the
// remaining contest seconds; a rejected one is worth nothing.
func SubmissionPoints(elapsed, duration time.Duration, accepted bool) int {
	if !accepted {
		return 0
	}
	remaining := duration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return int(math.Round(100 + remaining.Seconds()/10))
}

// rankParticipants orders participants into final standings and assigns
// 1-based placements. Score descending; ties broken by earlier last
// submission; participants with no submissions sort after anyone who
// submitted. The sort is stable, so remaining ties keep join order.
// Caller holds the room lock.
func rankParticipants(ps []*Participant) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Score != ps[j].Score {
			return ps[i].Score > ps[j].Score
		}
		lastI, okI := ps[i].lastSubmissionAt()
		lastJ, okJ := ps[j].lastSubmissionAt()
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return lastI.Before(lastJ)
	})
	for i, p := range ps {
		p.Placement = i + 1
	}
}
