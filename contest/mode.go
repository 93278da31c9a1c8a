package contest

import "time"

// Mode is a contest format with a fixed player capacity, duration and
// problem count.
type Mode string

const (
	ModeDuel         Mode = "duel"
	ModeQuad         Mode = "quad"
	ModeBattleground Mode = "battleground"
)

type modeParams struct {
	capacity     int
	duration     time.Duration
	problemCount int
}

var modes = map[Mode]modeParams{
	ModeDuel:         {capacity: 2, duration: 30 * time.Minute, problemCount: 1},
	ModeQuad:         {capacity: 4, duration: 45 * time.Minute, problemCount: 2},
	ModeBattleground: {capacity: 100, duration: 60 * time.Minute, problemCount: 3},
}

func (m Mode) Valid() bool {
	_, ok := modes[m]
	return ok
}

func (m Mode) Capacity() int {
	return modes[m].capacity
}

func (m Mode) Duration() time.Duration {
	return modes[m].duration
}

func (m Mode) ProblemCount() int {
	return modes[m].problemCount
}
