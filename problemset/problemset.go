package problemset

import "math/rand"

type Problem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
}

var problems = []Problem{
	{ID: "two-sum-pairs", Title: "Two Sum Pairs", Difficulty: "easy"},
	{ID: "balanced-brackets", Title: "Balanced Brackets", Difficulty: "easy"},
	{ID: "rotate-matrix", Title: "Rotate Matrix", Difficulty: "easy"},
	{ID: "longest-unique-substr", Title: "Longest Unique Substring", Difficulty: "medium"},
	{ID: "merge-intervals", Title: "Merge Intervals", Difficulty: "medium"},
	{ID: "word-ladder", Title: "Word Ladder", Difficulty: "medium"},
	{ID: "course-schedule", Title: "Course Schedule", Difficulty: "medium"},
	{ID: "median-two-arrays", Title: "Median of Two Sorted Arrays", Difficulty: "hard"},
	{ID: "edit-distance", Title: "Edit Distance", Difficulty: "hard"},
	{ID: "sliding-window-max", Title: "Sliding Window Maximum", Difficulty: "hard"},
}

// List returns all problems in the built-in pool.
func List() []Problem {
	res := make([]Problem, len(problems))
	copy(res, problems)
	return res
}

func GetByID(id string) (Problem, error) {
	for _, p := range problems {
		if p.ID == id {
			return p, nil
		}
	}
	return Problem{}, ErrProblemNotFound()
}

// Pick selects count distinct random problems from the pool. If count
// exceeds the pool size the whole pool is returned.
func Pick(count int) []Problem {
	pool := List()
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}
