package contest

import "math"

// KFactor selects the Elo sensitivity coefficient by current rating.
func KFactor(rating int) int {
	switch {
	case rating < 1500:
		return 40
	case rating < 2000:
		return 30
	default:
		return 20
	}
}

// RatingDelta is the post-contest rating change. The expected placement
// is the midpoint of the field; finishing above it earns points,
// finishing below it loses them. A field of one or zero participants is
// not a meaningful contest and moves no ratings.
func RatingDelta(rating, placement, totalParticipants int) int {
	if totalParticipants <= 1 {
		return 0
	}
	k := float64(KFactor(rating))
	expectedPlacement := float64(totalParticipants) / 2
	performanceDiff := expectedPlacement - float64(placement)
	return int(math.Round(k * performanceDiff / float64(totalParticipants)))
}

// EstimateRatingChange is the pre-contest estimator shown to users before
// they enter a contest. It uses a logistic expected-score model and damps
// K with experience, and intentionally differs from the RatingDelta
// model used at finalization; the two are kept as separate functions.
func EstimateRatingChange(rating, contestsPlayed, placement, totalParticipants int, avgOpponentRating float64) int {
	if totalParticipants <= 0 {
		return 0
	}

	k := float64(KFactor(rating))
	if contestsPlayed >= 50 {
		k *= 0.8
	}
	if contestsPlayed >= 100 {
		k *= 0.7
	}

	expectedScore := 1 / (1 + math.Pow(10, (avgOpponentRating-float64(rating))/400))
	actualScore := float64(totalParticipants-placement+1) / float64(totalParticipants)

	return int(math.Round(k * (actualScore - expectedScore)))
}
