package rating

// TierForRating maps a numeric rating to its human-readable band.
func TierForRating(rating int) string {
	switch {
	case rating < 900:
		return "Bronze"
	case rating < 1200:
		return "Silver"
	case rating < 1500:
		return "Gold"
	case rating < 1800:
		return "Platinum"
	case rating < 2100:
		return "Diamond"
	case rating < 2400:
		return "Master"
	default:
		return "Grandmaster"
	}
}
