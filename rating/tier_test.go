package rating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codeclash/backend/rating"
)

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		rating int
		tier   string
	}{
		{0, "Bronze"},
		{899, "Bronze"},
		{900, "Silver"},
		{1199, "Silver"},
		{1200, "Gold"},
		{1499, "Gold"},
		{1500, "Platinum"},
		{1799, "Platinum"},
		{1800, "Diamond"},
		{2099, "Diamond"},
		{2100, "Master"},
		{2399, "Master"},
		{2400, "Grandmaster"},
		{3000, "Grandmaster"},
	}
	for _, c := range cases {
		assert.Equal(t, c.tier, rating.TierForRating(c.rating), "rating %d", c.rating)
	}
}

func TestPlacementBuckets(t *testing.T) {
	assert.Equal(t, rating.BucketWin, rating.PlacementBucket(1, 100))
	assert.Equal(t, rating.BucketWin, rating.PlacementBucket(1, 2))
	assert.Equal(t, rating.BucketTop10, rating.PlacementBucket(10, 100))
	assert.Equal(t, rating.BucketTop25, rating.PlacementBucket(25, 100))
	assert.Equal(t, rating.BucketTop50, rating.PlacementBucket(50, 100))
	assert.Equal(t, rating.BucketOther, rating.PlacementBucket(51, 100))
	assert.Equal(t, rating.BucketOther, rating.PlacementBucket(2, 2))
}
