package service

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeRatingApprovedOnly(t *testing.T) {
	reviews := []model.Review{
		{Rating: 5, Status: model.ReviewApproved},
		{Rating: 4, Status: model.ReviewApproved},
		{Rating: 1, Status: model.ReviewPending},
		{Rating: 1, Status: model.ReviewRejected},
	}

	avg, count := RecomputeRating(reviews)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, count)
}

func TestRecomputeRatingRoundsToOneDecimal(t *testing.T) {
	reviews := []model.Review{
		{Rating: 5, Status: model.ReviewApproved},
		{Rating: 4, Status: model.ReviewApproved},
		{Rating: 4, Status: model.ReviewApproved},
	}

	// 13/3 = 4.333... -> 4.3
	avg, count := RecomputeRating(reviews)
	assert.Equal(t, 4.3, avg)
	assert.Equal(t, 3, count)
}

func TestRecomputeRatingEmpty(t *testing.T) {
	avg, count := RecomputeRating(nil)
	assert.Zero(t, avg)
	assert.Zero(t, count)

	// 全部待审也视为无评分
	avg, count = RecomputeRating([]model.Review{{Rating: 5, Status: model.ReviewPending}})
	assert.Zero(t, avg)
	assert.Zero(t, count)
}
