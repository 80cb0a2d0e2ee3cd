package domain_test

import (
	"testing"
	"time"

	"github.com/perkvault/rewards_backend/internal/apperrors"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	a := domain.Achievement{
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}

	tests := []struct {
		name string
		at   time.Time
		want domain.AchievementStatus
	}{
		{"before start", a.StartDate.Add(-time.Second), domain.AchievementUpcoming},
		{"exactly at start", a.StartDate, domain.AchievementOngoing},
		{"mid range", now, domain.AchievementOngoing},
		{"exactly at end", a.EndDate, domain.AchievementOngoing},
		{"after end", a.EndDate.Add(time.Second), domain.AchievementExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.StatusAt(tt.at))
		})
	}
}

func TestProgressStatusFor(t *testing.T) {
	assert.Equal(t, domain.ProgressCompleted, domain.ProgressStatusFor(100))
	assert.Equal(t, domain.ProgressOnDoing, domain.ProgressStatusFor(99))
	assert.Equal(t, domain.ProgressOnDoing, domain.ProgressStatusFor(0))
}

func TestValidateClaim(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	active := domain.Achievement{
		ID:            7,
		DiamondReward: 50,
		StartDate:     now.Add(-48 * time.Hour),
		EndDate:       now.Add(48 * time.Hour),
	}
	complete := &domain.AchievementProgress{
		AchievementID:      7,
		ProgressPercentage: 100,
		Status:             domain.ProgressCompleted,
	}

	t.Run("eligible", func(t *testing.T) {
		assert.NoError(t, domain.ValidateClaim(active, complete, now))
	})

	t.Run("expired even at full progress", func(t *testing.T) {
		expired := active
		expired.EndDate = now.Add(-24 * time.Hour)
		err := domain.ValidateClaim(expired, complete, now)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("claimable at the exact end instant", func(t *testing.T) {
		edge := active
		edge.EndDate = now
		assert.NoError(t, domain.ValidateClaim(edge, complete, now))
	})

	t.Run("no progress row", func(t *testing.T) {
		err := domain.ValidateClaim(active, nil, now)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("already claimed", func(t *testing.T) {
		claimedAt := now.Add(-time.Hour)
		claimed := &domain.AchievementProgress{
			AchievementID:      7,
			ProgressPercentage: 100,
			Status:             domain.ProgressClaimed,
			ClaimedAt:          &claimedAt,
		}
		err := domain.ValidateClaim(active, claimed, now)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "already claimed")
	})

	t.Run("incomplete progress", func(t *testing.T) {
		partial := &domain.AchievementProgress{
			AchievementID:      7,
			ProgressPercentage: 80,
			Status:             domain.ProgressOnDoing,
		}
		err := domain.ValidateClaim(active, partial, now)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Contains(t, err.Error(), "not completed")
	})
}
