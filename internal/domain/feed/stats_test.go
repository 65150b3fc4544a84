// internal/domain/feed/stats_test.go

package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsFormula(t *testing.T) {
	tests := []struct {
		name        string
		weeklyPosts int
		activeUsers int
		wantScore   int
		wantLevel   ActivityLevel
	}{
		{"no activity", 0, 0, 0, LevelLow},
		{"below medium", 3, 0, 15, LevelLow},
		{"medium boundary", 4, 0, 20, LevelMedium},
		{"mixed medium", 2, 3, 40, LevelMedium},
		{"high boundary", 10, 0, 50, LevelHigh},
		{"high", 8, 3, 70, LevelHigh},
		{"fire boundary", 8, 4, 80, LevelFire},
		{"capped at 100", 50, 20, 100, LevelFire},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.weeklyPosts, tt.activeUsers)

			assert.Equal(t, tt.wantScore, stats.Score)
			assert.Equal(t, tt.wantLevel, stats.Level)
			assert.Equal(t, tt.weeklyPosts, stats.WeeklyPosts)
			assert.Equal(t, tt.activeUsers, stats.ActiveUsers)
		})
	}
}

func TestComputeStatsNeverExceeds100(t *testing.T) {
	for posts := 0; posts <= 30; posts += 5 {
		for users := 0; users <= 15; users += 5 {
			stats := ComputeStats(posts, users)
			assert.LessOrEqual(t, stats.Score, 100)
			assert.GreaterOrEqual(t, stats.Score, 0)
		}
	}
}
