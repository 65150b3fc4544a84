// internal/domain/feed/stats.go

package feed

// ComputeStats derives the barometer score and level from weekly counts.
// score = min(100, weeklyPosts*5 + activeUsers*10), with fixed level
// breakpoints at 20/50/80.
func ComputeStats(weeklyPosts, activeUsers int) ActivityStats {
	score := weeklyPosts*5 + activeUsers*10
	if score > 100 {
		score = 100
	}

	return ActivityStats{
		Score:       score,
		Level:       levelFor(score),
		WeeklyPosts: weeklyPosts,
		ActiveUsers: activeUsers,
	}
}

func levelFor(score int) ActivityLevel {
	switch {
	case score >= 80:
		return LevelFire
	case score >= 50:
		return LevelHigh
	case score >= 20:
		return LevelMedium
	default:
		return LevelLow
	}
}
