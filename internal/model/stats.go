package model

import "time"

// DailyStat is a per-day counter document, kept separately per user and
// globally. Created on the first completion of that scope+day, incremented on
// every later one, never decremented.
type DailyStat struct {
	DateKey        string  `json:"dateKey"`
	TasksCompleted int     `json:"tasksCompleted"`
	CarbonOffsetKg float64 `json:"carbonOffsetKg"`
}

// GlobalTotals is the platform-wide counter singleton
type GlobalTotals struct {
	TasksCompleted int     `json:"tasksCompleted"`
	CarbonOffsetKg float64 `json:"carbonOffsetKg"`
}

// HomeStats is the response of GET /v1/stats/home
type HomeStats struct {
	User       HomeStatsUser `json:"user"`
	DailyStats []DailyStat   `json:"dailyStats"`
}

// HomeStatsUser is the profile slice shown on the home screen
type HomeStatsUser struct {
	UID                   string  `json:"uid"`
	Username              string  `json:"username"`
	Email                 string  `json:"email"`
	CarbonOffsetKgTotal   float64 `json:"carbonOffsetKgTotal"`
	TasksCompletedCount   int     `json:"tasksCompletedCount"`
	StreakCurrent         int     `json:"streakCurrent"`
	StreakBest            int     `json:"streakBest"`
	LastCompletionDateKey *string `json:"lastCompletionDateKey"`
}

// FeedPage is the response of GET /v1/feed
type FeedPage struct {
	Items      []CompletedTask `json:"items"`
	NextCursor *string         `json:"nextCursor"`
	Stats      FeedStats       `json:"stats"`
}

// FeedStats bundles the global aggregates shown alongside the feed
type FeedStats struct {
	Totals     GlobalTotals `json:"totals"`
	DailyStats []DailyStat  `json:"dailyStats"`
}

// LeaderboardEntry is one row of GET /v1/leaderboard
type LeaderboardEntry struct {
	Rank                int     `json:"rank"`
	UID                 string  `json:"uid"`
	Username            string  `json:"username"`
	City                string  `json:"city"`
	CarbonOffsetKgTotal float64 `json:"carbonOffsetKgTotal"`
	TasksCompletedCount int     `json:"tasksCompletedCount"`
}

// Leaderboard is the response of GET /v1/leaderboard
type Leaderboard struct {
	Items       []LeaderboardEntry `json:"items"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
