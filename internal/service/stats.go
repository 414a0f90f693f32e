package service

import (
	"context"
	"strings"

	"github.com/fernhq/fern/api/internal/clock"
	"github.com/fernhq/fern/api/internal/model"
)

const (
	homeStatsDays = 30

	feedDefaultLimit = 15
	feedMaxLimit     = 30

	leaderboardDefaultLimit = 10
	leaderboardMaxLimit     = 100
)

// StatsRepository defines the read interface for stats, feed, and leaderboard
type StatsRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListUserDailyStats(ctx context.Context, userID string, limit int) ([]model.DailyStat, error)
	ListGlobalDailyStats(ctx context.Context, limit int) ([]model.DailyStat, error)
	GetGlobalTotals(ctx context.Context) (*model.GlobalTotals, error)
	ListFeed(ctx context.Context, cursor string, limit int) ([]model.CompletedTask, *string, error)
	TopByOffset(ctx context.Context, limit int) ([]*model.User, error)
}

// StatsService handles home stats, the global feed, and the leaderboard
type StatsService struct {
	repo  StatsRepository
	clock *clock.Clock
}

// StatsServiceConfig holds configuration for the stats service
type StatsServiceConfig struct {
	Repo  StatsRepository
	Clock *clock.Clock
}

// NewStatsService creates a new stats service
func NewStatsService(cfg StatsServiceConfig) *StatsService {
	return &StatsService{
		repo:  cfg.Repo,
		clock: cfg.Clock,
	}
}

// HomeStats returns the caller's counters plus their last 30 daily stats,
// oldest first.
func (s *StatsService) HomeStats(ctx context.Context, userID string) (*model.HomeStats, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	dailyStats, err := s.repo.ListUserDailyStats(ctx, userID, homeStatsDays)
	if err != nil {
		return nil, err
	}

	return &model.HomeStats{
		User: model.HomeStatsUser{
			UID:                   user.ID,
			Username:              user.Username,
			Email:                 user.Email,
			CarbonOffsetKgTotal:   user.CarbonOffsetKgTotal,
			TasksCompletedCount:   user.TasksCompletedCount,
			StreakCurrent:         user.StreakCurrent,
			StreakBest:            user.StreakBest,
			LastCompletionDateKey: user.LastCompletionDateKey,
		},
		DailyStats: dailyStats,
	}, nil
}

// Feed returns a page of global completion records, newest first, plus the
// global aggregates. An unknown cursor yields an empty page, not an error.
func (s *StatsService) Feed(ctx context.Context, cursor string, limit int) (*model.FeedPage, error) {
	if limit <= 0 {
		limit = feedDefaultLimit
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}

	items, nextCursor, err := s.repo.ListFeed(ctx, cursor, limit)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.GetGlobalTotals(ctx)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = &model.GlobalTotals{}
	}

	dailyStats, err := s.repo.ListGlobalDailyStats(ctx, homeStatsDays)
	if err != nil {
		return nil, err
	}

	return &model.FeedPage{
		Items:      items,
		NextCursor: nextCursor,
		Stats: model.FeedStats{
			Totals:     *totals,
			DailyStats: dailyStats,
		},
	}, nil
}

// Leaderboard ranks users by lifetime carbon offset, descending
func (s *StatsService) Leaderboard(ctx context.Context, limit int) (*model.Leaderboard, error) {
	if limit <= 0 {
		limit = leaderboardDefaultLimit
	}
	if limit > leaderboardMaxLimit {
		limit = leaderboardMaxLimit
	}

	users, err := s.repo.TopByOffset(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		items = append(items, model.LeaderboardEntry{
			Rank:                i + 1,
			UID:                 u.ID,
			Username:            displayName(u),
			City:                u.City,
			CarbonOffsetKgTotal: u.CarbonOffsetKgTotal,
			TasksCompletedCount: u.TasksCompletedCount,
		})
	}

	return &model.Leaderboard{
		Items:       items,
		GeneratedAt: s.clock.Now(),
	}, nil
}

// displayName falls back to the email local part when no username is set
func displayName(u *model.User) string {
	if u.Username != "" {
		return u.Username
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "Anonymous"
}
