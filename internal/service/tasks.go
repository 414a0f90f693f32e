package service

import (
	"context"
	"time"

	"github.com/fernhq/fern/api/internal/clock"
	"github.com/fernhq/fern/api/internal/database"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/google/uuid"
)

const (
	// Extra attempts after a retryable completion failure
	completionMaxRetries = 2
	completionRetryDelay = 150 * time.Millisecond

	// Per-task offset bounds accepted from the suggestion service
	maxTaskOffsetKg = 50
)

// DailyTaskContext is the profile snapshot given to the suggestion service.
// It carries the compact questionnaire summary rather than raw answers.
type DailyTaskContext struct {
	CompactSummary     string
	TopEmissionArea    string
	InitialFootprintKg *float64
	City               string
	StreakCurrent      int
	RecentTaskTitles   []string
}

// DailyTaskSuggester produces raw task proposals for a user profile
type DailyTaskSuggester interface {
	GenerateDailyTasks(ctx context.Context, profile *DailyTaskContext) ([]model.GeneratedTask, error)
}

// TaskRepository defines the interface for daily task and completion storage
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	ReplaceDailyTasks(ctx context.Context, userID string, expectedRev int, tasks []model.Task, meta *model.DailyTasksMeta) error
	ApplyCompletion(ctx context.Context, apply *model.CompletionApply) error
	GetUserDailyStat(ctx context.Context, userID, dateKey string) (*model.DailyStat, error)
}

// TaskCommunityReader resolves community names for completion fan-out
type TaskCommunityReader interface {
	GetByID(ctx context.Context, id string) (*model.Community, error)
}

// TaskService handles daily task generation and completion
type TaskService struct {
	repo        TaskRepository
	communities TaskCommunityReader
	suggester   DailyTaskSuggester
	clock       *clock.Clock
}

// TaskServiceConfig holds configuration for the task service
type TaskServiceConfig struct {
	Repo        TaskRepository
	Communities TaskCommunityReader
	Suggester   DailyTaskSuggester
	Clock       *clock.Clock
}

// NewTaskService creates a new task service
func NewTaskService(cfg TaskServiceConfig) *TaskService {
	return &TaskService{
		repo:        cfg.Repo,
		communities: cfg.Communities,
		suggester:   cfg.Suggester,
		clock:       cfg.Clock,
	}
}

// nextStreak computes the streak transition for a completion on todayKey.
// Same-day completions never lower an established streak.
func nextStreak(lastKey *string, todayKey, yesterdayKey string, current, best int) (int, int) {
	next := 1
	if lastKey != nil {
		switch *lastKey {
		case todayKey:
			next = current
			if next < 1 {
				next = 1
			}
		case yesterdayKey:
			next = current + 1
		}
	}
	if next > best {
		best = next
	}
	return next, best
}

// GetDailyTasks returns today's batch, generating a fresh one when the stored
// batch is stale or absent. Generation is all-or-nothing: a bad proposal set
// leaves the previous batch untouched.
func (s *TaskService) GetDailyTasks(ctx context.Context, userID string) (*model.DailyTaskBatch, error) {
	todayKey := s.clock.TodayKey()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.DailyTasksMeta != nil && user.DailyTasksMeta.DateKey == todayKey {
		return &model.DailyTaskBatch{DateKey: todayKey, Tasks: user.DailyTasks}, nil
	}

	profile := s.buildTaskContext(user)
	proposals, err := s.suggester.GenerateDailyTasks(ctx, profile)
	if err != nil {
		return nil, ErrSuggestionFailed
	}
	if len(proposals) != model.DailyTaskCount {
		return nil, ErrSuggestionFailed
	}

	now := s.clock.Now()
	tasks := make([]model.Task, 0, len(proposals))
	for _, p := range proposals {
		difficulty := p.Difficulty
		if !model.ValidDifficulty(difficulty) {
			difficulty = model.DifficultyMedium
		}
		offset := Round1(p.CarbonOffsetKg)
		if offset < 0 {
			offset = 0
		}
		if offset > maxTaskOffsetKg {
			offset = maxTaskOffsetKg
		}
		tasks = append(tasks, model.Task{
			ID:             uuid.New().String(),
			Title:          p.Title,
			CarbonOffsetKg: offset,
			Difficulty:     difficulty,
			Reason:         p.Reason,
			DateKey:        todayKey,
			CreatedAt:      now,
		})
	}

	meta := &model.DailyTasksMeta{DateKey: todayKey, GeneratedAt: now}
	if err := s.repo.ReplaceDailyTasks(ctx, userID, user.Rev, tasks, meta); err != nil {
		return nil, err
	}

	return &model.DailyTaskBatch{DateKey: todayKey, Tasks: tasks}, nil
}

// CompleteTask removes a pending task and commits counters, streak, daily
// stats, global totals, and the fan-out records in one atomic write. Retries
// the whole read-compute-commit cycle on retryable storage failures.
func (s *TaskService) CompleteTask(ctx context.Context, userID string, req *model.CompleteTaskRequest) (*model.CompleteTaskResult, error) {
	var lastErr error
	for attempt := 0; attempt <= completionMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * completionRetryDelay):
			}
		}

		result, err := s.completeOnce(ctx, userID, req)
		if err == nil {
			return result, nil
		}
		if !database.IsRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *TaskService) completeOnce(ctx context.Context, userID string, req *model.CompleteTaskRequest) (*model.CompleteTaskResult, error) {
	todayKey := s.clock.TodayKey()
	yesterdayKey := s.clock.YesterdayKey()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	task := user.FindDailyTask(req.DailyTaskID)
	if task == nil {
		return nil, ErrTaskNotFound
	}

	// A task held over past midnight stays completable until regeneration
	// replaces the batch; the completion is credited to the task's own day.
	dateKey := task.DateKey
	if dateKey == "" {
		dateKey = todayKey
	}

	streakCurrent, streakBest := nextStreak(
		user.LastCompletionDateKey, todayKey, yesterdayKey,
		user.StreakCurrent, user.StreakBest,
	)

	// Rounded once here; stored, returned, and aggregated values all match
	offset := Round1(task.CarbonOffsetKg)

	remaining := make([]model.Task, 0, len(user.DailyTasks)-1)
	for _, t := range user.DailyTasks {
		if t.ID != task.ID {
			remaining = append(remaining, t)
		}
	}

	now := s.clock.Now()
	record := &model.CompletedTask{
		ID:             uuid.New().String(),
		UID:            user.ID,
		Username:       user.Username,
		UserEmail:      user.Email,
		Title:          task.Title,
		CarbonOffsetKg: offset,
		ImageURL:       req.ImageURL,
		DateKey:        dateKey,
		CompletedAt:    now,
		SourceTaskID:   task.ID,
	}

	if communityID := user.PrimaryCommunityID(); communityID != "" {
		record.CommunityID = &communityID
		if community, err := s.communities.GetByID(ctx, communityID); err == nil && community != nil {
			record.CommunityName = &community.Name
		}
	}

	apply := &model.CompletionApply{
		UserID:                user.ID,
		ExpectedRev:           user.Rev,
		DateKey:               dateKey,
		RemainingTasks:        remaining,
		Record:                record,
		CarbonOffsetKg:        offset,
		StreakCurrent:         streakCurrent,
		StreakBest:            streakBest,
		LastCompletionDateKey: todayKey,
	}
	if err := s.repo.ApplyCompletion(ctx, apply); err != nil {
		return nil, err
	}

	dayStats := model.DailyStat{DateKey: dateKey, TasksCompleted: 1, CarbonOffsetKg: offset}
	if stat, err := s.repo.GetUserDailyStat(ctx, userID, dateKey); err == nil && stat != nil {
		dayStats = *stat
	}

	return &model.CompleteTaskResult{
		CompletedTaskID:     record.ID,
		CarbonOffsetKg:      offset,
		RemainingTasksCount: len(remaining),
		Totals: model.CompletionTotals{
			CarbonOffsetKgTotal:   Round1(user.CarbonOffsetKgTotal + offset),
			TasksCompletedCount:   user.TasksCompletedCount + 1,
			StreakCurrent:         streakCurrent,
			StreakBest:            streakBest,
			LastCompletionDateKey: todayKey,
		},
		TodayStats: dayStats,
	}, nil
}

func (s *TaskService) buildTaskContext(user *model.User) *DailyTaskContext {
	profile := &DailyTaskContext{
		InitialFootprintKg: user.InitialFootprintKg,
		City:               user.City,
		StreakCurrent:      user.StreakCurrent,
	}
	if user.Compression != nil {
		profile.CompactSummary = user.Compression.CompactSummary
		profile.TopEmissionArea = user.Compression.TopEmissionArea
	}
	for _, t := range user.DailyTasks {
		profile.RecentTaskTitles = append(profile.RecentTaskTitles, t.Title)
	}
	return profile
}
