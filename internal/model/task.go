package model

import "time"

// Difficulty grades a task's required effort
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulty reports whether d is one of the accepted grades
func ValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Task is a pending daily task on a user's list. Tasks are created in a batch
// once per calendar day and removed only by completion or the next day's
// wholesale replace. Never mutated in place.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	CarbonOffsetKg float64    `json:"carbonOffsetKg"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	DateKey        string     `json:"dateKey"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// DailyTasksMeta records which calendar day the current batch was generated for
type DailyTasksMeta struct {
	DateKey     string    `json:"dateKey"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// DailyTaskBatch is the response of GET /v1/tasks/daily
type DailyTaskBatch struct {
	DateKey string `json:"dateKey"`
	Tasks   []Task `json:"tasks"`
}

// CompletedTask is an immutable completion fact, written identically to the
// global feed, the user's history, and (when the user belongs to one) their
// community's history.
type CompletedTask struct {
	ID             string    `json:"id"`
	UID            string    `json:"uid"`
	Username       string    `json:"username"`
	UserEmail      string    `json:"userEmail,omitempty"`
	CommunityID    *string   `json:"communityId,omitempty"`
	CommunityName  *string   `json:"communityName,omitempty"`
	Title          string    `json:"title"`
	CarbonOffsetKg float64   `json:"carbonOffsetKg"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	DateKey        string    `json:"dateKey"`
	CompletedAt    time.Time `json:"completedAt"`
	SourceTaskID   string    `json:"sourceTaskId"`
}

// CompleteTaskRequest is the body of POST /v1/tasks/complete
type CompleteTaskRequest struct {
	DailyTaskID string  `json:"dailyTaskId"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// CompletionTotals snapshots the user counters after a completion
type CompletionTotals struct {
	CarbonOffsetKgTotal   float64 `json:"carbonOffsetKgTotal"`
	TasksCompletedCount   int     `json:"tasksCompletedCount"`
	StreakCurrent         int     `json:"streakCurrent"`
	StreakBest            int     `json:"streakBest"`
	LastCompletionDateKey string  `json:"lastCompletionDateKey"`
}

// CompleteTaskResult is returned to the caller after a committed completion
type CompleteTaskResult struct {
	CompletedTaskID     string           `json:"completedTaskId"`
	CarbonOffsetKg      float64          `json:"carbonOffsetKg"`
	RemainingTasksCount int              `json:"remainingTasksCount"`
	Totals              CompletionTotals `json:"totals"`
	TodayStats          DailyStat        `json:"todayStats"`
}

// SuggestedAction is one recommendation from the suggestion service
type SuggestedAction struct {
	Title                       string     `json:"title"`
	EstimatedReductionKgPerYear float64    `json:"estimated_reduction_kg_per_year"`
	Difficulty                  Difficulty `json:"difficulty"`
	Reason                      string     `json:"reason"`
}

// Suggestion is the structured advice payload for POST /v1/suggestions
type Suggestion struct {
	Summary    string            `json:"summary"`
	TopActions []SuggestedAction `json:"top_actions"`
}

// SuggestionRequest is the body of POST /v1/suggestions
type SuggestionRequest struct {
	QuestionnaireVersion string                 `json:"questionnaireVersion"`
	Answers              map[string]interface{} `json:"answers"`
}

// GeneratedTask is a raw task proposal from the suggestion service, before
// ids, date keys, and rounding are applied.
type GeneratedTask struct {
	Title          string     `json:"title"`
	CarbonOffsetKg float64    `json:"carbonOffsetKg"`
	Difficulty     Difficulty `json:"difficulty,omitempty"`
	Reason         string     `json:"reason,omitempty"`
}

// DailyTaskCount is the exact number of tasks the suggestion service must
// return for a generation to be accepted.
const DailyTaskCount = 10

// CompletionApply is one completion's full write set. The repository commits
// it atomically, guarded on ExpectedRev, or fails without partial effects.
type CompletionApply struct {
	UserID      string
	ExpectedRev int
	DateKey     string

	RemainingTasks []Task
	Record         *CompletedTask
	CarbonOffsetKg float64

	StreakCurrent         int
	StreakBest            int
	LastCompletionDateKey string
}
