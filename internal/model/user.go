package model

import "time"

// User represents a user account and its footprint/streak state.
//
// Counters and streak fields are mutated only by the task completion
// transaction; footprint fields only by questionnaire submit/reset; the
// pending task list only by daily generation (replace) and completion
// (remove). Rev is the optimistic-concurrency revision bumped by every
// guarded write.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	City     string `json:"city,omitempty"`
	Hash     string `json:"-"` // Never expose password hash

	InitialFootprintKg   *float64                  `json:"initialFootprintKg"`
	QuestionnaireVersion *string                   `json:"questionnaireVersion,omitempty"`
	QuestionnaireAnswers map[string]interface{}    `json:"questionnaireAnswers,omitempty"`
	Compression          *QuestionnaireCompression `json:"questionnaireCompression,omitempty"`

	CarbonOffsetKgTotal   float64         `json:"carbonOffsetKgTotal"`
	TasksCompletedCount   int             `json:"tasksCompletedCount"`
	StreakCurrent         int             `json:"streakCurrent"`
	StreakBest            int             `json:"streakBest"`
	LastCompletionDateKey *string         `json:"lastCompletionDateKey"`
	DailyTasks            []Task          `json:"dailyTasks"`
	DailyTasksMeta        *DailyTasksMeta `json:"dailyTasksMeta,omitempty"`

	Friends     []string `json:"friends"`
	Communities []string `json:"communities"`

	Rev       int       `json:"rev"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// PrimaryCommunityID returns the user's first community id, or empty if none.
// Completion fan-out denormalizes into this community only.
func (u *User) PrimaryCommunityID() string {
	if len(u.Communities) == 0 {
		return ""
	}
	return u.Communities[0]
}

// FindDailyTask returns the pending task with the given id, or nil
func (u *User) FindDailyTask(taskID string) *Task {
	for i := range u.DailyTasks {
		if u.DailyTasks[i].ID == taskID {
			return &u.DailyTasks[i]
		}
	}
	return nil
}

// RegisterRequest is the body of POST /v1/auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	City     string `json:"city,omitempty"`
}

// LoginRequest is the body of POST /v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued access token plus the profile
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *UserProfile `json:"user"`
}

// UserProfile is the public profile shape for auth and social responses
type UserProfile struct {
	UID                 string   `json:"uid"`
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	City                string   `json:"city"`
	InitialFootprintKg  *float64 `json:"initialFootprintKg"`
	CarbonOffsetKgTotal float64  `json:"carbonOffsetKgTotal"`
	TasksCompletedCount int      `json:"tasksCompletedCount"`
	StreakCurrent       int      `json:"streakCurrent"`
	StreakBest          int      `json:"streakBest"`
	Friends             []string `json:"friends"`
	Communities         []string `json:"communities"`
}

// ToProfile converts a User to its public representation
func (u *User) ToProfile() *UserProfile {
	return &UserProfile{
		UID:                 u.ID,
		Email:               u.Email,
		Username:            u.Username,
		City:                u.City,
		InitialFootprintKg:  u.InitialFootprintKg,
		CarbonOffsetKgTotal: u.CarbonOffsetKgTotal,
		TasksCompletedCount: u.TasksCompletedCount,
		StreakCurrent:       u.StreakCurrent,
		StreakBest:          u.StreakBest,
		Friends:             u.Friends,
		Communities:         u.Communities,
	}
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}
