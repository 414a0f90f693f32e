package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fernhq/fern/api/internal/database"
	"github.com/fernhq/fern/api/internal/model"
)

// Completion fan-out tables. The same record is written to all of them so
// feed, history, and community reads never need joins.
const (
	tableFeed                = "completed_task"
	tableUserCompletion      = "user_completion"
	tableCommunityCompletion = "community_completion"
)

// CompletionRepository handles completion records and the derived stats
type CompletionRepository struct {
	db database.Database
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db database.Database) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// ApplyCompletion commits one completion as a single transaction: the guarded
// user update, both daily-stat upserts, the global totals bump, and the
// fan-out record copies. A revision mismatch throws the conflict marker and
// rolls the whole write back.
func (r *CompletionRepository) ApplyCompletion(ctx context.Context, apply *model.CompletionApply) error {
	tb := database.NewTxBuilder()

	tb.Add(`LET $found = (SELECT rev FROM ONLY type::record($id))`, map[string]interface{}{
		"id": apply.UserID,
	})
	tb.AddRaw(fmt.Sprintf(`IF $found == NONE OR $found.rev != %d { %s }`,
		apply.ExpectedRev, database.ConflictThrow()))

	tb.Add(`
		UPDATE type::record($id) SET
			dailyTasks = $tasks,
			carbonOffsetKgTotal += $offset,
			tasksCompletedCount += 1,
			streakCurrent = $current,
			streakBest = $best,
			lastCompletionDateKey = $last,
			rev += 1,
			updated_on = time::now()
	`, map[string]interface{}{
		"id":      apply.UserID,
		"tasks":   apply.RemainingTasks,
		"offset":  apply.CarbonOffsetKg,
		"current": apply.StreakCurrent,
		"best":    apply.StreakBest,
		"last":    apply.LastCompletionDateKey,
	})

	tb.Add(`
		UPSERT type::thing("user_daily_stat", [$uid, $day]) SET
			uid = $uid,
			dateKey = $day,
			tasksCompleted = (tasksCompleted ?? 0) + 1,
			carbonOffsetKg = (carbonOffsetKg ?? 0) + $offset
	`, map[string]interface{}{
		"uid":    apply.UserID,
		"day":    apply.DateKey,
		"offset": apply.CarbonOffsetKg,
	})

	tb.Add(`
		UPSERT type::thing("global_daily_stat", $day) SET
			dateKey = $day,
			tasksCompleted = (tasksCompleted ?? 0) + 1,
			carbonOffsetKg = (carbonOffsetKg ?? 0) + $offset
	`, map[string]interface{}{
		"day":    apply.DateKey,
		"offset": apply.CarbonOffsetKg,
	})

	tb.Add(`
		UPSERT global_meta:totals SET
			tasksCompleted = (tasksCompleted ?? 0) + 1,
			carbonOffsetKg = (carbonOffsetKg ?? 0) + $offset
	`, map[string]interface{}{
		"offset": apply.CarbonOffsetKg,
	})

	content := completionContent(apply.Record)
	tables := []string{tableFeed, tableUserCompletion}
	if apply.Record.CommunityID != nil {
		tables = append(tables, tableCommunityCompletion)
	}
	for _, table := range tables {
		tb.Add(fmt.Sprintf(`CREATE type::thing("%s", $rid) CONTENT $record`, table), map[string]interface{}{
			"rid":    apply.Record.ID,
			"record": content,
		})
	}

	_, err := database.ExecuteTransaction(ctx, r.db, tb)
	return err
}

// GetUserDailyStat retrieves one user's counters for a calendar day
func (r *CompletionRepository) GetUserDailyStat(ctx context.Context, userID, dateKey string) (*model.DailyStat, error) {
	query := `SELECT * FROM ONLY type::thing("user_daily_stat", [$uid, $day])`
	vars := map[string]interface{}{"uid": userID, "day": dateKey}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapSingle(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var stat model.DailyStat
	if err := decodeRecord(data, &stat); err != nil {
		return nil, err
	}
	return &stat, nil
}

// ListUserDailyStats returns the user's most recent daily stats, oldest first
func (r *CompletionRepository) ListUserDailyStats(ctx context.Context, userID string, limit int) ([]model.DailyStat, error) {
	query := `
		SELECT * FROM user_daily_stat
		WHERE uid = $uid
		ORDER BY dateKey DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{"uid": userID, "limit": limit}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return parseDailyStats(result)
}

// ListGlobalDailyStats returns the most recent global daily stats, oldest first
func (r *CompletionRepository) ListGlobalDailyStats(ctx context.Context, limit int) ([]model.DailyStat, error) {
	query := `
		SELECT * FROM global_daily_stat
		ORDER BY dateKey DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{"limit": limit}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return parseDailyStats(result)
}

// GetGlobalTotals retrieves the platform-wide counter singleton
func (r *CompletionRepository) GetGlobalTotals(ctx context.Context) (*model.GlobalTotals, error) {
	query := `SELECT * FROM ONLY global_meta:totals`

	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := unwrapSingle(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var totals model.GlobalTotals
	if err := decodeRecord(data, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// ListFeed pages through the global feed, newest first. The opaque cursor
// encodes the last item's completion millis and id; a malformed or unknown
// cursor just yields an empty page.
func (r *CompletionRepository) ListFeed(ctx context.Context, cursor string, limit int) ([]model.CompletedTask, *string, error) {
	var (
		query string
		vars  map[string]interface{}
	)

	if cursor == "" {
		query = `
			SELECT * FROM completed_task
			ORDER BY completedAt DESC, id DESC
			LIMIT $limit
		`
		vars = map[string]interface{}{"limit": limit}
	} else {
		before, afterID, err := decodeFeedCursor(cursor)
		if err != nil {
			return []model.CompletedTask{}, nil, nil
		}
		query = `
			SELECT * FROM completed_task
			WHERE completedAt < $before
				OR (completedAt = $before AND record::id(id) < $after)
			ORDER BY completedAt DESC, id DESC
			LIMIT $limit
		`
		vars = map[string]interface{}{
			"before": before,
			"after":  afterID,
			"limit":  limit,
		}
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.CompletedTask{}, nil, nil
	}

	items := make([]model.CompletedTask, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		task, err := decodeCompletedTask(data)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, *task)
	}

	var nextCursor *string
	if len(items) == limit && limit > 0 {
		last := items[len(items)-1]
		c := encodeFeedCursor(last.CompletedAt, last.ID)
		nextCursor = &c
	}

	return items, nextCursor, nil
}

// Helper functions

// completionContent maps a record to its stored shape. The record id is
// supplied separately via type::thing, so the id field stays out.
func completionContent(rec *model.CompletedTask) map[string]interface{} {
	content := map[string]interface{}{
		"uid":            rec.UID,
		"username":       rec.Username,
		"userEmail":      rec.UserEmail,
		"title":          rec.Title,
		"carbonOffsetKg": rec.CarbonOffsetKg,
		"dateKey":        rec.DateKey,
		"completedAt":    rec.CompletedAt,
		"sourceTaskId":   rec.SourceTaskID,
	}
	if rec.CommunityID != nil {
		content["communityId"] = *rec.CommunityID
	}
	if rec.CommunityName != nil {
		content["communityName"] = *rec.CommunityName
	}
	if rec.ImageURL != nil {
		content["imageUrl"] = *rec.ImageURL
	}
	return content
}

func decodeCompletedTask(data map[string]interface{}) (*model.CompletedTask, error) {
	if v, ok := data["completedAt"]; ok {
		data["completedAt"] = parseTime(v).Format(time.RFC3339Nano)
	}

	var task model.CompletedTask
	if err := decodeRecord(data, &task); err != nil {
		return nil, err
	}

	// The decoded id carries the table prefix; strip back to the bare uuid
	if idx := strings.IndexByte(task.ID, ':'); idx >= 0 {
		task.ID = task.ID[idx+1:]
	}
	return &task, nil
}

func parseDailyStats(result interface{}) ([]model.DailyStat, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.DailyStat{}, nil
	}

	stats := make([]model.DailyStat, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		var stat model.DailyStat
		if err := decodeRecord(data, &stat); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	// Queries fetch newest-first to bound the window; callers want oldest-first
	for i, j := 0, len(stats)-1; i < j; i, j = i+1, j-1 {
		stats[i], stats[j] = stats[j], stats[i]
	}
	return stats, nil
}

func encodeFeedCursor(completedAt time.Time, id string) string {
	return fmt.Sprintf("%d|%s", completedAt.UnixMilli(), id)
}

func decodeFeedCursor(cursor string) (time.Time, string, error) {
	parts := strings.SplitN(cursor, "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return time.Time{}, "", errors.New("malformed cursor")
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("malformed cursor: %w", err)
	}
	return time.UnixMilli(millis).UTC(), parts[1], nil
}
