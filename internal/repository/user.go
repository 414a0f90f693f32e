package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/fernhq/fern/api/internal/database"
	"github.com/fernhq/fern/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user with zeroed footprint and streak state
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			username: $username,
			city: $city,
			hash: $hash,
			initialFootprintKg: NONE,
			carbonOffsetKgTotal: 0,
			tasksCompletedCount: 0,
			streakCurrent: 0,
			streakBest: 0,
			lastCompletionDateKey: NONE,
			dailyTasks: [],
			friends: [],
			communities: [],
			rev: 0,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"city":     user.City,
		"hash":     user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	rows, ok := extractQueryResults(result)
	if !ok || len(rows) == 0 {
		return errors.New("no result returned")
	}
	data, ok := rows[0].(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}

	user.ID = convertSurrealID(data["id"])
	user.CreatedOn = parseTime(data["created_on"])
	user.UpdatedOn = parseTime(data["updated_on"])
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	user, err := parseUserResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// ListByIDs retrieves users for a set of record ids. Missing ids are skipped.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	// Stored record ids are compared by their string rendering
	query := `SELECT * FROM user WHERE type::string(id) IN $ids`
	vars := map[string]interface{}{"ids": ids}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseUserList(result)
}

// TopByOffset retrieves users ranked by lifetime carbon offset, descending
func (r *UserRepository) TopByOffset(ctx context.Context, limit int) ([]*model.User, error) {
	query := `
		SELECT * FROM user
		ORDER BY carbonOffsetKgTotal DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{"limit": limit}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseUserList(result)
}

// AddFriend links two users mutually in one atomic write. array::union keeps
// the lists deduplicated, so repeated adds are harmless.
func (r *UserRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($id) SET
			friends = array::union(friends, [$friend]),
			updated_on = time::now()
	`, map[string]interface{}{
		"id":     userID,
		"friend": friendID,
	})
	batch.Add(`
		UPDATE type::record($id) SET
			friends = array::union(friends, [$friend]),
			updated_on = time::now()
	`, map[string]interface{}{
		"id":     friendID,
		"friend": userID,
	})
	return batch.Execute(ctx, r.db)
}

// SaveQuestionnaire overwrites the questionnaire snapshot on the profile
func (r *UserRepository) SaveQuestionnaire(ctx context.Context, userID string, save *model.QuestionnaireSave) error {
	query := `
		UPDATE type::record($id) SET
			questionnaireVersion = $version,
			questionnaireAnswers = $answers,
			questionnaireCompression = $compression,
			initialFootprintKg = $footprint,
			rev = rev + 1,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":          userID,
		"version":     save.Version,
		"answers":     save.Answers,
		"compression": save.Compression,
		"footprint":   save.InitialFootprintKg,
	}

	return r.db.Execute(ctx, query, vars)
}

// ResetQuestionnaire clears the questionnaire snapshot. Counters, streaks,
// and completion history are untouched.
func (r *UserRepository) ResetQuestionnaire(ctx context.Context, userID string) error {
	query := `
		UPDATE type::record($id) SET
			questionnaireVersion = NONE,
			questionnaireAnswers = NONE,
			questionnaireCompression = NONE,
			initialFootprintKg = NONE,
			rev = rev + 1,
			updated_on = time::now()
	`
	vars := map[string]interface{}{"id": userID}

	return r.db.Execute(ctx, query, vars)
}

// ReplaceDailyTasks swaps in a fresh batch, guarded on the revision observed
// when generation started. A concurrent write surfaces as a conflict.
func (r *UserRepository) ReplaceDailyTasks(ctx context.Context, userID string, expectedRev int, tasks []model.Task, meta *model.DailyTasksMeta) error {
	tb := database.NewTxBuilder()
	tb.Add(`LET $found = (SELECT rev FROM ONLY type::record($id))`, map[string]interface{}{
		"id": userID,
	})
	tb.AddRaw(fmt.Sprintf(`IF $found == NONE OR $found.rev != %d { %s }`, expectedRev, database.ConflictThrow()))
	tb.Add(`
		UPDATE type::record($id) SET
			dailyTasks = $tasks,
			dailyTasksMeta = $meta,
			rev = rev + 1,
			updated_on = time::now()
	`, map[string]interface{}{
		"id":    userID,
		"tasks": tasks,
		"meta":  meta,
	})

	_, err := database.ExecuteTransaction(ctx, r.db, tb)
	return err
}

// Helper functions

func parseUserResult(result interface{}) (*model.User, error) {
	data, err := unwrapSingle(result)
	if err != nil {
		return nil, err
	}
	return decodeUser(data)
}

func parseUserList(result interface{}) ([]*model.User, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.User{}, nil
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		user, err := decodeUser(data)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func decodeUser(data map[string]interface{}) (*model.User, error) {
	// Extract hash before the JSON round trip (User.Hash has json:"-")
	hash, _ := data["hash"].(string)

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, err
	}
	user.Hash = hash
	return &user, nil
}
