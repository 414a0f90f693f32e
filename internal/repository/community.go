package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fernhq/fern/api/internal/database"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/google/uuid"
)

// CommunityRepository handles community data access
type CommunityRepository struct {
	db database.Database
}

// NewCommunityRepository creates a new community repository
func NewCommunityRepository(db database.Database) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Create inserts the community and mirrors it onto the creator's profile in
// one atomic write. The id is generated here so both statements can refer to
// it without a read-back.
func (r *CommunityRepository) Create(ctx context.Context, community *model.Community) error {
	// Hex form keeps the record id free of characters that need escaping
	rid := strings.ReplaceAll(uuid.New().String(), "-", "")
	now := time.Now().UTC()

	tb := database.NewTxBuilder()
	tb.Add(`
		CREATE type::thing("community", $rid) CONTENT {
			name: $name,
			members: $members,
			createdBy: $creator,
			createdOn: $created_on
		}
	`, map[string]interface{}{
		"rid":        rid,
		"name":       community.Name,
		"members":    community.Members,
		"creator":    community.CreatedBy,
		"created_on": now,
	})
	tb.Add(`
		UPDATE type::record($id) SET
			communities = array::union(communities, [$community]),
			updated_on = time::now()
	`, map[string]interface{}{
		"id":        community.CreatedBy,
		"community": "community:" + rid,
	})

	if _, err := database.ExecuteTransaction(ctx, r.db, tb); err != nil {
		return err
	}

	community.ID = "community:" + rid
	community.CreatedOn = now
	return nil
}

// GetByID retrieves a community by ID
func (r *CommunityRepository) GetByID(ctx context.Context, id string) (*model.Community, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	community, err := parseCommunityResult(result)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return community, nil
}

// List retrieves all communities, newest first
func (r *CommunityRepository) List(ctx context.Context) ([]*model.Community, error) {
	query := `SELECT * FROM community ORDER BY createdOn DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []*model.Community{}, nil
	}

	communities := make([]*model.Community, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		community, err := decodeCommunity(data)
		if err != nil {
			return nil, err
		}
		communities = append(communities, community)
	}
	return communities, nil
}

// AddMember adds a user to the community and mirrors the membership onto the
// user's profile atomically. Both unions are idempotent.
func (r *CommunityRepository) AddMember(ctx context.Context, communityID, userID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($id) SET
			members = array::union(members, [$member])
	`, map[string]interface{}{
		"id":     communityID,
		"member": userID,
	})
	batch.Add(`
		UPDATE type::record($id) SET
			communities = array::union(communities, [$community]),
			updated_on = time::now()
	`, map[string]interface{}{
		"id":        userID,
		"community": communityID,
	})
	return batch.Execute(ctx, r.db)
}

// RecentCompletions returns the community's latest completion records
func (r *CommunityRepository) RecentCompletions(ctx context.Context, communityID string, limit int) ([]model.CompletedTask, error) {
	query := `
		SELECT * FROM community_completion
		WHERE communityId = $community
		ORDER BY completedAt DESC
		LIMIT $limit
	`
	vars := map[string]interface{}{"community": communityID, "limit": limit}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return []model.CompletedTask{}, nil
	}

	items := make([]model.CompletedTask, 0, len(rows))
	for _, row := range rows {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		task, err := decodeCompletedTask(data)
		if err != nil {
			return nil, err
		}
		items = append(items, *task)
	}
	return items, nil
}

// Helper functions

func parseCommunityResult(result interface{}) (*model.Community, error) {
	data, err := unwrapSingle(result)
	if err != nil {
		return nil, err
	}
	return decodeCommunity(data)
}

func decodeCommunity(data map[string]interface{}) (*model.Community, error) {
	if v, ok := data["createdOn"]; ok {
		data["createdOn"] = parseTime(v).Format(time.RFC3339Nano)
	}

	var community model.Community
	if err := decodeRecord(data, &community); err != nil {
		return nil, err
	}
	return &community, nil
}
