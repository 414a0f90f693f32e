package service

import (
	"context"
	"slices"
	"strings"

	"github.com/fernhq/fern/api/internal/model"
)

// Maximum completion records returned with a community detail view
const communityRecentLimit = 20

// SocialUserRepository defines the user-side interface for social storage
type SocialUserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	AddFriend(ctx context.Context, userID, friendID string) error
	ListByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

// CommunityRepository defines the interface for community storage
type CommunityRepository interface {
	Create(ctx context.Context, community *model.Community) error
	GetByID(ctx context.Context, id string) (*model.Community, error)
	List(ctx context.Context) ([]*model.Community, error)
	AddMember(ctx context.Context, communityID, userID string) error
	RecentCompletions(ctx context.Context, communityID string, limit int) ([]model.CompletedTask, error)
}

// SocialService handles friends and communities
type SocialService struct {
	users       SocialUserRepository
	communities CommunityRepository
}

// SocialServiceConfig holds configuration for the social service
type SocialServiceConfig struct {
	Users       SocialUserRepository
	Communities CommunityRepository
}

// NewSocialService creates a new social service
func NewSocialService(cfg SocialServiceConfig) *SocialService {
	return &SocialService{
		users:       cfg.Users,
		communities: cfg.Communities,
	}
}

// AddFriend links two users by the friend's email. The link is mutual and
// idempotent; adding an existing friend is not an error.
func (s *SocialService) AddFriend(ctx context.Context, userID string, req *model.AddFriendRequest) (*model.FriendSummary, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	friend, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if friend == nil {
		return nil, ErrFriendNotFound
	}
	if friend.ID == user.ID {
		return nil, ErrCannotFriendSelf
	}

	if err := s.users.AddFriend(ctx, user.ID, friend.ID); err != nil {
		return nil, err
	}

	return friendSummary(friend), nil
}

// ListFriends returns profile slices for the user's friends
func (s *SocialService) ListFriends(ctx context.Context, userID string) ([]model.FriendSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if len(user.Friends) == 0 {
		return []model.FriendSummary{}, nil
	}

	friends, err := s.users.ListByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.FriendSummary, 0, len(friends))
	for _, f := range friends {
		summaries = append(summaries, *friendSummary(f))
	}
	return summaries, nil
}

// CreateCommunity creates a community with the caller as its first member
func (s *SocialService) CreateCommunity(ctx context.Context, userID string, req *model.CreateCommunityRequest) (*model.Community, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCommunityNameRequired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	community := &model.Community{
		Name:      name,
		Members:   []string{userID},
		CreatedBy: userID,
	}
	if err := s.communities.Create(ctx, community); err != nil {
		return nil, err
	}

	return community, nil
}

// JoinCommunity adds the caller to an existing community
func (s *SocialService) JoinCommunity(ctx context.Context, userID, communityID string) (*model.Community, error) {
	community, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, ErrCommunityNotFound
	}

	if slices.Contains(community.Members, userID) {
		return nil, ErrAlreadyMember
	}

	if err := s.communities.AddMember(ctx, communityID, userID); err != nil {
		return nil, err
	}

	community.Members = append(community.Members, userID)
	return community, nil
}

// ListCommunities returns all communities as listing summaries
func (s *SocialService) ListCommunities(ctx context.Context) ([]model.CommunitySummary, error) {
	communities, err := s.communities.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.CommunitySummary, 0, len(communities))
	for _, c := range communities {
		summaries = append(summaries, model.CommunitySummary{
			ID:           c.ID,
			Name:         c.Name,
			MembersCount: len(c.Members),
		})
	}
	return summaries, nil
}

// GetCommunity returns a community with its recent completion records
func (s *SocialService) GetCommunity(ctx context.Context, communityID string) (*model.CommunityDetail, error) {
	community, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, ErrCommunityNotFound
	}

	completions, err := s.communities.RecentCompletions(ctx, communityID, communityRecentLimit)
	if err != nil {
		return nil, err
	}

	return &model.CommunityDetail{
		Community:         *community,
		RecentCompletions: completions,
	}, nil
}

func friendSummary(u *model.User) *model.FriendSummary {
	return &model.FriendSummary{
		UID:                 u.ID,
		Username:            u.Username,
		Email:               u.Email,
		City:                u.City,
		InitialFootprintKg:  u.InitialFootprintKg,
		CarbonOffsetKgTotal: u.CarbonOffsetKgTotal,
	}
}
