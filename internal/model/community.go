package model

import "time"

// Community is a named group of users. Membership is a deduplicated id list,
// mirrored on each member's profile.
type Community struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []string  `json:"members"`
	CreatedBy string    `json:"createdBy"`
	CreatedOn time.Time `json:"createdOn"`
}

// CommunitySummary is the listing shape for GET /v1/communities
type CommunitySummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MembersCount int    `json:"membersCount"`
}

// CommunityDetail is the response of GET /v1/communities/{communityId}
type CommunityDetail struct {
	Community
	RecentCompletions []CompletedTask `json:"recentCompletions"`
}

// CreateCommunityRequest is the body of POST /v1/communities
type CreateCommunityRequest struct {
	Name string `json:"name"`
}

// AddFriendRequest is the body of POST /v1/friends
type AddFriendRequest struct {
	Email string `json:"email"`
}

// FriendSummary is one entry of GET /v1/friends
type FriendSummary struct {
	UID                 string   `json:"uid"`
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	City                string   `json:"city"`
	InitialFootprintKg  *float64 `json:"initialFootprintKg"`
	CarbonOffsetKgTotal float64  `json:"carbonOffsetKgTotal"`
}
