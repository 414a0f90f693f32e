package handler

import (
	"net/http"

	"github.com/fernhq/fern/api/internal/middleware"
	"github.com/fernhq/fern/api/internal/model"
	"github.com/fernhq/fern/api/internal/service"
)

// SocialHandler handles friend and community endpoints
type SocialHandler struct {
	socialService *service.SocialService
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
	}
}

// AddFriend handles POST /v1/friends
func (h *SocialHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.AddFriendRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	friend, err := h.socialService.AddFriend(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, friend, map[string]string{
		"friends": "/v1/friends",
	})
}

// ListFriends handles GET /v1/friends
func (h *SocialHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	friends, err := h.socialService.ListFriends(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, friends, nil, nil)
}

// CreateCommunity handles POST /v1/communities
func (h *SocialHandler) CreateCommunity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCommunityRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	community, err := h.socialService.CreateCommunity(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, community, map[string]string{
		"self": "/v1/communities/" + community.ID,
	})
}

// ListCommunities handles GET /v1/communities
func (h *SocialHandler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := h.socialService.ListCommunities(r.Context())
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, communities, nil, nil)
}

// GetCommunity handles GET /v1/communities/{communityId}
func (h *SocialHandler) GetCommunity(w http.ResponseWriter, r *http.Request) {
	communityID := r.PathValue("communityId")

	detail, err := h.socialService.GetCommunity(r.Context(), communityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, detail, nil)
}

// JoinCommunity handles POST /v1/communities/{communityId}/join
func (h *SocialHandler) JoinCommunity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	communityID := r.PathValue("communityId")

	community, err := h.socialService.JoinCommunity(r.Context(), userID, communityID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, community, map[string]string{
		"self": "/v1/communities/" + community.ID,
	})
}
