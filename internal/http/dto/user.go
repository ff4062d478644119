package dto

import (
	"bugdesk.app/api-server/internal/model"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=1,max=255"`
	Password string `json:"password" binding:"required,min=1,max=255"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ID       int64  `json:"id,string"`
}

func ToUserResponse(user *model.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = *ToUserResponse(&users[i])
	}
	return out
}
