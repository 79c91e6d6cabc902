package user

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type GetUserHandler struct {
	repository Repository
}

func NewGetUserHandler(repository Repository) *GetUserHandler {
	return &GetUserHandler{
		repository: repository,
	}
}

type GetUserRequest struct {
	UserID int64 `params:"id"`
}

type GetUserResponse struct {
	User domain.User `json:"user"`
}

func (h *GetUserHandler) Handle(ctx context.Context, req *GetUserRequest) (*GetUserResponse, error) {
	u, err := h.repository.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"user.show.not_found",
				"User not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"user.show.failed",
			"Failed to retrieve user",
			nil,
		)
	}

	return &GetUserResponse{
		User: u,
	}, nil
}
