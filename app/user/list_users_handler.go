package user

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

type ListUsersHandler struct {
	repository Repository
}

func NewListUsersHandler(repository Repository) *ListUsersHandler {
	return &ListUsersHandler{
		repository: repository,
	}
}

type ListUsersRequest struct {
	PerPage int    `query:"per_page"`
	Cursor  string `query:"cursor"`
}

type ListUsersResponse struct {
	Users pagination.Page[domain.User] `json:"users"`
}

func (h *ListUsersHandler) Handle(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	pageSize := pagination.ClampPageSize(req.PerPage)

	page, err := h.repository.GetUserPage(ctx, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"user.index.failed",
			"Failed to retrieve users",
			nil,
		)
	}

	return &ListUsersResponse{
		Users: page,
	}, nil
}
