package comment

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

type ListRepliesHandler struct {
	repository Repository
}

func NewListRepliesHandler(repository Repository) *ListRepliesHandler {
	return &ListRepliesHandler{
		repository: repository,
	}
}

type ListRepliesRequest struct {
	CommentID int64  `params:"id"`
	PerPage   int    `query:"per_page"`
	Cursor    string `query:"cursor"`
}

type ListRepliesResponse struct {
	Replies pagination.Page[domain.Comment] `json:"replies"`
}

func (h *ListRepliesHandler) Handle(ctx context.Context, req *ListRepliesRequest) (*ListRepliesResponse, error) {
	pageSize := pagination.ClampPageSize(req.PerPage)

	page, err := h.repository.ListReplies(ctx, req.CommentID, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"comment.replies.failed",
			"Failed to retrieve replies",
			nil,
		)
	}

	return &ListRepliesResponse{
		Replies: page,
	}, nil
}
