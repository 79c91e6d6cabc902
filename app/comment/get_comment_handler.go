package comment

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type GetCommentHandler struct {
	repository Repository
}

func NewGetCommentHandler(repository Repository) *GetCommentHandler {
	return &GetCommentHandler{
		repository: repository,
	}
}

type GetCommentRequest struct {
	CommentID int64 `params:"id"`
}

type GetCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

func (h *GetCommentHandler) Handle(ctx context.Context, req *GetCommentRequest) (*GetCommentResponse, error) {
	c, err := h.repository.GetComment(ctx, req.CommentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"comment.show.not_found",
				"Comment not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"comment.show.failed",
			"Failed to retrieve comment",
			nil,
		)
	}

	return &GetCommentResponse{
		Comment: c,
	}, nil
}
