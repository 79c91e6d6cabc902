package videopost

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/app/comment"
	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

// GetVideoPostHandler serves a video post together with a cursor page of its
// root comments, each carrying one level of replies.
type GetVideoPostHandler struct {
	repository Repository
	comments   comment.Repository
}

func NewGetVideoPostHandler(repository Repository, comments comment.Repository) *GetVideoPostHandler {
	return &GetVideoPostHandler{
		repository: repository,
		comments:   comments,
	}
}

type GetVideoPostRequest struct {
	VideoPostID int64  `params:"id"`
	PerPage     int    `query:"per_page"`
	Cursor      string `query:"cursor"`
}

type GetVideoPostResponse struct {
	VideoPost domain.VideoPost                `json:"video_post"`
	Comments  pagination.Page[domain.Comment] `json:"comments"`
}

func (h *GetVideoPostHandler) Handle(ctx context.Context, req *GetVideoPostRequest) (*GetVideoPostResponse, error) {
	v, err := h.repository.GetVideoPost(ctx, req.VideoPostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"video_post.show.not_found",
				"Video post not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"video_post.show.failed",
			"Failed to retrieve video post",
			nil,
		)
	}

	pageSize := pagination.ClampPageSize(req.PerPage)
	container := domain.ContainerRef{Type: domain.ContainerVideoPost, ID: v.ID}

	comments, err := h.comments.ListRoots(ctx, container, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"video_post.show.comments_failed",
			"Failed to retrieve comments",
			nil,
		)
	}

	return &GetVideoPostResponse{
		VideoPost: v,
		Comments:  comments,
	}, nil
}
