package videopost

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/pkg/httperror"
)

type DeleteVideoPostHandler struct {
	repository Repository
}

func NewDeleteVideoPostHandler(repository Repository) *DeleteVideoPostHandler {
	return &DeleteVideoPostHandler{
		repository: repository,
	}
}

type DeleteVideoPostRequest struct {
	VideoPostID int64 `params:"id"`
}

type DeleteVideoPostResponse struct {
	Message string `json:"message"`
}

func (h *DeleteVideoPostHandler) Handle(ctx context.Context, req *DeleteVideoPostRequest) (*DeleteVideoPostResponse, error) {
	_, err := h.repository.GetVideoPost(ctx, req.VideoPostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"video_post.destroy.not_found",
				"Video post not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"video_post.destroy.failed",
			"Failed to retrieve video post",
			nil,
		)
	}

	if err := h.repository.DeleteVideoPost(ctx, req.VideoPostID); err != nil {
		return nil, httperror.InternalServerError(
			"video_post.destroy.delete_failed",
			"An error occurred while deleting the video post",
			nil,
		)
	}

	return &DeleteVideoPostResponse{
		Message: "Video post deleted",
	}, nil
}
