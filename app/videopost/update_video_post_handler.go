package videopost

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type UpdateVideoPostHandler struct {
	repository Repository
}

func NewUpdateVideoPostHandler(repository Repository) *UpdateVideoPostHandler {
	return &UpdateVideoPostHandler{
		repository: repository,
	}
}

type UpdateVideoPostRequest struct {
	VideoPostID int64   `params:"id" validate:"required,gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

type UpdateVideoPostResponse struct {
	VideoPost domain.VideoPost `json:"video_post"`
}

func (h *UpdateVideoPostHandler) Handle(ctx context.Context, req *UpdateVideoPostRequest) (*UpdateVideoPostResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"video_post.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"video_post.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	v, err := h.repository.GetVideoPost(ctx, req.VideoPostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"video_post.update.not_found",
				"Video post not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"video_post.update.failed",
			"Failed to get video post",
			nil,
		)
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}

	updated, err := h.repository.UpdateVideoPost(ctx, v)
	if err != nil {
		return nil, httperror.InternalServerError(
			"video_post.update.update_failed",
			"An error occurred while updating the video post",
			nil,
		)
	}

	return &UpdateVideoPostResponse{
		VideoPost: updated,
	}, nil
}
