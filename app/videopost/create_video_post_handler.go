package videopost

import (
	"context"

	"github.com/go-playground/validator/v10"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type CreateVideoPostHandler struct {
	repository Repository
}

func NewCreateVideoPostHandler(repository Repository) *CreateVideoPostHandler {
	return &CreateVideoPostHandler{
		repository: repository,
	}
}

type CreateVideoPostRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type CreateVideoPostResponse struct {
	VideoPost domain.VideoPost `json:"video_post"`
}

func (r *CreateVideoPostResponse) StatusCode() int { return 201 }

func (h *CreateVideoPostHandler) Handle(ctx context.Context, req *CreateVideoPostRequest) (*CreateVideoPostResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"video_post.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"video_post.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	created, err := h.repository.CreateVideoPost(ctx, req.Title, req.Description)
	if err != nil {
		return nil, httperror.InternalServerError(
			"video_post.create.create_failed",
			"An error occurred while creating the video post",
			nil,
		)
	}

	return &CreateVideoPostResponse{
		VideoPost: created,
	}, nil
}
