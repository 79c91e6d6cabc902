package news

import (
	"context"

	"github.com/go-playground/validator/v10"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type CreateNewsHandler struct {
	repository Repository
}

func NewCreateNewsHandler(repository Repository) *CreateNewsHandler {
	return &CreateNewsHandler{
		repository: repository,
	}
}

type CreateNewsRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

type CreateNewsResponse struct {
	News domain.News `json:"news"`
}

func (r *CreateNewsResponse) StatusCode() int { return 201 }

func (h *CreateNewsHandler) Handle(ctx context.Context, req *CreateNewsRequest) (*CreateNewsResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"news.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"news.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	created, err := h.repository.CreateNews(ctx, req.Title, req.Description)
	if err != nil {
		return nil, httperror.InternalServerError(
			"news.create.create_failed",
			"An error occurred while creating the news",
			nil,
		)
	}

	return &CreateNewsResponse{
		News: created,
	}, nil
}
