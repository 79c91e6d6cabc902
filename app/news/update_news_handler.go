package news

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

type UpdateNewsHandler struct {
	repository Repository
}

func NewUpdateNewsHandler(repository Repository) *UpdateNewsHandler {
	return &UpdateNewsHandler{
		repository: repository,
	}
}

type UpdateNewsRequest struct {
	NewsID      int64   `params:"id" validate:"required,gt=0"`
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

type UpdateNewsResponse struct {
	News domain.News `json:"news"`
}

func (h *UpdateNewsHandler) Handle(ctx context.Context, req *UpdateNewsRequest) (*UpdateNewsResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"news.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"news.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	n, err := h.repository.GetNews(ctx, req.NewsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"news.update.not_found",
				"News not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"news.update.failed",
			"Failed to get news",
			nil,
		)
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Description != nil {
		n.Description = *req.Description
	}

	updated, err := h.repository.UpdateNews(ctx, n)
	if err != nil {
		return nil, httperror.InternalServerError(
			"news.update.update_failed",
			"An error occurred while updating the news",
			nil,
		)
	}

	return &UpdateNewsResponse{
		News: updated,
	}, nil
}
