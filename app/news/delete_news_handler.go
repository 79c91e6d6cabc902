package news

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/pkg/httperror"
)

type DeleteNewsHandler struct {
	repository Repository
}

func NewDeleteNewsHandler(repository Repository) *DeleteNewsHandler {
	return &DeleteNewsHandler{
		repository: repository,
	}
}

type DeleteNewsRequest struct {
	NewsID int64 `params:"id"`
}

type DeleteNewsResponse struct {
	Message string `json:"message"`
}

func (h *DeleteNewsHandler) Handle(ctx context.Context, req *DeleteNewsRequest) (*DeleteNewsResponse, error) {
	_, err := h.repository.GetNews(ctx, req.NewsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"news.destroy.not_found",
				"News not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"news.destroy.failed",
			"Failed to retrieve news",
			nil,
		)
	}

	if err := h.repository.DeleteNews(ctx, req.NewsID); err != nil {
		return nil, httperror.InternalServerError(
			"news.destroy.delete_failed",
			"An error occurred while deleting the news",
			nil,
		)
	}

	return &DeleteNewsResponse{
		Message: "News deleted",
	}, nil
}
