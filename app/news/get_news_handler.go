package news

import (
	"context"
	"database/sql"
	"errors"

	"mediafeed/app/comment"
	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

// GetNewsHandler serves a news item together with the first (or requested)
// cursor page of its root comments, each carrying one level of replies.
type GetNewsHandler struct {
	repository Repository
	comments   comment.Repository
}

func NewGetNewsHandler(repository Repository, comments comment.Repository) *GetNewsHandler {
	return &GetNewsHandler{
		repository: repository,
		comments:   comments,
	}
}

type GetNewsRequest struct {
	NewsID  int64  `params:"id"`
	PerPage int    `query:"per_page"`
	Cursor  string `query:"cursor"`
}

type GetNewsResponse struct {
	News     domain.News                     `json:"news"`
	Comments pagination.Page[domain.Comment] `json:"comments"`
}

func (h *GetNewsHandler) Handle(ctx context.Context, req *GetNewsRequest) (*GetNewsResponse, error) {
	n, err := h.repository.GetNews(ctx, req.NewsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"news.show.not_found",
				"News not found",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"news.show.failed",
			"Failed to retrieve news",
			nil,
		)
	}

	pageSize := pagination.ClampPageSize(req.PerPage)
	container := domain.ContainerRef{Type: domain.ContainerNews, ID: n.ID}

	comments, err := h.comments.ListRoots(ctx, container, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"news.show.comments_failed",
			"Failed to retrieve comments",
			nil,
		)
	}

	return &GetNewsResponse{
		News:     n,
		Comments: comments,
	}, nil
}
