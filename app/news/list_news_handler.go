package news

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

type ListNewsHandler struct {
	repository Repository
}

func NewListNewsHandler(repository Repository) *ListNewsHandler {
	return &ListNewsHandler{
		repository: repository,
	}
}

type ListNewsRequest struct {
	PerPage int    `query:"per_page"`
	Cursor  string `query:"cursor"`
}

type ListNewsResponse struct {
	News pagination.Page[domain.News] `json:"news"`
}

func (h *ListNewsHandler) Handle(ctx context.Context, req *ListNewsRequest) (*ListNewsResponse, error) {
	pageSize := pagination.ClampPageSize(req.PerPage)

	page, err := h.repository.GetNewsPage(ctx, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"news.index.failed",
			"Failed to retrieve news",
			nil,
		)
	}

	return &ListNewsResponse{
		News: page,
	}, nil
}
