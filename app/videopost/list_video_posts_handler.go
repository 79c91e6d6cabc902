package videopost

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
	"mediafeed/pkg/pagination"
)

type ListVideoPostsHandler struct {
	repository Repository
}

func NewListVideoPostsHandler(repository Repository) *ListVideoPostsHandler {
	return &ListVideoPostsHandler{
		repository: repository,
	}
}

type ListVideoPostsRequest struct {
	PerPage int    `query:"per_page"`
	Cursor  string `query:"cursor"`
}

type ListVideoPostsResponse struct {
	VideoPosts pagination.Page[domain.VideoPost] `json:"video_posts"`
}

func (h *ListVideoPostsHandler) Handle(ctx context.Context, req *ListVideoPostsRequest) (*ListVideoPostsResponse, error) {
	pageSize := pagination.ClampPageSize(req.PerPage)

	page, err := h.repository.GetVideoPostPage(ctx, pageSize, req.Cursor)
	if err != nil {
		return nil, httperror.InternalServerError(
			"video_post.index.failed",
			"Failed to retrieve video posts",
			nil,
		)
	}

	return &ListVideoPostsResponse{
		VideoPosts: page,
	}, nil
}
