package videopost

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

type Repository interface {
	// GetVideoPostPage lists video posts id-ascending from an opaque cursor.
	GetVideoPostPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.VideoPost], error)

	// GetVideoPost returns sql.ErrNoRows when the id is unknown.
	GetVideoPost(ctx context.Context, id int64) (domain.VideoPost, error)

	CreateVideoPost(ctx context.Context, title, description string) (domain.VideoPost, error)
	UpdateVideoPost(ctx context.Context, v domain.VideoPost) (domain.VideoPost, error)
	DeleteVideoPost(ctx context.Context, id int64) error
}
