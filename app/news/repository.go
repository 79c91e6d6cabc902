package news

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

type Repository interface {
	// GetNewsPage lists news id-ascending from an opaque cursor.
	GetNewsPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.News], error)

	// GetNews returns sql.ErrNoRows when the id is unknown.
	GetNews(ctx context.Context, id int64) (domain.News, error)

	CreateNews(ctx context.Context, title, description string) (domain.News, error)
	UpdateNews(ctx context.Context, n domain.News) (domain.News, error)
	DeleteNews(ctx context.Context, id int64) error
}
