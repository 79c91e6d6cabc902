package user

import (
	"context"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

type Repository interface {
	// GetUserPage lists users id-ascending from an opaque cursor.
	GetUserPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.User], error)

	// GetUser returns sql.ErrNoRows when the id is unknown.
	GetUser(ctx context.Context, id int64) (domain.User, error)
}
