package comment

import (
	"context"
	"errors"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

// ErrNotFoundOrForbidden is the merged outcome for author-gated mutations: the
// store does not reveal whether the comment is missing or owned by someone else.
var ErrNotFoundOrForbidden = errors.New("comment not found or not owned by author")

// Repository is the comment store contract. Reads attach the author, the reply
// target and one level of non-deleted children ordered by id ascending;
// soft-deleted rows are invisible to every method except the mutation gates,
// which treat them as absent.
type Repository interface {
	CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error)

	// GetComment returns sql.ErrNoRows when the comment is absent or soft-deleted.
	GetComment(ctx context.Context, id int64) (domain.Comment, error)

	// UpdateComment changes content as one atomic conditional update; it returns
	// ErrNotFoundOrForbidden when no live row matches both id and author.
	UpdateComment(ctx context.Context, id, authorID int64, content string) (domain.Comment, error)

	// DeleteComment soft-deletes under the same gate and returns the deleted row.
	DeleteComment(ctx context.Context, id, authorID int64) (domain.Comment, error)

	// ListRoots pages root comments of a container, id ascending.
	ListRoots(ctx context.Context, container domain.ContainerRef, pageSize int, cursor string) (pagination.Page[domain.Comment], error)

	// ListReplies pages direct replies of a comment, id ascending. The parent's
	// own state is irrelevant: replies of a deleted comment stay listable.
	ListReplies(ctx context.Context, replyToID int64, pageSize int, cursor string) (pagination.Page[domain.Comment], error)

	UserExists(ctx context.Context, id int64) (bool, error)
}
