package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"mediafeed/app/comment"
	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

func (r *PgRepository) CreateComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	var created domain.Comment
	query := `
		INSERT INTO comments (
			author_id, container_type, container_id, reply_to_id, content
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING *`

	err := r.db.GetContext(ctx, &created, query,
		c.AuthorID, c.ContainerType, c.ContainerID, c.ReplyToID, c.Content)
	if err != nil {
		return created, err
	}

	created.Children = []domain.Comment{}
	return created, nil
}

func (r *PgRepository) GetComment(ctx context.Context, id int64) (domain.Comment, error) {
	var c domain.Comment
	query := `SELECT * FROM comments WHERE id = $1 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return c, err
	}

	if c.ReplyToID != nil {
		var target domain.Comment
		err := r.db.GetContext(ctx, &target, query, *c.ReplyToID)
		switch {
		case err == nil:
			c.ReplyTo = &target
		case !errors.Is(err, sql.ErrNoRows):
			return c, err
		}
	}

	rows := []*domain.Comment{&c}
	if err := r.attachAuthors(ctx, rows); err != nil {
		return c, err
	}
	if err := r.attachChildren(ctx, rows); err != nil {
		return c, err
	}

	return c, nil
}

func (r *PgRepository) UpdateComment(ctx context.Context, id, authorID int64, content string) (domain.Comment, error) {
	var c domain.Comment
	query := `
		UPDATE comments SET
			content = $3,
			updated_at = now()
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL
		RETURNING *`

	err := r.db.GetContext(ctx, &c, query, id, authorID, content)
	if errors.Is(err, sql.ErrNoRows) {
		return c, comment.ErrNotFoundOrForbidden
	}
	if err != nil {
		return c, err
	}

	c.Children = []domain.Comment{}
	return c, nil
}

func (r *PgRepository) DeleteComment(ctx context.Context, id, authorID int64) (domain.Comment, error) {
	var c domain.Comment
	query := `
		UPDATE comments SET
			deleted_at = now()
		WHERE id = $1 AND author_id = $2 AND deleted_at IS NULL
		RETURNING *`

	err := r.db.GetContext(ctx, &c, query, id, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return c, comment.ErrNotFoundOrForbidden
	}

	return c, err
}

func (r *PgRepository) ListRoots(ctx context.Context, container domain.ContainerRef, pageSize int, cursor string) (pagination.Page[domain.Comment], error) {
	comments := make([]domain.Comment, 0)
	query := `
		SELECT * FROM comments
		WHERE container_type = $1 AND container_id = $2
			AND reply_to_id IS NULL AND deleted_at IS NULL AND id > $3
		ORDER BY id ASC LIMIT $4`

	after := pagination.DecodeOrFirst(cursor)
	err := r.db.SelectContext(ctx, &comments, query, container.Type, container.ID, after, pageSize+1)
	if err != nil {
		return pagination.Page[domain.Comment]{}, err
	}

	if err := r.attachRelations(ctx, comments); err != nil {
		return pagination.Page[domain.Comment]{}, err
	}

	return pagination.NewPage(comments, pageSize, func(c domain.Comment) int64 { return c.ID }), nil
}

func (r *PgRepository) ListReplies(ctx context.Context, replyToID int64, pageSize int, cursor string) (pagination.Page[domain.Comment], error) {
	comments := make([]domain.Comment, 0)
	query := `
		SELECT * FROM comments
		WHERE reply_to_id = $1 AND deleted_at IS NULL AND id > $2
		ORDER BY id ASC LIMIT $3`

	after := pagination.DecodeOrFirst(cursor)
	err := r.db.SelectContext(ctx, &comments, query, replyToID, after, pageSize+1)
	if err != nil {
		return pagination.Page[domain.Comment]{}, err
	}

	if err := r.attachRelations(ctx, comments); err != nil {
		return pagination.Page[domain.Comment]{}, err
	}

	return pagination.NewPage(comments, pageSize, func(c domain.Comment) int64 { return c.ID }), nil
}

func (r *PgRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	err := r.db.GetContext(ctx, &exists, query, id)
	return exists, err
}

func (r *PgRepository) attachRelations(ctx context.Context, comments []domain.Comment) error {
	rows := make([]*domain.Comment, len(comments))
	for i := range comments {
		rows[i] = &comments[i]
	}

	if err := r.attachAuthors(ctx, rows); err != nil {
		return err
	}
	return r.attachChildren(ctx, rows)
}

// attachAuthors batch-loads the author of every comment in one query.
func (r *PgRepository) attachAuthors(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}

	users := make([]domain.User, 0, len(ids))
	query := `SELECT * FROM users WHERE id = ANY($1)`
	if err := r.db.SelectContext(ctx, &users, query, pq.Array(ids)); err != nil {
		return err
	}

	byID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, c := range comments {
		if u, ok := byID[c.AuthorID]; ok {
			author := u
			c.Author = &author
		}
	}
	return nil
}

// attachChildren batch-loads the one visible reply level of every comment.
func (r *PgRepository) attachChildren(ctx context.Context, comments []*domain.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		c.Children = []domain.Comment{}
		ids = append(ids, c.ID)
	}

	children := make([]domain.Comment, 0)
	query := `
		SELECT * FROM comments
		WHERE reply_to_id = ANY($1) AND deleted_at IS NULL
		ORDER BY id ASC`
	if err := r.db.SelectContext(ctx, &children, query, pq.Array(ids)); err != nil {
		return err
	}

	byParent := make(map[int64][]domain.Comment)
	for _, child := range children {
		byParent[*child.ReplyToID] = append(byParent[*child.ReplyToID], child)
	}
	for _, c := range comments {
		if kids, ok := byParent[c.ID]; ok {
			c.Children = kids
		}
	}
	return nil
}
