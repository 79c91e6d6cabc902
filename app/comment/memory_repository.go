package comment

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

// MemoryRepository is an in-memory Repository used in tests and local
// development. It mirrors the Postgres implementation's semantics: id-ascending
// ordering, soft-delete visibility, one-level child attachment and the merged
// not-found/forbidden mutation gate.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64]domain.Comment
	users    map[int64]domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		comments: make(map[int64]domain.Comment),
		users:    make(map[int64]domain.User),
	}
}

// AddUser registers a user so UserExists and author attachment can see it.
func (r *MemoryRepository) AddUser(u domain.User) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		u.ID = int64(len(r.users)) + 1
	}
	r.users[u.ID] = u
	return u
}

func (r *MemoryRepository) CreateComment(_ context.Context, c domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	c.ID = r.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil
	c.Author = nil
	c.ReplyTo = nil
	c.Children = nil
	r.comments[c.ID] = c

	c.Children = []domain.Comment{}
	return c, nil
}

func (r *MemoryRepository) GetComment(_ context.Context, id int64) (domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok || c.DeletedAt != nil {
		return domain.Comment{}, sql.ErrNoRows
	}

	r.attachRelations(&c, true)
	return c, nil
}

func (r *MemoryRepository) UpdateComment(_ context.Context, id, authorID int64, content string) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok || c.AuthorID != authorID || c.DeletedAt != nil {
		return domain.Comment{}, ErrNotFoundOrForbidden
	}

	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	r.comments[id] = c

	c.Children = []domain.Comment{}
	return c, nil
}

func (r *MemoryRepository) DeleteComment(_ context.Context, id, authorID int64) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok || c.AuthorID != authorID || c.DeletedAt != nil {
		return domain.Comment{}, ErrNotFoundOrForbidden
	}

	now := time.Now().UTC()
	c.DeletedAt = &now
	r.comments[id] = c
	return c, nil
}

func (r *MemoryRepository) ListRoots(_ context.Context, container domain.ContainerRef, pageSize int, cursor string) (pagination.Page[domain.Comment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := func(c domain.Comment) bool {
		return c.Container() == container && c.IsRoot()
	}
	return r.listPage(matches, pageSize, cursor), nil
}

func (r *MemoryRepository) ListReplies(_ context.Context, replyToID int64, pageSize int, cursor string) (pagination.Page[domain.Comment], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := func(c domain.Comment) bool {
		return c.ReplyToID != nil && *c.ReplyToID == replyToID
	}
	return r.listPage(matches, pageSize, cursor), nil
}

func (r *MemoryRepository) UserExists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// listPage filters live comments, resumes after the cursor and overfetches by
// one row to detect a further page. Callers must hold the read lock.
func (r *MemoryRepository) listPage(matches func(domain.Comment) bool, pageSize int, cursor string) pagination.Page[domain.Comment] {
	after := pagination.DecodeOrFirst(cursor)

	var rows []domain.Comment
	for _, c := range r.comments {
		if c.DeletedAt != nil || c.ID <= after || !matches(c) {
			continue
		}
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	if len(rows) > pageSize+1 {
		rows = rows[:pageSize+1]
	}
	for i := range rows {
		r.attachRelations(&rows[i], false)
	}

	return pagination.NewPage(rows, pageSize, func(c domain.Comment) int64 { return c.ID })
}

func (r *MemoryRepository) attachRelations(c *domain.Comment, withReplyTo bool) {
	if u, ok := r.users[c.AuthorID]; ok {
		author := u
		c.Author = &author
	}

	if withReplyTo && c.ReplyToID != nil {
		if target, ok := r.comments[*c.ReplyToID]; ok && target.DeletedAt == nil {
			target.Author = nil
			target.ReplyTo = nil
			target.Children = nil
			c.ReplyTo = &target
		}
	}

	children := []domain.Comment{}
	for _, other := range r.comments {
		if other.DeletedAt != nil || other.ReplyToID == nil || *other.ReplyToID != c.ID {
			continue
		}
		other.Author = nil
		other.ReplyTo = nil
		other.Children = nil
		children = append(children, other)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].ID < children[j].ID })
	c.Children = children
}
