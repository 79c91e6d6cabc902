package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"

	"mediafeed/domain"
	"mediafeed/pkg/pagination"
)

type PgRepository struct {
	db *sqlx.DB
}

func NewPgRepository(host, database, user, password, port, sslMode string) *PgRepository {
	db := sqlx.MustConnect("postgres", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslMode,
	))

	// Connection pool configuration
	// With 3 replicas × 15 conns = 45 total connections (safer for default PG max_connections=100)
	db.SetMaxOpenConns(15)                 // Max concurrent DB connections per instance
	db.SetMaxIdleConns(8)                  // Keep 8 idle connections in pool
	db.SetConnMaxLifetime(5 * time.Minute) // Recycle connections every 5 min
	db.SetConnMaxIdleTime(2 * time.Minute) // Close idle connections after 2 min

	r := &PgRepository{db: db}
	if err := r.initSchema(context.Background()); err != nil {
		panic(fmt.Errorf("failed to init schema: %w", err))
	}

	return r
}

func (r *PgRepository) Close() error {
	return r.db.Close()
}

func (r *PgRepository) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			comment_count BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS video_posts (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			comment_count BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id BIGSERIAL PRIMARY KEY,
			author_id BIGINT NOT NULL REFERENCES users (id),
			container_type TEXT NOT NULL,
			container_id BIGINT NOT NULL,
			reply_to_id BIGINT REFERENCES comments (id),
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS comments_container_idx
			ON comments (container_type, container_id, id) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS comments_reply_to_idx
			ON comments (reply_to_id, id) WHERE deleted_at IS NULL`,
	}

	for _, q := range queries {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// GetPoolStats returns current connection pool statistics
func (r *PgRepository) GetPoolStats() map[string]interface{} {
	stats := r.db.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,                   // How many times waited for connection
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(), // Total time spent waiting
		"max_idle_closed":      stats.MaxIdleClosed,               // Connections closed due to idle
		"max_lifetime_closed":  stats.MaxLifetimeClosed,           // Connections closed due to max lifetime
	}
}

func (r *PgRepository) GetUserPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.User], error) {
	users := make([]domain.User, 0)
	query := `SELECT * FROM users WHERE id > $1 ORDER BY id ASC LIMIT $2`

	after := pagination.DecodeOrFirst(cursor)
	if err := r.db.SelectContext(ctx, &users, query, after, pageSize+1); err != nil {
		return pagination.Page[domain.User]{}, err
	}

	return pagination.NewPage(users, pageSize, func(u domain.User) int64 { return u.ID }), nil
}

func (r *PgRepository) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &u, query, id)

	if err != nil {
		return u, err
	}

	return u, nil
}

func (r *PgRepository) GetNewsPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.News], error) {
	news := make([]domain.News, 0)
	query := `SELECT * FROM news WHERE id > $1 ORDER BY id ASC LIMIT $2`

	after := pagination.DecodeOrFirst(cursor)
	if err := r.db.SelectContext(ctx, &news, query, after, pageSize+1); err != nil {
		return pagination.Page[domain.News]{}, err
	}

	return pagination.NewPage(news, pageSize, func(n domain.News) int64 { return n.ID }), nil
}

func (r *PgRepository) GetNews(ctx context.Context, id int64) (domain.News, error) {
	var n domain.News
	query := `SELECT * FROM news WHERE id = $1`

	err := r.db.GetContext(ctx, &n, query, id)

	if err != nil {
		return n, err
	}

	return n, nil
}

func (r *PgRepository) CreateNews(ctx context.Context, title, description string) (domain.News, error) {
	var n domain.News
	query := `INSERT INTO news (title, description) VALUES ($1, $2) RETURNING *`

	err := r.db.GetContext(ctx, &n, query, title, description)
	return n, err
}

func (r *PgRepository) UpdateNews(ctx context.Context, n domain.News) (domain.News, error) {
	var updated domain.News
	query := `
		UPDATE news SET
			title = $2,
			description = $3,
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &updated, query, n.ID, n.Title, n.Description)
	return updated, err
}

func (r *PgRepository) DeleteNews(ctx context.Context, id int64) error {
	query := `DELETE FROM news WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)

	return err
}

func (r *PgRepository) GetVideoPostPage(ctx context.Context, pageSize int, cursor string) (pagination.Page[domain.VideoPost], error) {
	posts := make([]domain.VideoPost, 0)
	query := `SELECT * FROM video_posts WHERE id > $1 ORDER BY id ASC LIMIT $2`

	after := pagination.DecodeOrFirst(cursor)
	if err := r.db.SelectContext(ctx, &posts, query, after, pageSize+1); err != nil {
		return pagination.Page[domain.VideoPost]{}, err
	}

	return pagination.NewPage(posts, pageSize, func(v domain.VideoPost) int64 { return v.ID }), nil
}

func (r *PgRepository) GetVideoPost(ctx context.Context, id int64) (domain.VideoPost, error) {
	var v domain.VideoPost
	query := `SELECT * FROM video_posts WHERE id = $1`

	err := r.db.GetContext(ctx, &v, query, id)

	if err != nil {
		return v, err
	}

	return v, nil
}

func (r *PgRepository) CreateVideoPost(ctx context.Context, title, description string) (domain.VideoPost, error) {
	var v domain.VideoPost
	query := `INSERT INTO video_posts (title, description) VALUES ($1, $2) RETURNING *`

	err := r.db.GetContext(ctx, &v, query, title, description)
	return v, err
}

func (r *PgRepository) UpdateVideoPost(ctx context.Context, v domain.VideoPost) (domain.VideoPost, error) {
	var updated domain.VideoPost
	query := `
		UPDATE video_posts SET
			title = $2,
			description = $3,
			updated_at = now()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, &updated, query, v.ID, v.Title, v.Description)
	return updated, err
}

func (r *PgRepository) DeleteVideoPost(ctx context.Context, id int64) error {
	query := `DELETE FROM video_posts WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)

	return err
}

// AdjustContainerCommentCount moves the denormalized counter on news and video
// posts. Comment containers carry no counter and are ignored.
func (r *PgRepository) AdjustContainerCommentCount(ctx context.Context, containerType domain.ContainerType, containerID, delta int64) error {
	var table string
	switch containerType {
	case domain.ContainerNews:
		table = "news"
	case domain.ContainerVideoPost:
		table = "video_posts"
	default:
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET comment_count = GREATEST(comment_count + $1, 0) WHERE id = $2`, table)

	_, err := r.db.ExecContext(ctx, query, delta, containerID)
	return err
}
