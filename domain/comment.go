package domain

import "time"

// ContainerType identifies the kind of entity a comment is attached to.
type ContainerType string

const (
	ContainerNews      ContainerType = "news"
	ContainerVideoPost ContainerType = "video_post"
	ContainerComment   ContainerType = "comment"
)

func (t ContainerType) Valid() bool {
	switch t {
	case ContainerNews, ContainerVideoPost, ContainerComment:
		return true
	}
	return false
}

// ContainerRef is the polymorphic parent of a comment.
type ContainerRef struct {
	Type ContainerType `json:"container_type" db:"container_type"`
	ID   int64         `json:"container_id" db:"container_id"`
}

type Comment struct {
	ID            int64         `json:"id" db:"id"`
	AuthorID      int64         `json:"author_id" db:"author_id"`
	ContainerType ContainerType `json:"container_type" db:"container_type"`
	ContainerID   int64         `json:"container_id" db:"container_id"`
	ReplyToID     *int64        `json:"reply_to_id" db:"reply_to_id"`
	Content       string        `json:"content" db:"content"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time    `json:"-" db:"deleted_at"`

	// Relations filled on read, never persisted.
	Author   *User     `json:"author,omitempty" db:"-"`
	ReplyTo  *Comment  `json:"reply_to,omitempty" db:"-"`
	Children []Comment `json:"children" db:"-"`
}

func (c Comment) Container() ContainerRef {
	return ContainerRef{Type: c.ContainerType, ID: c.ContainerID}
}

// IsRoot reports whether the comment is attached directly to its container.
func (c Comment) IsRoot() bool {
	return c.ReplyToID == nil
}
