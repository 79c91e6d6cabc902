package events

import (
	"time"

	"mediafeed/domain"
)

// Domain constants
const (
	CommentDomain   = "comment"
	CommentExchange = "mediafeed.comment"
)

// Event names
const (
	CommentCreatedEvent = "comment.created"
	CommentUpdatedEvent = "comment.updated"
	CommentDeletedEvent = "comment.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// CommentCreatedPayload represents the payload for comment.created event
type CommentCreatedPayload struct {
	ID            int64                `json:"id"`
	AuthorID      int64                `json:"authorId"`
	ContainerType domain.ContainerType `json:"containerType"`
	ContainerID   int64                `json:"containerId"`
	ReplyToID     *int64               `json:"replyToId,omitempty"`
	Content       string               `json:"content"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// CommentUpdatedPayload represents the payload for comment.updated event
type CommentUpdatedPayload struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentDeletedPayload represents the payload for comment.deleted event
type CommentDeletedPayload struct {
	ID            int64                `json:"id"`
	AuthorID      int64                `json:"authorId"`
	ContainerType domain.ContainerType `json:"containerType"`
	ContainerID   int64                `json:"containerId"`
	DeletedAt     time.Time            `json:"deletedAt"`
}
