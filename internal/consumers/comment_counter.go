package consumers

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"mediafeed/domain"
	"mediafeed/pkg/events"
)

// Repository is the slice of storage the counter worker needs.
type Repository interface {
	AdjustContainerCommentCount(ctx context.Context, containerType domain.ContainerType, containerID, delta int64) error
}

// CommentEventHandler keeps the denormalized comment_count on news and video
// posts in step with comment lifecycle events.
type CommentEventHandler struct {
	repository Repository
	logger     *zap.Logger
}

func NewCommentEventHandler(repository Repository, logger *zap.Logger) *CommentEventHandler {
	return &CommentEventHandler{
		repository: repository,
		logger:     logger,
	}
}

func (h *CommentEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Comment event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.CommentCreatedEvent:
		return h.handleCommentCreated(ctx, event)
	case events.CommentDeletedEvent:
		return h.handleCommentDeleted(ctx, event)
	case events.CommentUpdatedEvent:
		// Content edits don't move any counter
		return nil
	default:
		zap.L().Warn("Unknown comment event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *CommentEventHandler) handleCommentCreated(ctx context.Context, event *events.Event) error {
	var payload events.CommentCreatedPayload
	if err := decodePayload(event.Payload, &payload); err != nil {
		return err
	}

	if payload.ID == 0 || payload.ContainerID == 0 {
		return fmt.Errorf("malformed payload - id or containerId missing")
	}

	if payload.ContainerType == domain.ContainerComment {
		// Replies hang off other comments and carry no counter
		return nil
	}

	zap.L().Info("Processing comment.created event",
		zap.Int64("commentId", payload.ID),
		zap.String("containerType", string(payload.ContainerType)),
		zap.Int64("containerId", payload.ContainerID),
		zap.String("traceId", event.TraceID),
	)

	if err := h.repository.AdjustContainerCommentCount(ctx, payload.ContainerType, payload.ContainerID, 1); err != nil {
		return fmt.Errorf("failed to increment comment count: %w", err)
	}
	return nil
}

func (h *CommentEventHandler) handleCommentDeleted(ctx context.Context, event *events.Event) error {
	var payload events.CommentDeletedPayload
	if err := decodePayload(event.Payload, &payload); err != nil {
		return err
	}

	if payload.ID == 0 || payload.ContainerID == 0 {
		return fmt.Errorf("malformed payload - id or containerId missing")
	}

	if payload.ContainerType == domain.ContainerComment {
		return nil
	}

	zap.L().Info("Processing comment.deleted event",
		zap.Int64("commentId", payload.ID),
		zap.String("containerType", string(payload.ContainerType)),
		zap.Int64("containerId", payload.ContainerID),
		zap.String("traceId", event.TraceID),
	)

	if err := h.repository.AdjustContainerCommentCount(ctx, payload.ContainerType, payload.ContainerID, -1); err != nil {
		return fmt.Errorf("failed to decrement comment count: %w", err)
	}
	return nil
}

// decodePayload re-marshals the generic payload into its typed form. Payloads
// arrive as map[string]interface{} after the envelope is unmarshalled.
func decodePayload(payload interface{}, out interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}
	if err := json.Unmarshal(payloadBytes, out); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	return nil
}
