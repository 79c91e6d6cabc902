package comment

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mediafeed/domain"
	"mediafeed/pkg/events"
	"mediafeed/pkg/httperror"
)

type DeleteCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewDeleteCommentHandler(repository Repository, eventPublisher events.Publisher) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type DeleteCommentRequest struct {
	CommentID int64 `params:"id" validate:"required,gt=0"`
	// Acting author, accepted from body or query string.
	AuthorID int64 `json:"author_id" query:"author_id" validate:"required,gt=0"`
}

type DeleteCommentResponse struct {
	Message string `json:"message"`
}

func (h *DeleteCommentHandler) Handle(ctx context.Context, req *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"comment.destroy.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"comment.destroy.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	deleted, err := h.repository.DeleteComment(ctx, req.CommentID, req.AuthorID)
	if err != nil {
		if errors.Is(err, ErrNotFoundOrForbidden) {
			return nil, httperror.Forbidden(
				"comment.destroy.denied",
				"Comment not found or you are not the author",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"comment.destroy.delete_failed",
			"An error occurred while deleting the comment",
			nil,
		)
	}

	h.publishEvent(ctx, deleted)

	return &DeleteCommentResponse{
		Message: "Comment deleted",
	}, nil
}

func (h *DeleteCommentHandler) publishEvent(ctx context.Context, c domain.Comment) {
	if h.eventPublisher == nil {
		return
	}

	deletedAt := time.Now().UTC()
	if c.DeletedAt != nil {
		deletedAt = *c.DeletedAt
	}

	eventPayload := events.CommentDeletedPayload{
		ID:            c.ID,
		AuthorID:      c.AuthorID,
		ContainerType: c.ContainerType,
		ContainerID:   c.ContainerID,
		DeletedAt:     deletedAt,
	}

	headers := events.HeadersFromContext(ctx)

	event := events.NewEvent(
		events.CommentDeletedEvent,
		events.EventVersionV1,
		eventPayload,
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish comment.deleted event",
			zap.Int64("commentId", c.ID),
			zap.Error(err),
		)
	}
}
