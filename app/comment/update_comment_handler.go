package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mediafeed/domain"
	"mediafeed/pkg/events"
	"mediafeed/pkg/httperror"
)

type UpdateCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewUpdateCommentHandler(repository Repository, eventPublisher events.Publisher) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type UpdateCommentRequest struct {
	CommentID int64  `params:"id" validate:"required,gt=0"`
	AuthorID  int64  `json:"author_id" validate:"required,gt=0"`
	Content   string `json:"content" validate:"required"`
}

type UpdateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

func (h *UpdateCommentHandler) Handle(ctx context.Context, req *UpdateCommentRequest) (*UpdateCommentResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"comment.update.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"comment.update.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, httperror.UnprocessableEntity(
			"comment.update.validation_failed",
			"Content must not be empty",
			nil,
		)
	}

	updated, err := h.repository.UpdateComment(ctx, req.CommentID, req.AuthorID, req.Content)
	if err != nil {
		if errors.Is(err, ErrNotFoundOrForbidden) {
			return nil, httperror.Forbidden(
				"comment.update.denied",
				"Comment not found or you are not the author",
				nil,
			)
		}

		return nil, httperror.InternalServerError(
			"comment.update.update_failed",
			"An error occurred while updating the comment",
			nil,
		)
	}

	h.publishEvent(ctx, updated)

	return &UpdateCommentResponse{
		Comment: updated,
	}, nil
}

func (h *UpdateCommentHandler) publishEvent(ctx context.Context, c domain.Comment) {
	if h.eventPublisher == nil {
		return
	}

	eventPayload := events.CommentUpdatedPayload{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		UpdatedAt: c.UpdatedAt,
	}

	headers := events.HeadersFromContext(ctx)

	event := events.NewEvent(
		events.CommentUpdatedEvent,
		events.EventVersionV1,
		eventPayload,
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish comment.updated event",
			zap.Int64("commentId", c.ID),
			zap.Error(err),
		)
	}
}
