package comment

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"mediafeed/domain"
	"mediafeed/pkg/events"
	"mediafeed/pkg/httperror"
)

type CreateCommentHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewCreateCommentHandler(repository Repository, eventPublisher events.Publisher) *CreateCommentHandler {
	return &CreateCommentHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type CreateCommentRequest struct {
	AuthorID      int64  `json:"author_id" validate:"required,gt=0"`
	Content       string `json:"content" validate:"required"`
	ContainerType string `json:"container_type" validate:"required,oneof=news video_post comment"`
	ContainerID   int64  `json:"container_id" validate:"required,gt=0"`
	ReplyToID     *int64 `json:"reply_to_id,omitempty" validate:"omitempty,gt=0"`
}

type CreateCommentResponse struct {
	Comment domain.Comment `json:"comment"`
}

func (r *CreateCommentResponse) StatusCode() int { return 201 }

func (h *CreateCommentHandler) Handle(ctx context.Context, req *CreateCommentRequest) (*CreateCommentResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.UnprocessableEntity(
				"comment.create.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"comment.create.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, httperror.UnprocessableEntity(
			"comment.create.validation_failed",
			"Content must not be empty",
			nil,
		)
	}

	exists, err := h.repository.UserExists(ctx, req.AuthorID)
	if err != nil {
		return nil, httperror.InternalServerError(
			"comment.create.internal_error",
			"Failed to check author",
			nil,
		)
	}
	if !exists {
		return nil, httperror.UnprocessableEntity(
			"comment.create.unknown_author",
			"Author does not exist",
			nil,
		)
	}

	container := domain.ContainerRef{
		Type: domain.ContainerType(req.ContainerType),
		ID:   req.ContainerID,
	}

	if req.ReplyToID != nil {
		target, err := h.repository.GetComment(ctx, *req.ReplyToID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, httperror.UnprocessableEntity(
					"comment.create.reply_target_missing",
					"Reply target does not exist",
					nil,
				)
			}

			return nil, httperror.InternalServerError(
				"comment.create.internal_error",
				"Failed to check reply target",
				nil,
			)
		}

		// Replies must live in the same container as their target.
		if target.Container() != container {
			return nil, httperror.UnprocessableEntity(
				"comment.create.reply_target_container_mismatch",
				"Reply target belongs to a different container",
				nil,
			)
		}
	}

	created, err := h.repository.CreateComment(ctx, domain.Comment{
		AuthorID:      req.AuthorID,
		ContainerType: container.Type,
		ContainerID:   container.ID,
		ReplyToID:     req.ReplyToID,
		Content:       req.Content,
	})
	if err != nil {
		return nil, httperror.InternalServerError(
			"comment.create.create_failed",
			"An error occurred while creating the comment",
			nil,
		)
	}

	h.publishEvent(ctx, created)

	return &CreateCommentResponse{
		Comment: created,
	}, nil
}

func (h *CreateCommentHandler) publishEvent(ctx context.Context, c domain.Comment) {
	if h.eventPublisher == nil {
		return
	}

	eventPayload := events.CommentCreatedPayload{
		ID:            c.ID,
		AuthorID:      c.AuthorID,
		ContainerType: c.ContainerType,
		ContainerID:   c.ContainerID,
		ReplyToID:     c.ReplyToID,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}

	headers := events.HeadersFromContext(ctx)

	event := events.NewEvent(
		events.CommentCreatedEvent,
		events.EventVersionV1,
		eventPayload,
		headers,
	)

	if err := h.eventPublisher.Publish(ctx, events.CommentExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish comment.created event",
			zap.Int64("commentId", c.ID),
			zap.Error(err),
		)
	}
}
