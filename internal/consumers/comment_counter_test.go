package consumers

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"mediafeed/domain"
	"mediafeed/pkg/events"
)

type adjustment struct {
	containerType domain.ContainerType
	containerID   int64
	delta         int64
}

type fakeRepository struct {
	adjustments []adjustment
}

func (r *fakeRepository) AdjustContainerCommentCount(_ context.Context, containerType domain.ContainerType, containerID, delta int64) error {
	r.adjustments = append(r.adjustments, adjustment{containerType, containerID, delta})
	return nil
}

func newEvent(name string, payload interface{}) *events.Event {
	return events.NewEvent(name, events.EventVersionV1, payload, events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
	})
}

func TestCommentCreatedIncrementsCounter(t *testing.T) {
	repo := &fakeRepository{}
	handler := NewCommentEventHandler(repo, zap.NewNop())

	// Payloads arrive as generic maps after the envelope round-trips the wire
	event := newEvent(events.CommentCreatedEvent, map[string]interface{}{
		"id":            float64(7),
		"authorId":      float64(1),
		"containerType": "news",
		"containerId":   float64(42),
		"content":       "hello",
		"createdAt":     time.Now().UTC().Format(time.RFC3339),
	})

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if len(repo.adjustments) != 1 {
		t.Fatalf("expected 1 adjustment, got %d", len(repo.adjustments))
	}
	got := repo.adjustments[0]
	if got.containerType != domain.ContainerNews || got.containerID != 42 || got.delta != 1 {
		t.Fatalf("unexpected adjustment: %+v", got)
	}
}

func TestCommentDeletedDecrementsCounter(t *testing.T) {
	repo := &fakeRepository{}
	handler := NewCommentEventHandler(repo, zap.NewNop())

	event := newEvent(events.CommentDeletedEvent, events.CommentDeletedPayload{
		ID:            7,
		AuthorID:      1,
		ContainerType: domain.ContainerVideoPost,
		ContainerID:   9,
		DeletedAt:     time.Now().UTC(),
	})

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if len(repo.adjustments) != 1 {
		t.Fatalf("expected 1 adjustment, got %d", len(repo.adjustments))
	}
	got := repo.adjustments[0]
	if got.containerType != domain.ContainerVideoPost || got.containerID != 9 || got.delta != -1 {
		t.Fatalf("unexpected adjustment: %+v", got)
	}
}

func TestReplyEventsLeaveCountersAlone(t *testing.T) {
	repo := &fakeRepository{}
	handler := NewCommentEventHandler(repo, zap.NewNop())

	replyTo := int64(3)
	event := newEvent(events.CommentCreatedEvent, events.CommentCreatedPayload{
		ID:            8,
		AuthorID:      1,
		ContainerType: domain.ContainerComment,
		ContainerID:   3,
		ReplyToID:     &replyTo,
		Content:       "a reply",
		CreatedAt:     time.Now().UTC(),
	})

	if err := handler.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(repo.adjustments) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(repo.adjustments))
	}
}

func TestUnknownAndUpdateEventsAreIgnored(t *testing.T) {
	repo := &fakeRepository{}
	handler := NewCommentEventHandler(repo, zap.NewNop())

	for _, name := range []string{events.CommentUpdatedEvent, "comment.flagged"} {
		if err := handler.HandleEvent(context.Background(), newEvent(name, nil)); err != nil {
			t.Fatalf("event %q should be ignored, got %v", name, err)
		}
	}
	if len(repo.adjustments) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(repo.adjustments))
	}
}

func TestMalformedPayloadRejected(t *testing.T) {
	repo := &fakeRepository{}
	handler := NewCommentEventHandler(repo, zap.NewNop())

	event := newEvent(events.CommentCreatedEvent, map[string]interface{}{
		"content": "no ids here",
	})

	if err := handler.HandleEvent(context.Background(), event); err == nil {
		t.Fatal("expected a malformed payload error")
	}
	if len(repo.adjustments) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(repo.adjustments))
	}
}
