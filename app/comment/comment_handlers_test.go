package comment

import (
	"context"
	"errors"
	"testing"

	"mediafeed/domain"
	"mediafeed/pkg/httperror"
)

func assertHTTPError(t *testing.T, err error, wantStatus int) *httperror.Error {
	t.Helper()
	var httpErr *httperror.Error
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *httperror.Error, got %v", err)
	}
	if httpErr.Status != wantStatus {
		t.Fatalf("expected status %d, got %d (%s)", wantStatus, httpErr.Status, httpErr.Code)
	}
	return httpErr
}

func TestCreateCommentHandler(t *testing.T) {
	repo, author := seedRepo(t)
	handler := NewCreateCommentHandler(repo, nil)
	ctx := context.Background()

	res, err := handler.Handle(ctx, &CreateCommentRequest{
		AuthorID:      author.ID,
		Content:       "first!",
		ContainerType: "news",
		ContainerID:   1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Comment.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if res.Comment.Content != "first!" {
		t.Fatalf("expected content 'first!', got %q", res.Comment.Content)
	}
	if res.StatusCode() != 201 {
		t.Fatalf("expected 201, got %d", res.StatusCode())
	}
}

func TestCreateCommentHandlerValidation(t *testing.T) {
	repo, author := seedRepo(t)
	handler := NewCreateCommentHandler(repo, nil)
	ctx := context.Background()

	// Empty content.
	_, err := handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "", ContainerType: "news", ContainerID: 1,
	})
	assertHTTPError(t, err, 422)

	// Whitespace-only content.
	_, err = handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "   ", ContainerType: "news", ContainerID: 1,
	})
	assertHTTPError(t, err, 422)

	// Unknown container type.
	_, err = handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "x", ContainerType: "podcast", ContainerID: 1,
	})
	assertHTTPError(t, err, 422)

	// Unknown author.
	_, err = handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: 777, Content: "x", ContainerType: "news", ContainerID: 1,
	})
	assertHTTPError(t, err, 422)
}

func TestCreateCommentHandlerReplyTarget(t *testing.T) {
	repo, author := seedRepo(t)
	handler := NewCreateCommentHandler(repo, nil)
	ctx := context.Background()

	root := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "root",
	})

	// Missing target.
	missing := root.ID + 100
	_, err := handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "x", ContainerType: "news", ContainerID: 1, ReplyToID: &missing,
	})
	assertHTTPError(t, err, 422)

	// Target in a different container.
	_, err = handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "x", ContainerType: "news", ContainerID: 2, ReplyToID: &root.ID,
	})
	assertHTTPError(t, err, 422)

	// Valid reply.
	res, err := handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "reply", ContainerType: "news", ContainerID: 1, ReplyToID: &root.ID,
	})
	if err != nil {
		t.Fatalf("valid reply: %v", err)
	}
	if res.Comment.ReplyToID == nil || *res.Comment.ReplyToID != root.ID {
		t.Fatal("expected reply_to_id on created reply")
	}

	// Replies to a deleted target are rejected like missing ones.
	if _, err := repo.DeleteComment(ctx, root.ID, author.ID); err != nil {
		t.Fatalf("delete root: %v", err)
	}
	_, err = handler.Handle(ctx, &CreateCommentRequest{
		AuthorID: author.ID, Content: "late", ContainerType: "news", ContainerID: 1, ReplyToID: &root.ID,
	})
	assertHTTPError(t, err, 422)
}

func TestGetCommentHandlerNotFound(t *testing.T) {
	repo, _ := seedRepo(t)
	handler := NewGetCommentHandler(repo)

	_, err := handler.Handle(context.Background(), &GetCommentRequest{CommentID: 42})
	assertHTTPError(t, err, 404)
}

func TestUpdateCommentHandlerDenied(t *testing.T) {
	repo, author := seedRepo(t)
	handler := NewUpdateCommentHandler(repo, nil)
	ctx := context.Background()

	c := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "b",
	})

	// Not-owner and not-found collapse into the same 403.
	_, err := handler.Handle(ctx, &UpdateCommentRequest{CommentID: c.ID, AuthorID: author.ID + 1, Content: "x"})
	forbidden := assertHTTPError(t, err, 403)

	_, err = handler.Handle(ctx, &UpdateCommentRequest{CommentID: c.ID + 100, AuthorID: author.ID, Content: "x"})
	alsoForbidden := assertHTTPError(t, err, 403)
	if forbidden.Message != alsoForbidden.Message {
		t.Fatal("not-found and not-owner must be indistinguishable to callers")
	}

	got, _ := repo.GetComment(ctx, c.ID)
	if got.Content != "b" {
		t.Fatalf("denied update must not change content, got %q", got.Content)
	}

	res, err := handler.Handle(ctx, &UpdateCommentRequest{CommentID: c.ID, AuthorID: author.ID, Content: "edited"})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if res.Comment.Content != "edited" {
		t.Fatalf("expected edited content, got %q", res.Comment.Content)
	}
}

func TestDeleteCommentHandler(t *testing.T) {
	repo, author := seedRepo(t)
	deleteHandler := NewDeleteCommentHandler(repo, nil)
	getHandler := NewGetCommentHandler(repo)
	ctx := context.Background()

	c := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "bye",
	})

	_, err := deleteHandler.Handle(ctx, &DeleteCommentRequest{CommentID: c.ID, AuthorID: author.ID + 1})
	assertHTTPError(t, err, 403)

	res, err := deleteHandler.Handle(ctx, &DeleteCommentRequest{CommentID: c.ID, AuthorID: author.ID})
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if res.Message == "" {
		t.Fatal("expected confirmation message")
	}

	_, err = getHandler.Handle(ctx, &GetCommentRequest{CommentID: c.ID})
	assertHTTPError(t, err, 404)
}

func TestListRepliesHandler(t *testing.T) {
	repo, author := seedRepo(t)
	handler := NewListRepliesHandler(repo)
	ctx := context.Background()

	root := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "root",
	})
	for i := 0; i < 3; i++ {
		mustCreate(t, repo, domain.Comment{
			AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1,
			ReplyToID: &root.ID, Content: "reply",
		})
	}

	res, err := handler.Handle(ctx, &ListRepliesRequest{CommentID: root.ID, PerPage: 2})
	if err != nil {
		t.Fatalf("list replies: %v", err)
	}
	if len(res.Replies.Items) != 2 || !res.Replies.HasMore {
		t.Fatalf("expected first page of 2 with more, got %d items", len(res.Replies.Items))
	}

	res, err = handler.Handle(ctx, &ListRepliesRequest{
		CommentID: root.ID, PerPage: 2, Cursor: *res.Replies.NextCursor,
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(res.Replies.Items) != 1 || res.Replies.HasMore {
		t.Fatalf("expected final page of 1, got %d items", len(res.Replies.Items))
	}

	// A malformed cursor degrades to the first page instead of failing.
	res, err = handler.Handle(ctx, &ListRepliesRequest{CommentID: root.ID, PerPage: 10, Cursor: "!!bad!!"})
	if err != nil {
		t.Fatalf("malformed cursor must not fail: %v", err)
	}
	if len(res.Replies.Items) != 3 {
		t.Fatalf("expected full first page, got %d items", len(res.Replies.Items))
	}
}
