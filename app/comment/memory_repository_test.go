package comment

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"mediafeed/domain"
)

func newsContainer(id int64) domain.ContainerRef {
	return domain.ContainerRef{Type: domain.ContainerNews, ID: id}
}

func seedRepo(t *testing.T) (*MemoryRepository, domain.User) {
	t.Helper()
	repo := NewMemoryRepository()
	author := repo.AddUser(domain.User{Name: "alice", Email: "alice@example.com"})
	return repo, author
}

func mustCreate(t *testing.T, repo *MemoryRepository, c domain.Comment) domain.Comment {
	t.Helper()
	created, err := repo.CreateComment(context.Background(), c)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return created
}

func TestUpdateCommentOwnershipGate(t *testing.T) {
	repo, author := seedRepo(t)
	other := repo.AddUser(domain.User{Name: "bob", Email: "bob@example.com"})
	ctx := context.Background()

	c := mustCreate(t, repo, domain.Comment{
		AuthorID:      author.ID,
		ContainerType: domain.ContainerNews,
		ContainerID:   1,
		Content:       "b",
	})

	if _, err := repo.UpdateComment(ctx, c.ID, other.ID, "x"); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-author, got %v", err)
	}

	got, err := repo.GetComment(ctx, c.ID)
	if err != nil {
		t.Fatalf("get after denied update: %v", err)
	}
	if got.Content != "b" {
		t.Fatalf("content changed by denied update: %q", got.Content)
	}

	updated, err := repo.UpdateComment(ctx, c.ID, author.ID, "edited")
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("expected edited content, got %q", updated.Content)
	}
	if !updated.UpdatedAt.After(c.UpdatedAt) && !updated.UpdatedAt.Equal(c.UpdatedAt) {
		t.Fatal("expected updated_at to move forward")
	}

	// A missing id yields the same merged outcome.
	if _, err := repo.UpdateComment(ctx, 9999, author.ID, "x"); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for missing id, got %v", err)
	}
}

func TestSoftDeleteVisibility(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	c := mustCreate(t, repo, domain.Comment{
		AuthorID:      author.ID,
		ContainerType: domain.ContainerNews,
		ContainerID:   1,
		Content:       "doomed",
	})

	if _, err := repo.DeleteComment(ctx, c.ID, author.ID+1); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for non-author delete, got %v", err)
	}

	deleted, err := repo.DeleteComment(ctx, c.ID, author.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Fatal("expected deleted_at to be set")
	}

	if _, err := repo.GetComment(ctx, c.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}

	page, err := repo.ListRoots(ctx, newsContainer(1), 10, "")
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected deleted comment excluded from listing, got %d items", len(page.Items))
	}

	// Double delete is another merged denial.
	if _, err := repo.DeleteComment(ctx, c.ID, author.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Fatalf("expected ErrNotFoundOrForbidden for double delete, got %v", err)
	}
}

func TestListRootsPaginationCompleteness(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	const n = 7
	var wantIDs []int64
	for i := 0; i < n; i++ {
		c := mustCreate(t, repo, domain.Comment{
			AuthorID:      author.ID,
			ContainerType: domain.ContainerNews,
			ContainerID:   1,
			Content:       "root",
		})
		wantIDs = append(wantIDs, c.ID)
	}

	for _, pageSize := range []int{1, 2, 3, n, n + 5} {
		var gotIDs []int64
		cursor := ""
		for {
			page, err := repo.ListRoots(ctx, newsContainer(1), pageSize, cursor)
			if err != nil {
				t.Fatalf("page size %d: %v", pageSize, err)
			}
			for _, c := range page.Items {
				gotIDs = append(gotIDs, c.ID)
			}
			if !page.HasMore {
				if page.NextCursor != nil {
					t.Fatalf("page size %d: final page carries a cursor", pageSize)
				}
				break
			}
			if page.NextCursor == nil {
				t.Fatalf("page size %d: has_more without cursor", pageSize)
			}
			cursor = *page.NextCursor
		}

		if len(gotIDs) != n {
			t.Fatalf("page size %d: expected %d comments, got %d", pageSize, n, len(gotIDs))
		}
		for i, id := range gotIDs {
			if id != wantIDs[i] {
				t.Fatalf("page size %d: position %d expected id %d, got %d", pageSize, i, wantIDs[i], id)
			}
		}
	}
}

func TestChildrenScoping(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	root := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "root",
	})
	childA := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1,
		ReplyToID: &root.ID, Content: "child a",
	})
	childB := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1,
		ReplyToID: &root.ID, Content: "child b",
	})
	// Grandchild must not surface on the root.
	grandchild := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1,
		ReplyToID: &childA.ID, Content: "grandchild",
	})

	got, err := repo.GetComment(ctx, root.ID)
	if err != nil {
		t.Fatalf("get root: %v", err)
	}
	if len(got.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(got.Children))
	}
	if got.Children[0].ID != childA.ID || got.Children[1].ID != childB.ID {
		t.Fatalf("children out of order: %d, %d", got.Children[0].ID, got.Children[1].ID)
	}

	// Deleted children disappear.
	if _, err := repo.DeleteComment(ctx, childB.ID, author.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	got, _ = repo.GetComment(ctx, root.ID)
	if len(got.Children) != 1 || got.Children[0].ID != childA.ID {
		t.Fatalf("expected only child a after delete, got %d children", len(got.Children))
	}

	// The grandchild is reachable one level down.
	gotChild, err := repo.GetComment(ctx, childA.ID)
	if err != nil {
		t.Fatalf("get child: %v", err)
	}
	if len(gotChild.Children) != 1 || gotChild.Children[0].ID != grandchild.ID {
		t.Fatal("expected grandchild attached to its direct parent")
	}
}

// The container listing scenario: roots with one level of children, then the
// deleted root vanishes from the page while its reply stays reachable directly.
func TestListRootsScenario(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	c1 := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "a",
	})
	c2 := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "b",
	})
	c3 := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1,
		ReplyToID: &c1.ID, Content: "c",
	})

	page, err := repo.ListRoots(ctx, newsContainer(1), 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(page.Items))
	}
	if page.Items[0].ID != c1.ID || page.Items[1].ID != c2.ID {
		t.Fatal("roots out of order")
	}
	if len(page.Items[0].Children) != 1 || page.Items[0].Children[0].ID != c3.ID {
		t.Fatal("expected c3 attached to c1")
	}
	if len(page.Items[1].Children) != 0 {
		t.Fatal("expected c2 without children")
	}

	if _, err := repo.DeleteComment(ctx, c1.ID, author.ID); err != nil {
		t.Fatalf("delete c1: %v", err)
	}

	page, _ = repo.ListRoots(ctx, newsContainer(1), 10, "")
	if len(page.Items) != 1 || page.Items[0].ID != c2.ID {
		t.Fatal("expected only c2 after deleting c1")
	}

	// The orphaned reply is gone from root listings but not from the store.
	if _, err := repo.GetComment(ctx, c3.ID); err != nil {
		t.Fatalf("orphaned reply must stay fetchable: %v", err)
	}
	replies, err := repo.ListReplies(ctx, c1.ID, 10, "")
	if err != nil {
		t.Fatalf("list replies of deleted parent: %v", err)
	}
	if len(replies.Items) != 1 || replies.Items[0].ID != c3.ID {
		t.Fatal("expected c3 listable under its deleted parent")
	}
}

func TestGetCommentRelations(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	root := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerVideoPost, ContainerID: 3, Content: "root",
	})
	reply := mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerVideoPost, ContainerID: 3,
		ReplyToID: &root.ID, Content: "reply",
	})

	got, err := repo.GetComment(ctx, reply.ID)
	if err != nil {
		t.Fatalf("get reply: %v", err)
	}
	if got.Author == nil || got.Author.ID != author.ID {
		t.Fatal("expected author attached")
	}
	if got.ReplyTo == nil || got.ReplyTo.ID != root.ID {
		t.Fatal("expected reply target attached")
	}

	// A deleted target no longer appears as the reply relation.
	if _, err := repo.DeleteComment(ctx, root.ID, author.ID); err != nil {
		t.Fatalf("delete root: %v", err)
	}
	got, err = repo.GetComment(ctx, reply.ID)
	if err != nil {
		t.Fatalf("get reply after target delete: %v", err)
	}
	if got.ReplyTo != nil {
		t.Fatal("expected nil reply target once the target is deleted")
	}
}

func TestListRootsContainerIsolation(t *testing.T) {
	repo, author := seedRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 1, Content: "news 1",
	})
	mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerNews, ContainerID: 2, Content: "news 2",
	})
	mustCreate(t, repo, domain.Comment{
		AuthorID: author.ID, ContainerType: domain.ContainerVideoPost, ContainerID: 1, Content: "video 1",
	})

	page, err := repo.ListRoots(ctx, newsContainer(1), 10, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Content != "news 1" {
		t.Fatalf("expected exactly the news#1 comment, got %d items", len(page.Items))
	}
}
