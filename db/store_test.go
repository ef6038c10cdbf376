package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/db"
	"github.com/KAsare1/blog-server/db/dbtest"
)

func createUser(t *testing.T, st *db.GormStore, nickname string) models.User {
	t.Helper()
	user := models.User{Nickname: nickname, PasswordHash: "hash"}
	if err := st.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createPost(t *testing.T, st *db.GormStore, user models.User, title string, at time.Time) models.Post {
	t.Helper()
	post := models.Post{
		UserID:    user.ID,
		Nickname:  user.Nickname,
		Title:     title,
		Content:   title + " body",
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := st.CreatePost(context.Background(), &post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestUserLifecycle(t *testing.T) {
	st := dbtest.Store(t)
	ctx := context.Background()

	user := createUser(t, st, "abc123")
	if user.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}

	got, err := st.GetUserByNickname(ctx, "abc123")
	if err != nil {
		t.Fatalf("get by nickname: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := st.GetUserByID(ctx, user.ID+100); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	dup := models.User{Nickname: "abc123", PasswordHash: "other"}
	if err := st.CreateUser(ctx, &dup); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	st := dbtest.Store(t)
	user := createUser(t, st, "writer")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	p1 := createPost(t, st, user, "first", base)
	p3 := createPost(t, st, user, "third", base.Add(2*time.Minute))
	p2 := createPost(t, st, user, "second", base.Add(time.Minute))

	posts, err := st.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	want := []uint{p3.ID, p2.ID, p1.ID}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Fatalf("position %d: expected post %d, got %d", i, id, posts[i].ID)
		}
		if posts[i].Content != "" {
			t.Fatalf("list should not load content, got %q", posts[i].Content)
		}
	}
}

func TestUpdateAndDeletePost(t *testing.T) {
	st := dbtest.Store(t)
	ctx := context.Background()
	user := createUser(t, st, "writer")
	post := createPost(t, st, user, "title", time.Now())

	later := time.Now().Add(time.Hour)
	if err := st.UpdatePost(ctx, post.ID, "new title", "new content", later); err != nil {
		t.Fatalf("update post: %v", err)
	}
	got, err := st.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != "new title" || got.Content != "new content" {
		t.Fatalf("unexpected post after update: %+v", got)
	}
	if got.UpdatedAt.Unix() != later.Unix() {
		t.Fatalf("expected updatedAt %s, got %s", later, got.UpdatedAt)
	}

	if err := st.CreateLike(ctx, &models.Like{UserID: user.ID, PostID: post.ID}); err != nil {
		t.Fatalf("create like: %v", err)
	}
	comment := models.Comment{PostID: post.ID, UserID: user.ID, Nickname: user.Nickname, Content: "hi"}
	if err := st.CreateComment(ctx, &comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := st.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := st.GetPost(ctx, post.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if n, _ := st.CountLikes(ctx, post.ID); n != 0 {
		t.Fatalf("expected likes to be removed, found %d", n)
	}
	if _, err := st.GetComment(ctx, comment.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected comment to be removed, got %v", err)
	}

	if err := st.DeletePost(ctx, post.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
	if err := st.UpdatePost(ctx, post.ID, "a", "b", later); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for update of missing post, got %v", err)
	}
}

func TestLikes(t *testing.T) {
	st := dbtest.Store(t)
	ctx := context.Background()
	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")
	post := createPost(t, st, alice, "liked", time.Now())
	other := createPost(t, st, alice, "ignored", time.Now())

	for _, u := range []models.User{alice, bob} {
		if err := st.CreateLike(ctx, &models.Like{UserID: u.ID, PostID: post.ID}); err != nil {
			t.Fatalf("create like: %v", err)
		}
	}
	if err := st.CreateLike(ctx, &models.Like{UserID: bob.ID, PostID: post.ID}); !errors.Is(err, db.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	n, err := st.CountLikes(ctx, post.ID)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 likes, got %d (%v)", n, err)
	}

	ok, err := st.HasLike(ctx, bob.ID, other.ID)
	if err != nil || ok {
		t.Fatalf("expected no like on other post, got %v (%v)", ok, err)
	}

	liked, err := st.ListLikedPosts(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list liked posts: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != post.ID || liked[0].Title != "liked" {
		t.Fatalf("unexpected liked posts: %+v", liked)
	}

	if err := st.DeleteLike(ctx, bob.ID, post.ID); err != nil {
		t.Fatalf("delete like: %v", err)
	}
	if err := st.DeleteLike(ctx, bob.ID, post.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := st.SetPostLikes(ctx, post.ID, 1); err != nil {
		t.Fatalf("set likes: %v", err)
	}
	got, _ := st.GetPost(ctx, post.ID)
	if got.Likes != 1 {
		t.Fatalf("expected likes 1, got %d", got.Likes)
	}
}

func TestInTxRollsBack(t *testing.T) {
	st := dbtest.Store(t)
	ctx := context.Background()
	user := createUser(t, st, "writer")
	post := createPost(t, st, user, "title", time.Now())

	boom := errors.New("boom")
	err := st.InTx(ctx, func(tx db.Store) error {
		if err := tx.CreateLike(ctx, &models.Like{UserID: user.ID, PostID: post.ID}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if ok, _ := st.HasLike(ctx, user.ID, post.ID); ok {
		t.Fatalf("like should have been rolled back")
	}
}

func TestComments(t *testing.T) {
	st := dbtest.Store(t)
	ctx := context.Background()
	user := createUser(t, st, "writer")
	post := createPost(t, st, user, "title", time.Now())

	empty, err := st.ListComments(ctx, post.ID)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v (%v)", empty, err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"one", "two"} {
		c := models.Comment{
			PostID:    post.ID,
			UserID:    user.ID,
			Nickname:  user.Nickname,
			Content:   text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.CreateComment(ctx, &c); err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}

	comments, err := st.ListComments(ctx, post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "two" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	if err := st.UpdateComment(ctx, comments[1].ID, "edited", time.Now()); err != nil {
		t.Fatalf("update comment: %v", err)
	}
	got, _ := st.GetComment(ctx, comments[1].ID)
	if got.Content != "edited" {
		t.Fatalf("unexpected content: %q", got.Content)
	}

	if err := st.DeleteComment(ctx, got.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if err := st.DeleteComment(ctx, got.ID); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTableByName(t *testing.T) {
	for _, name := range []string{"User", "posts", " Like ", "comment"} {
		if _, ok := db.TableByName(name); !ok {
			t.Fatalf("expected %q to resolve", name)
		}
	}
	if _, ok := db.TableByName("Expert"); ok {
		t.Fatalf("unexpected table")
	}
}
