package service

import (
	"testing"
	"time"

	"goblog/database"
	"goblog/database/model"

	"github.com/stretchr/testify/assert"
)

func registerTestUser(t *testing.T, username, email string) *model.User {
	t.Helper()
	userService := UserService{}
	if err := userService.Register("Test", "User", username, email, "secret"); err != nil {
		t.Fatalf("register user: %v", err)
	}
	user := userService.CheckUser(email, "secret")
	if user == nil {
		t.Fatalf("user %s not found after register", username)
	}
	return user
}

func insertPostAt(t *testing.T, authorId int, title string, at time.Time) *model.Post {
	t.Helper()
	post := &model.Post{
		AuthorId: authorId,
		Title:    title,
		Content:  "content of " + title,
		PubDate:  at,
	}
	if err := database.GetDB().Create(post).Error; err != nil {
		t.Fatalf("insert post: %v", err)
	}
	return post
}

func TestFeedOrderingNewestFirst(t *testing.T) {
	setup(t)

	user := registerTestUser(t, "ada", "ada@example.com")
	service := BlogService{}

	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	insertPostAt(t, user.Id, "first", t1)
	insertPostAt(t, user.Id, "second", t1.Add(time.Hour))
	insertPostAt(t, user.Id, "third", t1.Add(2*time.Hour))

	posts, err := service.AllPosts()
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Title)
	assert.Equal(t, "second", posts[1].Title)
	assert.Equal(t, "first", posts[2].Title)

	byAuthor, err := service.PostsByAuthor(user.Id)
	assert.NoError(t, err)
	assert.Len(t, byAuthor, 3)
	assert.Equal(t, "third", byAuthor[0].Title)
	assert.Equal(t, "first", byAuthor[2].Title)
}

func TestPostsByAuthorFiltersOtherUsers(t *testing.T) {
	setup(t)

	ada := registerTestUser(t, "ada", "ada@example.com")
	grace := registerTestUser(t, "grace", "grace@example.com")
	service := BlogService{}

	insertPostAt(t, ada.Id, "ada post", time.Now().UTC())
	insertPostAt(t, grace.Id, "grace post", time.Now().UTC())

	posts, err := service.PostsByAuthor(ada.Id)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "ada post", posts[0].Title)
	assert.Equal(t, "ada", posts[0].Author)
}

func TestCreatePostRoundTrip(t *testing.T) {
	setup(t)

	user := registerTestUser(t, "ada", "ada@example.com")
	service := BlogService{}

	created, err := service.CreatePost(user.Id, "T", "C", "")
	assert.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Equal(t, user.Id, created.AuthorId)
	assert.False(t, created.PubDate.IsZero())

	view, err := service.GetPostView(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "T", view.Title)
	assert.Equal(t, "C", view.Content)
	assert.Empty(t, view.Image)
	assert.Equal(t, "ada", view.Author)
}

func TestUpdatePostKeepsImageWhenUnchanged(t *testing.T) {
	setup(t)

	user := registerTestUser(t, "ada", "ada@example.com")
	service := BlogService{}

	created, err := service.CreatePost(user.Id, "T", "C", "photo.png")
	assert.NoError(t, err)

	created.Title = "T2"
	created.Content = "C2"
	assert.NoError(t, service.UpdatePost(created))

	updated, err := service.GetPost(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "photo.png", updated.Image)
}

func TestDeletePost(t *testing.T) {
	setup(t)

	user := registerTestUser(t, "ada", "ada@example.com")
	service := BlogService{}

	created, err := service.CreatePost(user.Id, "T", "C", "")
	assert.NoError(t, err)

	assert.NoError(t, service.DeletePost(created.Id))

	_, err = service.GetPost(created.Id)
	assert.True(t, database.IsNotFound(err))

	count, err := service.CountPosts()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
