package service

import (
	"time"

	"goblog/database"
	"goblog/database/model"
)

// PostView is a post joined with its author's username for rendering. The
// posts table stores only the numeric author id; the display name is
// resolved here.
type PostView struct {
	model.Post
	Author string `json:"author"`
}

type BlogService struct{}

const postViewSelect = "posts.*, users.username AS author"

// AllPosts returns every post, newest first. The feed is unpaginated.
func (s *BlogService) AllPosts() ([]PostView, error) {
	db := database.GetDB()

	var posts []PostView
	err := db.Model(model.Post{}).
		Select(postViewSelect).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Order("posts.pub_date DESC").
		Find(&posts).
		Error
	return posts, err
}

// PostsByAuthor returns one user's posts, newest first.
func (s *BlogService) PostsByAuthor(authorId int) ([]PostView, error) {
	db := database.GetDB()

	var posts []PostView
	err := db.Model(model.Post{}).
		Select(postViewSelect).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Where("posts.author_id = ?", authorId).
		Order("posts.pub_date DESC").
		Find(&posts).
		Error
	return posts, err
}

func (s *BlogService) GetPost(id int) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{}
	err := db.Model(model.Post{}).
		Where("id = ?", id).
		First(post).
		Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostView returns one post with its author resolved, for the detail
// page.
func (s *BlogService) GetPostView(id int) (*PostView, error) {
	db := database.GetDB()

	post := &PostView{}
	err := db.Model(model.Post{}).
		Select(postViewSelect).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Where("posts.id = ?", id).
		First(post).
		Error
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost inserts a new post authored by authorId. Publication time is
// the current UTC time.
func (s *BlogService) CreatePost(authorId int, title, content, image string) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{
		AuthorId: authorId,
		Title:    title,
		Content:  content,
		Image:    image,
		PubDate:  time.Now().UTC(),
	}
	if err := db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) UpdatePost(post *model.Post) error {
	db := database.GetDB()
	return db.Save(post).Error
}

func (s *BlogService) DeletePost(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Post{}, id).Error
}

func (s *BlogService) CountPosts() (int64, error) {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Post{}).Count(&count).Error
	return count, err
}
