package db

import (
	"context"
	"errors"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	// CreateUser returns ErrDuplicate when the nickname is taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (models.User, error)
	GetUserByNickname(ctx context.Context, nickname string) (models.User, error)
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	// ListPosts orders by creation time, newest first.
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id uint) (models.Post, error)
	// LockPost reads the post and holds a row lock on it until the transaction ends.
	LockPost(ctx context.Context, id uint) (models.Post, error)
	UpdatePost(ctx context.Context, id uint, title, content string, updatedAt time.Time) error
	// DeletePost removes the post together with its likes and comments.
	DeletePost(ctx context.Context, id uint) error
	SetPostLikes(ctx context.Context, id uint, likes int) error
	ListLikedPosts(ctx context.Context, userID uint) ([]models.Post, error)
}

type LikeRepository interface {
	HasLike(ctx context.Context, userID, postID uint) (bool, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, postID uint) error
	CountLikes(ctx context.Context, postID uint) (int, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uint) (models.Comment, error)
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, id uint, content string, updatedAt time.Time) error
	DeleteComment(ctx context.Context, id uint) error
}

type Store interface {
	UserRepository
	PostRepository
	LikeRepository
	CommentRepository
	// InTx runs fn against a store bound to one transaction. A non-nil error rolls it back.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
