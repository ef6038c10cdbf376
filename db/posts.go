package db

import (
	"context"
	"fmt"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	newestFirst    = "posts.created_at DESC, posts.post_id DESC"
	summaryColumns = "posts.post_id, posts.user_id, posts.nickname, posts.title, posts.likes, posts.created_at, posts.updated_at"
)

func (s *GormStore) CreatePost(ctx context.Context, post *models.Post) error {
	if err := s.conn(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", translate(err))
	}
	return nil
}

func (s *GormStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).
		Select(summaryColumns).
		Order(newestFirst).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", translate(err))
	}
	return posts, nil
}

func (s *GormStore) GetPost(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	if err := s.conn(ctx).Where("post_id = ?", id).First(&post).Error; err != nil {
		return models.Post{}, fmt.Errorf("get post %d: %w", id, translate(err))
	}
	return post, nil
}

func (s *GormStore) LockPost(ctx context.Context, id uint) (models.Post, error) {
	query := s.conn(ctx)
	if s.supportsRowLocks() {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var post models.Post
	if err := query.Where("post_id = ?", id).First(&post).Error; err != nil {
		return models.Post{}, fmt.Errorf("lock post %d: %w", id, translate(err))
	}
	return post, nil
}

func (s *GormStore) UpdatePost(ctx context.Context, id uint, title, content string, updatedAt time.Time) error {
	result := s.conn(ctx).Model(&models.Post{}).
		Where("post_id = ?", id).
		UpdateColumns(map[string]interface{}{
			"title":      title,
			"content":    content,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update post %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update post %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeletePost(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("delete likes of post %d: %w", id, err)
		}

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments of post %d: %w", id, err)
		}

		result := tx.Where("post_id = ?", id).Delete(&models.Post{})
		if result.Error != nil {
			return fmt.Errorf("delete post %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete post %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *GormStore) SetPostLikes(ctx context.Context, id uint, likes int) error {
	result := s.conn(ctx).Model(&models.Post{}).
		Where("post_id = ?", id).
		UpdateColumn("likes", likes)
	if result.Error != nil {
		return fmt.Errorf("set likes of post %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("set likes of post %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) ListLikedPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.conn(ctx).
		Select(summaryColumns).
		Joins("JOIN likes ON likes.post_id = posts.post_id").
		Where("likes.user_id = ?", userID).
		Order(newestFirst).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts liked by %d: %w", userID, translate(err))
	}
	return posts, nil
}
