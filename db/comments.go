package db

import (
	"context"
	"fmt"
	"time"

	"github.com/KAsare1/blog-server/cmd/models"
)

func (s *GormStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.conn(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", translate(err))
	}
	return nil
}

func (s *GormStore) GetComment(ctx context.Context, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := s.conn(ctx).Where("comment_id = ?", id).First(&comment).Error; err != nil {
		return models.Comment{}, fmt.Errorf("get comment %d: %w", id, translate(err))
	}
	return comment, nil
}

func (s *GormStore) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.conn(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, comment_id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, translate(err))
	}
	return comments, nil
}

func (s *GormStore) UpdateComment(ctx context.Context, id uint, content string, updatedAt time.Time) error {
	result := s.conn(ctx).Model(&models.Comment{}).
		Where("comment_id = ?", id).
		UpdateColumns(map[string]interface{}{
			"content":    content,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update comment %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update comment %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteComment(ctx context.Context, id uint) error {
	result := s.conn(ctx).Where("comment_id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return fmt.Errorf("delete comment %d: %w", id, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete comment %d: %w", id, ErrNotFound)
	}
	return nil
}
