package db

import (
	"context"
	"fmt"

	"github.com/KAsare1/blog-server/cmd/models"
)

func (s *GormStore) HasLike(ctx context.Context, userID, postID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("find like (%d, %d): %w", userID, postID, translate(err))
	}
	return n > 0, nil
}

func (s *GormStore) CreateLike(ctx context.Context, like *models.Like) error {
	if err := s.conn(ctx).Create(like).Error; err != nil {
		return fmt.Errorf("create like (%d, %d): %w", like.UserID, like.PostID, translate(err))
	}
	return nil
}

func (s *GormStore) DeleteLike(ctx context.Context, userID, postID uint) error {
	result := s.conn(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return fmt.Errorf("delete like (%d, %d): %w", userID, postID, translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete like (%d, %d): %w", userID, postID, ErrNotFound)
	}
	return nil
}

func (s *GormStore) CountLikes(ctx context.Context, postID uint) (int, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes of post %d: %w", postID, translate(err))
	}
	return int(n), nil
}
