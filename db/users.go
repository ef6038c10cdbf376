package db

import (
	"context"
	"fmt"

	"github.com/KAsare1/blog-server/cmd/models"
)

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", id, translate(err))
	}
	return user, nil
}

func (s *GormStore) GetUserByNickname(ctx context.Context, nickname string) (models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("nickname = ?", nickname).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("get user %q: %w", nickname, translate(err))
	}
	return user, nil
}
