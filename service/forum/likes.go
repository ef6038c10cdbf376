package forum

import (
	"context"
	"errors"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/db"
)

// LikeService flips like membership and keeps Post.Likes equal to the number of like rows.
type LikeService struct {
	store db.Store
}

func NewLikeService(store db.Store) *LikeService {
	return &LikeService{store: store}
}

// Toggle likes the post if the user has not liked it yet and unlikes it otherwise.
// The whole read-modify-write runs in one transaction holding the post's row lock,
// so toggles on the same post are serialized.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := s.store.InTx(ctx, func(tx db.Store) error {
		if _, err := tx.LockPost(ctx, postID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return utils.NotFound("post does not exist")
			}
			return err
		}

		exists, err := tx.HasLike(ctx, userID, postID)
		if err != nil {
			return err
		}

		if exists {
			err = tx.DeleteLike(ctx, userID, postID)
		} else {
			err = tx.CreateLike(ctx, &models.Like{UserID: userID, PostID: postID})
		}
		if err != nil {
			return err
		}

		count, err := tx.CountLikes(ctx, postID)
		if err != nil {
			return err
		}
		if err := tx.SetPostLikes(ctx, postID, count); err != nil {
			return err
		}

		liked = !exists
		return nil
	})
	if err != nil {
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) {
			return false, apiErr
		}
		return false, utils.OperationFailed("failed to update the like", err)
	}
	return liked, nil
}
