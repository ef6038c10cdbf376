package forum

import (
	"errors"
	"net/http"

	"github.com/KAsare1/blog-server/cmd/models"
	"github.com/KAsare1/blog-server/cmd/utils"
	"github.com/KAsare1/blog-server/db"
)

type commentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

// GetComments lists a post's comments, newest first.
func (h *PostHandler) GetComments(w http.ResponseWriter, r *http.Request) error {
	post, err := h.loadPost(r)
	if err != nil {
		return err
	}

	comments, err := h.store.ListComments(r.Context(), post.ID)
	if err != nil {
		return utils.OperationFailed("failed to load comments", err)
	}

	utils.WriteJSON(w, http.StatusOK, commentsResponse{Comments: comments})
	return nil
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	post, err := h.loadPost(r)
	if err != nil {
		return err
	}

	content, err := decodeCommentBody(w, r)
	if err != nil {
		return err
	}

	now := h.now()
	comment := models.Comment{
		PostID:    post.ID,
		UserID:    identity.UserID,
		Nickname:  identity.Nickname,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.CreateComment(r.Context(), &comment); err != nil {
		return utils.OperationFailed("failed to create the comment", err)
	}

	utils.WriteJSON(w, http.StatusCreated, utils.MessageBody{Message: "comment created"})
	return nil
}

func (h *PostHandler) UpdateComment(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	comment, err := h.loadComment(r)
	if err != nil {
		return err
	}
	if comment.UserID != identity.UserID {
		return utils.Forbidden("you are not allowed to edit this comment")
	}

	content, err := decodeCommentBody(w, r)
	if err != nil {
		return err
	}

	if err := h.store.UpdateComment(r.Context(), comment.ID, content, h.now()); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return utils.NotFound("comment does not exist")
		}
		return utils.OperationFailed("failed to update the comment", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.MessageBody{Message: "comment updated"})
	return nil
}

func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) error {
	identity, err := utils.GetIdentityFromContext(r)
	if err != nil {
		return err
	}

	comment, err := h.loadComment(r)
	if err != nil {
		return err
	}
	if comment.UserID != identity.UserID {
		return utils.Forbidden("you are not allowed to delete this comment")
	}

	if err := h.store.DeleteComment(r.Context(), comment.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return utils.NotFound("comment does not exist")
		}
		return utils.OperationFailed("failed to delete the comment", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.MessageBody{Message: "comment deleted"})
	return nil
}

// loadComment resolves the comment and checks it belongs to the post in the path.
func (h *PostHandler) loadComment(r *http.Request) (models.Comment, error) {
	postID, err := utils.PathID(r, "postId", "post does not exist")
	if err != nil {
		return models.Comment{}, err
	}
	commentID, err := utils.PathID(r, "commentId", "comment does not exist")
	if err != nil {
		return models.Comment{}, err
	}

	comment, err := h.store.GetComment(r.Context(), commentID)
	if errors.Is(err, db.ErrNotFound) || (err == nil && comment.PostID != postID) {
		return models.Comment{}, utils.NotFound("comment does not exist")
	}
	if err != nil {
		return models.Comment{}, utils.OperationFailed("failed to load the comment", err)
	}
	return comment, nil
}

func decodeCommentBody(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := utils.DecodeFields(w, r)
	if err != nil {
		return "", utils.ValidationFailed(http.StatusBadRequest, "request body is malformed")
	}
	if !body.Exactly("content") {
		return "", utils.ValidationFailed(http.StatusPreconditionFailed, "data format is invalid")
	}
	content, ok := body.NonEmptyString("content")
	if !ok {
		return "", utils.ValidationFailed(http.StatusPreconditionFailed, "comment content format is invalid")
	}
	return content, nil
}
